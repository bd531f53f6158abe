package processor

import (
	"fmt"

	"github.com/phonlab/cleantalking/internal/audio"
)

// ReportRow is one line of the batch report: duration and intensity of a
// token's original recording against its cleaned (pauses removed) version.
// Field order here is the CSV column order.
type ReportRow struct {
	Token             string
	DurationRaw       float64
	AmplitudeRaw      float64
	MaxAmplitudeRaw   float64
	DurationNoPauses  float64
	AmplitudeNoPauses float64
}

// summarize concatenates the working set into the combined signal and
// computes the raw-vs-cleaned statistics row. Callers must only invoke it
// with a non-empty working set.
func summarize(frags []Fragment, src *audio.Signal, base string, pitchFloor float64) (ReportRow, *audio.Signal, error) {
	parts := make([]*audio.Signal, len(frags))
	for i := range frags {
		parts[i] = frags[i].Signal
	}

	combined, err := audio.Concat(parts)
	if err != nil {
		return ReportRow{}, nil, fmt.Errorf("concatenating %d fragments for %s: %w", len(frags), base, err)
	}

	row := ReportRow{
		Token:             base,
		DurationRaw:       src.Duration(),
		AmplitudeRaw:      MeanIntensityDB(src),
		MaxAmplitudeRaw:   MaxIntensityDB(src, pitchFloor),
		DurationNoPauses:  combined.Duration(),
		AmplitudeNoPauses: MeanIntensityDB(combined),
	}

	return row, combined, nil
}
