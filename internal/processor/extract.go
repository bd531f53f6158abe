package processor

import (
	"fmt"

	"github.com/phonlab/cleantalking/internal/audio"
	"github.com/phonlab/cleantalking/internal/textgrid"
)

// Fragment is one extracted sub-signal of a recording, covering a single
// extractable annotation interval. Names are synthesized as
// <basename>_<tierIndex>_<intervalIndex> so fragments sort and trace back
// to their source interval deterministically.
type Fragment struct {
	Name     string
	Interval int // 1-based interval index on the tier
	Start    float64
	End      float64
	Signal   *audio.Signal
}

// ProgressLog is the side channel the pipeline reports through. It feeds
// nothing back into the data path.
type ProgressLog interface {
	SetPrefix(prefix string)
	Printf(format string, args ...interface{})
}

// extractSegments walks the tier's intervals in ascending order and
// accumulates one fragment per extractable interval. The working set is an
// explicit per-token slice owned by the caller; nothing is shared between
// tokens. Returns an empty slice when no interval is extractable.
func extractSegments(src *audio.Signal, tier *textgrid.Tier, tierIndex int, base string, cls *Classifier, plog ProgressLog, onInterval func(index, total int)) ([]Fragment, error) {
	total := len(tier.Intervals)
	frags := make([]Fragment, 0, total)

	for i := range tier.Intervals {
		iv := tier.Intervals[i]
		index := i + 1

		if onInterval != nil {
			onInterval(index, total)
		}

		if !cls.Extractable(iv.Label, iv.Duration()) {
			if iv.Label == pauseLabel {
				plog.Printf("skipping pause interval %d of %d (%.3fs > threshold)",
					index, total, iv.Duration())
			}
			continue
		}

		seg, err := src.Extract(iv.Min, iv.Max)
		if err != nil {
			return nil, fmt.Errorf("interval %d: %w", index, err)
		}

		name := fmt.Sprintf("%s_%d_%d", base, tierIndex, index)
		plog.Printf("extracted interval %d of %d %q as %s (%.3fs)",
			index, total, iv.Label, name, iv.Duration())

		frags = append(frags, Fragment{
			Name:     name,
			Interval: index,
			Start:    iv.Min,
			End:      iv.Max,
			Signal:   seg,
		})
	}

	return frags, nil
}
