package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phonlab/cleantalking/internal/audio"
	"github.com/phonlab/cleantalking/internal/textgrid"
)

// Options configures a batch run. Zero values fall back to the pipeline
// defaults, so tests and callers only set what they care about.
type Options struct {
	TierName       string
	SilencePattern string
	ShortPauseMax  float64
	PitchFloor     float64

	// OutputDir receives cleaned recordings when SaveCleaned is set
	OutputDir   string
	SaveCleaned bool

	Log    ProgressLog
	Events func(Event)
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.TierName == "" {
		out.TierName = DefaultTierName
	}
	if out.SilencePattern == "" {
		out.SilencePattern = DefaultSilencePattern
	}
	if out.ShortPauseMax == 0 {
		out.ShortPauseMax = DefaultShortPauseMax
	}
	if out.PitchFloor == 0 {
		out.PitchFloor = DefaultPitchFloor
	}
	if out.Log == nil {
		out.Log = nopLog{}
	}
	return out
}

func (o *Options) emit(e Event) {
	if o.Events != nil {
		o.Events(e)
	}
}

// Event is a progress notification from the batch driver, consumed by the
// terminal UI. Events carry no control flow back into the pipeline.
type Event interface{}

// TokenStarted signals that a recording has begun processing.
type TokenStarted struct {
	Index int
	Token string
	Path  string
}

// TokenProgress reports the interval scan position within the active token.
type TokenProgress struct {
	Index    int
	Interval int
	Total    int
}

// TokenFinished signals that a recording has been fully handled. Skipped is
// set when no interval was extractable; Err is set on fatal failures, which
// also abort the batch.
type TokenFinished struct {
	Index       int
	Row         *ReportRow
	Skipped     bool
	CleanedPath string
	Err         error
}

// BatchResult summarizes a completed run.
type BatchResult struct {
	Rows    []ReportRow
	Skipped []string
}

// nopLog is the ProgressLog used when the caller wires none.
type nopLog struct{}

func (nopLog) SetPrefix(string)              {}
func (nopLog) Printf(string, ...interface{}) {}

// ListTokens returns the .wav files in dir in sorted order. This fixed
// ordering is what makes repeat runs produce identical reports.
func ListTokens(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.wav"))
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings in %s: %w", dir, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// RunBatch processes the given recordings strictly in order. Each token is
// self-contained: its signal, annotation, working set and combined signal
// are all released before the next token starts. The first fatal error
// aborts the whole batch; tokens without extractable speech are skipped
// without a row. Rows are accumulated in memory and returned for the caller
// to serialize once the batch is done.
func RunBatch(files []string, opts Options) (*BatchResult, error) {
	opts = opts.withDefaults()

	cls, err := NewClassifier(opts.SilencePattern, opts.ShortPauseMax)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Rows: make([]ReportRow, 0, len(files))}

	opts.Log.SetPrefix("")
	opts.Log.Printf("processing %d recording(s)", len(files))

	for i, wavPath := range files {
		base := strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath))

		opts.emit(TokenStarted{Index: i, Token: base, Path: wavPath})
		opts.Log.SetPrefix("  ")
		opts.Log.Printf("token %s (%d of %d)", base, i+1, len(files))

		opts.Log.SetPrefix("    ")
		row, combined, meta, err := processToken(wavPath, base, i, cls, &opts)
		opts.Log.SetPrefix("  ")
		if err != nil {
			opts.Log.Printf("aborting batch: %v", err)
			opts.emit(TokenFinished{Index: i, Err: err})
			return nil, fmt.Errorf("token %s: %w", base, err)
		}

		if row == nil {
			opts.Log.Printf("no extractable speech in %s, skipping", base)
			result.Skipped = append(result.Skipped, base)
			opts.emit(TokenFinished{Index: i, Skipped: true})
			continue
		}

		cleanedPath := ""
		if opts.SaveCleaned {
			cleanedPath = filepath.Join(opts.OutputDir, base+"_cleaned.wav")
			if err := audio.WriteFile(cleanedPath, combined, meta.BitDepth); err != nil {
				opts.emit(TokenFinished{Index: i, Err: err})
				return nil, fmt.Errorf("token %s: %w", base, err)
			}
			opts.Log.Printf("saved cleaned recording to %s", cleanedPath)
		}

		result.Rows = append(result.Rows, *row)
		opts.Log.Printf("recorded %s: %.3fs raw, %.3fs cleaned", base, row.DurationRaw, row.DurationNoPauses)
		opts.emit(TokenFinished{Index: i, Row: row, CleanedPath: cleanedPath})
	}

	opts.Log.SetPrefix("")
	opts.Log.Printf("batch complete: %d row(s), %d skipped", len(result.Rows), len(result.Skipped))

	return result, nil
}

// processToken runs the per-recording pipeline: load the audio and its
// annotation, locate the tier, extract speech fragments, and summarize.
// Returns a nil row when the token has no extractable intervals.
func processToken(wavPath, base string, index int, cls *Classifier, opts *Options) (*ReportRow, *audio.Signal, *audio.Metadata, error) {
	gridPath := wavPath + ".TextGrid"
	if _, err := os.Stat(gridPath); err != nil {
		return nil, nil, nil, fmt.Errorf("missing annotation file %s: %w", gridPath, err)
	}

	src, meta, err := audio.ReadFile(wavPath)
	if err != nil {
		return nil, nil, nil, err
	}

	grid, err := textgrid.ReadFile(gridPath)
	if err != nil {
		return nil, nil, nil, err
	}

	tierIndex, ok := grid.TierIndex(opts.TierName)
	if !ok {
		return nil, nil, nil, fmt.Errorf("tier %q not found in %s", opts.TierName, gridPath)
	}
	tier := &grid.Tiers[tierIndex-1]
	if !tier.IsIntervalTier() {
		return nil, nil, nil, fmt.Errorf("tier %q in %s is a point tier", opts.TierName, gridPath)
	}

	frags, err := extractSegments(src, tier, tierIndex, base, cls, opts.Log, func(interval, total int) {
		opts.emit(TokenProgress{Index: index, Interval: interval, Total: total})
	})
	if err != nil {
		return nil, nil, nil, err
	}

	if len(frags) == 0 {
		return nil, nil, nil, nil
	}

	row, combined, err := summarize(frags, src, base, opts.PitchFloor)
	if err != nil {
		return nil, nil, nil, err
	}

	return &row, combined, meta, nil
}
