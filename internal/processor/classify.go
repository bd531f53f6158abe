// Package processor implements the segment extraction pipeline: interval
// classification, speech-fragment accumulation, raw-vs-cleaned statistics,
// and the batch driver that runs it over a directory of recordings.
package processor

import (
	"fmt"
	"regexp"
)

// Pipeline defaults. The tier name, silence pattern, pause threshold and
// pitch floor are part of the pipeline's contract; a config file may
// override them but the defaults are what reports are compared against.
const (
	DefaultTierName       = "words"
	DefaultSilencePattern = `^sil$`
	DefaultShortPauseMax  = 0.15  // seconds
	DefaultPitchFloor     = 100.0 // Hz, for the intensity contour estimator

	// pauseLabel marks a between-words pause interval in the annotation
	pauseLabel = "sp"
)

// Classifier decides whether a labeled interval carries extractable speech.
type Classifier struct {
	silence       *regexp.Regexp
	shortPauseMax float64
}

// NewClassifier compiles the silence pattern and fixes the short-pause
// duration threshold in seconds.
func NewClassifier(silencePattern string, shortPauseMax float64) (*Classifier, error) {
	re, err := regexp.Compile(silencePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid silence pattern %q: %w", silencePattern, err)
	}
	return &Classifier{silence: re, shortPauseMax: shortPauseMax}, nil
}

// Extractable reports whether an interval with the given label and duration
// should be extracted. Silence-labeled intervals are never extracted. A
// pause interval is dropped only when it is longer than the short-pause
// threshold; a short pause is kept so that natural word spacing survives in
// the cleaned signal. Unlabeled intervals count as speech.
func (c *Classifier) Extractable(label string, duration float64) bool {
	if c.silence.MatchString(label) {
		return false
	}
	if label == pauseLabel && duration > c.shortPauseMax {
		return false
	}
	return true
}
