package ui

import (
	"github.com/phonlab/cleantalking/internal/processor"
)

// TokenStartMsg indicates a new recording has started processing
type TokenStartMsg struct {
	TokenIndex int
	TokenName  string
}

// IntervalProgressMsg reports the interval scan position within the active token
type IntervalProgressMsg struct {
	TokenIndex int
	Interval   int
	Total      int
}

// TokenCompleteMsg indicates a recording has finished processing.
// Skipped means the token had no extractable speech and produced no row.
type TokenCompleteMsg struct {
	TokenIndex  int
	Row         *processor.ReportRow
	Skipped     bool
	CleanedPath string
	Error       error
}

// AllCompleteMsg indicates the whole batch has finished (or aborted)
type AllCompleteMsg struct {
	ReportPath string
	Err        error
}
