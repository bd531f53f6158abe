package logging

import (
	"fmt"
	"io"
	"sync"
)

// Progress is an append-only, line-oriented progress log with a settable
// prefix. The batch driver adjusts the prefix as it descends from batch to
// token to interval level, so the log reads as a nested trace. A nil
// Progress discards everything, which keeps call sites unconditional.
type Progress struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewProgress creates a progress log writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// SetPrefix replaces the prefix prepended to every subsequent line.
func (p *Progress) SetPrefix(prefix string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prefix = prefix
}

// Printf appends one formatted line to the log.
func (p *Progress) Printf(format string, args ...interface{}) {
	if p == nil || p.w == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, p.prefix+format+"\n", args...)
}
