// Package ui provides the Bubbletea terminal user interface for cleantalking
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/phonlab/cleantalking/internal/processor"
)

// TokenStatus represents the processing state of a single recording
type TokenStatus int

const (
	StatusQueued TokenStatus = iota
	StatusExtracting
	StatusComplete
	StatusSkipped
	StatusError
)

// TokenProgress tracks progress for a single recording
type TokenProgress struct {
	TokenName string
	InputPath string
	Status    TokenStatus

	// Interval scan position
	Interval int
	Total    int

	StartTime   time.Time
	ElapsedTime time.Duration

	// Completion results
	Row         *processor.ReportRow
	CleanedPath string
	Error       error
}

// Progress returns the interval scan position as a 0..1 fraction.
func (tp TokenProgress) Progress() float64 {
	if tp.Total == 0 {
		return 0
	}
	return float64(tp.Interval) / float64(tp.Total)
}

// Model is the Bubbletea model for the batch UI
type Model struct {
	// Token queue
	Tokens          []TokenProgress
	CurrentIndex    int
	TotalTokens     int
	CompletedTokens int
	SkippedTokens   int
	FailedTokens    int

	// Global state
	StartTime  time.Time
	Done       bool
	ReportPath string
	BatchErr   error

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new UI model with the given token names
func NewModel(names []string, paths []string) Model {
	tokens := make([]TokenProgress, len(names))
	for i := range names {
		tokens[i] = TokenProgress{
			TokenName: names[i],
			InputPath: paths[i],
			Status:    StatusQueued,
		}
	}

	return Model{
		Tokens:       tokens,
		CurrentIndex: -1, // No token processing yet
		TotalTokens:  len(names),
		StartTime:    time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case TokenStartMsg:
		m.CurrentIndex = msg.TokenIndex
		if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Tokens) {
			m.Tokens[m.CurrentIndex].Status = StatusExtracting
			m.Tokens[m.CurrentIndex].StartTime = time.Now()
		}

	case IntervalProgressMsg:
		if msg.TokenIndex >= 0 && msg.TokenIndex < len(m.Tokens) {
			tp := &m.Tokens[msg.TokenIndex]
			tp.Interval = msg.Interval
			tp.Total = msg.Total
			tp.ElapsedTime = time.Since(tp.StartTime)
		}

	case TokenCompleteMsg:
		if msg.TokenIndex >= 0 && msg.TokenIndex < len(m.Tokens) {
			tp := &m.Tokens[msg.TokenIndex]
			tp.Row = msg.Row
			tp.CleanedPath = msg.CleanedPath
			tp.Error = msg.Error
			tp.ElapsedTime = time.Since(tp.StartTime)

			switch {
			case msg.Error != nil:
				tp.Status = StatusError
				m.FailedTokens++
			case msg.Skipped:
				tp.Status = StatusSkipped
				m.SkippedTokens++
			default:
				tp.Status = StatusComplete
				m.CompletedTokens++
			}
		}

	case AllCompleteMsg:
		m.Done = true
		m.ReportPath = msg.ReportPath
		m.BatchErr = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}

	return renderProcessingView(m)
}
