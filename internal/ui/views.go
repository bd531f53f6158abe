package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderProcessingView renders the main processing view
func renderProcessingView(m Model) string {
	var b strings.Builder

	// Header
	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	// Token queue
	b.WriteString(renderTokenQueue(m))
	b.WriteString("\n")

	// Overall progress
	b.WriteString(renderOverallProgress(m))

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#006B6B")).
		Render("Cleantalking 🎧 - Silence & Pause Remover")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render(fmt.Sprintf("Processing %d recording(s)", m.TotalTokens))

	return title + "\n" + subtitle
}

// renderTokenQueue renders the list of recordings with their status
func renderTokenQueue(m Model) string {
	var b strings.Builder

	for i, token := range m.Tokens {
		b.WriteString(renderTokenEntry(token, i, m.CurrentIndex))
		b.WriteString("\n")
	}

	return b.String()
}

// renderTokenEntry renders a single recording entry in the queue
func renderTokenEntry(token TokenProgress, index int, currentIndex int) string {
	switch token.Status {
	case StatusComplete:
		// ✓ completed recording with raw vs cleaned summary
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
		summary := ""
		if token.Row != nil {
			summary = fmt.Sprintf("Raw: %.3fs | Cleaned: %.3fs | Δ %+.3fs",
				token.Row.DurationRaw, token.Row.DurationNoPauses,
				token.Row.DurationNoPauses-token.Row.DurationRaw)
		}
		return fmt.Sprintf(" %s %s\n   %s", icon, token.TokenName, summary)

	case StatusExtracting:
		// ⚙ active recording with interval progress
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("⚙")
		return fmt.Sprintf(" %s %s\n%s", icon, token.TokenName, renderTokenDetails(token))

	case StatusSkipped:
		// ○ recording without extractable speech
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("○")
		return fmt.Sprintf(" %s %s\n   No extractable speech - skipped", icon, token.TokenName)

	case StatusError:
		// ✗ failed recording
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000")).Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v", icon, token.TokenName, token.Error)

	default:
		// · queued recording
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("·")
		return fmt.Sprintf(" %s %s\n   Queued...", icon, token.TokenName)
	}
}

// renderTokenDetails renders interval progress for the active recording
func renderTokenDetails(token TokenProgress) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#006B6B")).
		Padding(0, 1).
		Width(60)

	var content strings.Builder

	content.WriteString(fmt.Sprintf("Extracting speech intervals (%d/%d)\n", token.Interval, token.Total))
	content.WriteString(renderProgressBar(token.Progress(), 40))
	content.WriteString("\n")
	content.WriteString(fmt.Sprintf("⏱  Elapsed: %.1fs", token.ElapsedTime.Seconds()))

	return box.Render(content.String())
}

// renderProgressBar renders a progress bar
func renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}

// renderOverallProgress renders the overall progress footer
func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1).
		Width(60)

	var content string
	if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Tokens) {
		current := m.CurrentIndex + 1 // 1-indexed for display
		content = fmt.Sprintf("Processing recording %d of %d (%d complete, %d skipped)",
			current, m.TotalTokens, m.CompletedTokens, m.SkippedTokens)
	} else {
		content = fmt.Sprintf("Overall Progress: %d/%d complete", m.CompletedTokens, m.TotalTokens)
	}

	return box.Render(content)
}

// renderCompletionSummary renders the final completion summary
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	if m.BatchErr != nil {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000")).
			Render("✗ Batch aborted")
		b.WriteString(header)
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("   %v\n", m.BatchErr))
		return b.String()
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00AA00")).
		Render("✨ Batch Complete!")
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, token := range m.Tokens {
		switch token.Status {
		case StatusComplete:
			b.WriteString(renderCompletedToken(token))
			b.WriteString("\n")
		case StatusSkipped:
			b.WriteString(fmt.Sprintf(" ○ %s - no extractable speech\n", token.TokenName))
		}
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d recording(s) cleaned, %d skipped\n", m.CompletedTokens, m.SkippedTokens))
	if m.ReportPath != "" {
		b.WriteString(fmt.Sprintf("Report written to %s\n", m.ReportPath))
	}

	return b.String()
}

// renderCompletedToken renders a summary for a completed recording
func renderCompletedToken(token TokenProgress) string {
	icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")

	if token.Row == nil {
		return fmt.Sprintf(" %s %s", icon, token.TokenName)
	}

	line := fmt.Sprintf(" %s %s\n"+
		"   Duration: %.3fs → %.3fs | Mean: %.1f dB → %.1f dB",
		icon, token.TokenName,
		token.Row.DurationRaw, token.Row.DurationNoPauses,
		token.Row.AmplitudeRaw, token.Row.AmplitudeNoPauses)

	if token.CleanedPath != "" {
		line += "\n   Cleaned audio: " + token.CleanedPath
	}

	return line
}
