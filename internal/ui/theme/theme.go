package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: calm, high-contrast on dark terminals
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	Section = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true).
		MarginTop(1)
)

// Feedback
var (
	Strong = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Weak = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Neutral = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// ScoreColor maps a 0-10 score onto the feedback palette using the same
// bands that drive difficulty adjustment.
func ScoreColor(score float64) color.Color {
	switch {
	case score >= 8:
		return Success
	case score <= 4:
		return Error
	default:
		return Accent
	}
}

// Score renders a 0-10 score in its band color.
func Score(score float64) string {
	return lipgloss.NewStyle().
		Foreground(ScoreColor(score)).
		Bold(true).
		Render(fmt.Sprintf("%.1f/10", score))
}
