// Package theme holds the colors and lipgloss styles shared by every screen.
package theme

import "charm.land/lipgloss/v2"

// Palette. Tuned for dark terminals.
var (
	Primary   = lipgloss.Color("#60A5FA") // sky
	Secondary = lipgloss.Color("#34D399") // mint
	Accent    = lipgloss.Color("#FBBF24") // amber
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#F87171")
	Text      = lipgloss.Color("#E5E7EB")
	TextDim   = lipgloss.Color("#9CA3AF")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

var (
	Title    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// Question is the interviewer's current question.
	Question = lipgloss.NewStyle().Foreground(Text).Bold(true).Align(lipgloss.Center)
	// Category tags the role being interviewed for.
	Category = lipgloss.NewStyle().Foreground(Secondary).Bold(true)

	Saved = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Alert = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

// Interview progress.
var (
	PipDone    = lipgloss.NewStyle().Foreground(Secondary)
	PipNext    = lipgloss.NewStyle().Foreground(Accent)
	PipPending = lipgloss.NewStyle().Foreground(Border)

	BarFilled = lipgloss.NewStyle().Background(Secondary)
	BarEmpty  = lipgloss.NewStyle().Background(Border)
)
