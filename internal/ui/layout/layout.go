// Package layout draws the frame around every screen: a header bar with the
// app name, screen title and model status, and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/intervue/internal/ui/theme"
)

// Smallest terminal the chat transcript and answer box fit in.
const (
	MinWidth  = 64
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// Chrome is everything drawn around the active screen.
type Chrome struct {
	// Titles are the open screens from the root up; the header shows them
	// as a breadcrumb.
	Titles []string

	// Status is right-aligned in the header, e.g. "AI: gpt-4o".
	Status string

	Hints []KeyHint
}

// TooSmall reports whether the terminal is below MinWidth x MinHeight.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// TooSmallMessage asks the user to resize, centred in the window.
func TooSmallMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Intervue needs at least %d x %d.\n\nThis window is %d x %d.", MinWidth, MinHeight, width, height))
}

// Render fills width x height with the header, the body and the footer.
// body is called with the space left between the two bars.
func Render(c Chrome, body func(width, height int) string, width, height int) string {
	header := Header(c.Titles, c.Status, width)
	footer := Footer(c.Hints, width)

	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return strings.Join([]string{header, content, footer}, "\n")
}

// Header renders the top bar. The breadcrumb sits between the app name and
// the status and is cut from the left when space runs out.
func Header(titles []string, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Intervue")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	// Two border columns plus one space of padding each side.
	inner := max(width-4, 0)
	room := inner - lipgloss.Width(name) - lipgloss.Width(right) - 4
	crumb := lipgloss.NewStyle().Foreground(theme.Text).Render(breadcrumb(titles, room))

	gap := max(inner-lipgloss.Width(name)-lipgloss.Width(crumb)-lipgloss.Width(right), 2)
	line := name + strings.Repeat(" ", gap/2) + crumb + strings.Repeat(" ", gap-gap/2) + right
	return bar(width).Render(" " + line + " ")
}

// Footer renders the key hint bar.
func Footer(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar(width).Render("  " + strings.Join(parts, "   "))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// breadcrumb joins titles with " › ", dropping the oldest ones until the
// result fits in room columns.
func breadcrumb(titles []string, room int) string {
	for len(titles) > 0 {
		s := strings.Join(titles, " › ")
		if lipgloss.Width(s) <= room || len(titles) == 1 {
			return s
		}
		titles = titles[1:]
	}
	return ""
}
