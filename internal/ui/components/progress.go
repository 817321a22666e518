package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/intervue/internal/ui/theme"
)

// Tracker shows how far an interview has got. Each question gets a pip,
// filled once answered; follow-ups lengthen the row as they are asked.
type Tracker struct {
	Answered int
	Total    int
}

// View renders the pips and an "answered/total" count within width. Rows too
// long to fit collapse into a solid bar.
func (t Tracker) View(width int) string {
	if t.Total <= 0 {
		return ""
	}
	done := min(max(t.Answered, 0), t.Total)
	count := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d/%d", done, t.Total))

	room := width - lipgloss.Width(count)
	if pipsWidth := 2*t.Total - 1; pipsWidth <= room {
		return t.pips(done) + count
	}
	return bar(done, t.Total, max(room, 4)) + count
}

func (t Tracker) pips(done int) string {
	parts := make([]string, t.Total)
	for i := range parts {
		switch {
		case i < done:
			parts[i] = theme.PipDone.Render("●")
		case i == done:
			parts[i] = theme.PipNext.Render("◉")
		default:
			parts[i] = theme.PipPending.Render("○")
		}
	}
	return strings.Join(parts, " ")
}

func bar(done, total, width int) string {
	filled := width * done / total
	return theme.BarFilled.Render(strings.Repeat(" ", filled)) +
		theme.BarEmpty.Render(strings.Repeat(" ", width-filled))
}
