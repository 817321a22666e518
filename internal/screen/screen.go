// Package screen defines what the router stacks: home, setup, interview and
// history each implement Screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intervue/internal/ui/layout"
)

type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View draws the body only; the app frames it with header and footer.
	View(width, height int) string

	// Title is the screen's breadcrumb entry.
	Title() string
}

// KeyHintProvider screens replace the footer's default hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler screens get Esc themselves while HandlesBack is true, e.g. to
// step back through a wizard or confirm abandoning an interview.
type BackHandler interface {
	HandlesBack() bool
}
