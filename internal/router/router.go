// Package router keeps the stack of open screens. The practice flow is
// home → setup → interview, where the interview takes the setup screen's
// place so leaving it returns to the home menu.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intervue/internal/screen"
)

// PushScreenMsg opens Screen on top of the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// ReplaceScreenMsg swaps the active screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen. The root screen is never closed.
type PopScreenMsg struct{}

// Router owns the screen stack. The zero value is not usable; call New.
type Router struct {
	stack []screen.Screen
}

// New returns a Router whose root is home.
func New(home screen.Screen) *Router {
	return &Router{stack: []screen.Screen{home}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the active screen for s. Replacing the root keeps depth 1.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Pop closes the active screen unless it is the root.
func (r *Router) Pop() {
	if len(r.stack) > 1 {
		r.stack[len(r.stack)-1] = nil
		r.stack = r.stack[:len(r.stack)-1]
	}
}

// Active returns the screen receiving input.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth is the number of open screens, root included.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Titles lists the open screens' titles from the root up.
func (r *Router) Titles() []string {
	titles := make([]string, 0, len(r.stack))
	for _, s := range r.stack {
		if t := s.Title(); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	}

	next, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

// View renders the active screen into a width x height area.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
