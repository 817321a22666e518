package components

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intervue/internal/ui/theme"
)

// MenuItem is one choice in a Menu, such as a job category in setup.
type MenuItem struct {
	Label string

	// Hint is shown dimmed next to the item while it is selected.
	Hint string

	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of choices. Arrow keys (or j/k) move and wrap
// around, Enter picks, and 1-9 pick the numbered item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu returns a Menu positioned on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	return m
}

// Update handles navigation keys. Other messages are ignored.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.pick(m.Selected)
	default:
		if n, err := strconv.Atoi(k); err == nil && n >= 1 && n <= 9 && m.numbered() {
			return m, m.pick(n - 1)
		}
	}
	return m, nil
}

// move steps to the next enabled item in direction dir, wrapping at the
// ends. It stays put when nothing else is enabled.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m *Menu) pick(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled {
		return nil
	}
	m.Selected = i
	if m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

// numbered reports whether every item has a single-digit shortcut.
func (m Menu) numbered() bool {
	return len(m.Items) <= 9
}

// View renders one line per item.
func (m Menu) View() string {
	var (
		b        strings.Builder
		selected = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		normal   = lipgloss.NewStyle().Foreground(theme.Text)
		disabled = lipgloss.NewStyle().Foreground(theme.TextDim)
		hint     = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	)

	for i, item := range m.Items {
		label := item.Label
		if m.numbered() {
			label = strconv.Itoa(i+1) + ". " + label
		}

		switch {
		case i == m.Selected:
			b.WriteString(selected.Render("  ▸ " + label))
			if item.Hint != "" {
				b.WriteString("  " + hint.Render(item.Hint))
			}
		case item.Disabled:
			b.WriteString(disabled.Render("    " + label))
		default:
			b.WriteString(normal.Render("    " + label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
