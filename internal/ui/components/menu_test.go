package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			picked = label
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "first", Disabled: true},
		{Label: "second", Action: pick("second")},
		{Label: "third", Disabled: true},
		{Label: "fourth", Action: pick("fourth")},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Fatalf("selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "fourth" {
		t.Errorf("picked = %q", picked)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("selected = %d, want 1", m.Selected)
	}
	if !strings.Contains(m.View(), "▸ 2. second") {
		t.Error("expected marker on selected item")
	}
}

func TestMenu_WrapsAround(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Software Engineering"},
		{Label: "Data Science"},
		{Label: "Marketing", Disabled: true},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Fatalf("up from top: selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Fatalf("down from last enabled: selected = %d, want 0", m.Selected)
	}
}

func TestMenu_NumberShortcuts(t *testing.T) {
	var picked string
	items := []MenuItem{
		{Label: "Start Practice"},
		{Label: "History", Disabled: true},
		{Label: "Quit"},
	}
	for i := range items {
		label := items[i].Label
		items[i].Action = func() tea.Cmd {
			picked = label
			return nil
		}
	}
	m := NewMenu(items)

	m, _ = m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	if picked != "Quit" || m.Selected != 2 {
		t.Fatalf("picked = %q, selected = %d", picked, m.Selected)
	}

	picked = ""
	m, _ = m.Update(tea.KeyPressMsg{Code: '2', Text: "2"})
	if picked != "" {
		t.Errorf("disabled item was picked: %q", picked)
	}
	m.Update(tea.KeyPressMsg{Code: '7', Text: "7"})
	if picked != "" {
		t.Errorf("out of range shortcut picked %q", picked)
	}
}

func TestMenu_NoNumbersForLongLists(t *testing.T) {
	items := make([]MenuItem, 10)
	for i := range items {
		items[i] = MenuItem{Label: "Option " + string(rune('A'+i))}
	}
	m := NewMenu(items)
	m, _ = m.Update(tea.KeyPressMsg{Code: '5', Text: "5"})
	if m.Selected != 0 {
		t.Errorf("selected = %d, want shortcuts off", m.Selected)
	}
	if strings.Contains(m.View(), "1. ") {
		t.Error("long list should not be numbered")
	}
}

func TestMenu_ShowsHintForSelected(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Start Practice", Hint: "five questions"},
		{Label: "History", Hint: "past sessions"},
	})
	view := m.View()
	if !strings.Contains(view, "five questions") || strings.Contains(view, "past sessions") {
		t.Errorf("view = %q", view)
	}
}
