package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intervue/internal/router"
	"github.com/abhisek/intervue/internal/screen"
)

// backScreen records Esc presses it receives.
type backScreen struct {
	handles bool
	escs    int
}

func (s *backScreen) Init() tea.Cmd { return nil }
func (s *backScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		s.escs++
	}
	return s, nil
}
func (s *backScreen) View(int, int) string { return "back" }
func (s *backScreen) Title() string        { return "Back" }
func (s *backScreen) HandlesBack() bool    { return s.handles }

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestAppModel_EscAtRootIsNoop(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command at root")
	}
}

func TestAppModel_EscPopsUnlessScreenHandlesIt(t *testing.T) {
	m := newAppModel(Options{})
	s := &backScreen{}
	m.router.Push(s)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
	if s.escs != 0 {
		t.Error("screen should not see Esc when the app pops it")
	}

	s.handles = true
	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.escs != 1 {
		t.Errorf("escs = %d, want 1", s.escs)
	}
}

func TestAppModel_Status(t *testing.T) {
	if m := newAppModel(Options{ModelID: "gpt-4o"}); m.status != "AI: gpt-4o" {
		t.Errorf("status = %q", m.status)
	}
	if m := newAppModel(Options{}); m.status != "offline" {
		t.Errorf("status = %q", m.status)
	}
}

func TestAppModel_WindowSize(t *testing.T) {
	m := newAppModel(Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	am := updated.(AppModel)
	if am.width != 100 || am.height != 30 {
		t.Errorf("size = %dx%d", am.width, am.height)
	}
	am.View()
}
