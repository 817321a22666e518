package router

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intervue/internal/screen"
)

// fakeScreen records Init and the last message it was sent.
type fakeScreen struct {
	title   string
	initRan bool
	last    tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.last = msg
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }

func TestPracticeFlow(t *testing.T) {
	home := &fakeScreen{title: ""}
	r := New(home)

	setup := &fakeScreen{title: "Setup"}
	r.Update(PushScreenMsg{Screen: setup})
	if r.Depth() != 2 || !setup.initRan {
		t.Fatalf("depth = %d, init = %v", r.Depth(), setup.initRan)
	}

	// Starting the interview takes the setup screen's place.
	iv := &fakeScreen{title: "Interview"}
	r.Update(ReplaceScreenMsg{Screen: iv})
	if r.Depth() != 2 {
		t.Fatalf("depth after replace = %d, want 2", r.Depth())
	}
	if !iv.initRan {
		t.Error("expected Init to run on the interview screen")
	}
	if got := r.Titles(); !slices.Equal(got, []string{"Interview"}) {
		t.Errorf("titles = %v", got)
	}

	// Leaving the interview lands on home, not setup.
	r.Update(PopScreenMsg{})
	if r.Active() != home {
		t.Fatalf("active = %q, want home", r.Active().Title())
	}
}

func TestPopKeepsRoot(t *testing.T) {
	r := New(&fakeScreen{title: "Home"})
	r.Pop()
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1", r.Depth())
	}
}

func TestReplaceRoot(t *testing.T) {
	r := New(&fakeScreen{title: "Home"})
	r.Replace(&fakeScreen{title: "History"})
	if r.Depth() != 1 || r.Active().Title() != "History" {
		t.Errorf("depth = %d, active = %q", r.Depth(), r.Active().Title())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	home := &fakeScreen{title: "Home"}
	history := &fakeScreen{title: "History"}
	r := New(home)
	r.Push(history)

	r.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if _, ok := history.last.(tea.KeyPressMsg); !ok {
		t.Errorf("active screen got %v", history.last)
	}
	if home.last != nil {
		t.Error("background screen should not receive input")
	}
	if r.View(80, 24) != "History" {
		t.Errorf("view = %q", r.View(80, 24))
	}
	if got := r.Titles(); !slices.Equal(got, []string{"Home", "History"}) {
		t.Errorf("titles = %v", got)
	}
}
