package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/intervue/internal/router"
	"github.com/abhisek/intervue/internal/store"
)

type mockTranscriptRepo struct {
	transcripts []store.Transcript
	err         error
	limit       int
}

func (m *mockTranscriptRepo) Save(context.Context, store.TranscriptData) (int, error) {
	return 0, nil
}
func (m *mockTranscriptRepo) List(_ context.Context, limit int) ([]store.Transcript, error) {
	m.limit = limit
	return m.transcripts, m.err
}
func (m *mockTranscriptRepo) Get(context.Context, int) (*store.Transcript, error) {
	return nil, store.ErrNotFound
}

func loaded(t *testing.T, repo *mockTranscriptRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	s.Update(s.Init()())
	return s
}

func TestHistory_Empty(t *testing.T) {
	repo := &mockTranscriptRepo{}
	s := New(repo)
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading state before data arrives")
	}
	s.Update(s.Init()())
	if repo.limit != listLimit {
		t.Errorf("limit = %d, want %d", repo.limit, listLimit)
	}
	if !strings.Contains(s.View(100, 30), "No interviews yet") {
		t.Error("expected empty state")
	}
}

func TestHistory_Error(t *testing.T) {
	s := loaded(t, &mockTranscriptRepo{err: errors.New("disk gone")})
	if !strings.Contains(s.View(100, 30), "disk gone") {
		t.Error("expected error in view")
	}
}

func TestHistory_ListAndExpand(t *testing.T) {
	started := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	repo := &mockTranscriptRepo{transcripts: []store.Transcript{
		{ID: 2, TranscriptData: store.TranscriptData{
			JobCategory: "Data Science",
			JobSkill:    "Machine Learning",
			Questions: []store.QuestionRecord{
				{ID: "q1", Text: "Tell me about yourself."},
				{ID: "q2", Text: "Why this role?"},
			},
			Responses: []store.ResponseRecord{{QuestionID: "q1", Text: "I train models."}},
			Feedback:  "Add more detail.",
			StartedAt: started,
			EndedAt:   started.Add(5 * time.Minute),
		}},
		{ID: 1, TranscriptData: store.TranscriptData{
			JobCategory: "Design",
			StartedAt:   started.Add(-24 * time.Hour),
			EndedAt:     started.Add(-23 * time.Hour),
		}},
	}}
	s := loaded(t, repo)

	view := s.View(140, 40)
	if !strings.Contains(view, "Data Science / Machine Learning") || !strings.Contains(view, "1/2 answered") {
		t.Errorf("unexpected list view:\n%s", view)
	}
	if strings.Contains(view, "I train models.") {
		t.Error("details should be collapsed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(140, 40)
	for _, want := range []string{"I train models.", "(not answered)", "Add more detail."} {
		if !strings.Contains(view, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
}

func TestHistory_EscPops(t *testing.T) {
	s := loaded(t, &mockTranscriptRepo{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func runs(categories ...string) []store.Transcript {
	out := make([]store.Transcript, len(categories))
	for i, c := range categories {
		out[i] = store.Transcript{ID: len(categories) - i, TranscriptData: store.TranscriptData{JobCategory: c}}
	}
	return out
}

func TestHistory_FilterCycles(t *testing.T) {
	s := loaded(t, &mockTranscriptRepo{transcripts: runs("Design", "Data Science", "Design")})

	press := func(code rune) { s.Update(tea.KeyPressMsg{Code: code, Text: string(code)}) }

	press('f')
	if s.filter != "Design" || len(s.visible) != 2 || s.Title() != "History: Design" {
		t.Fatalf("filter = %q, visible = %d", s.filter, len(s.visible))
	}
	press('f')
	if s.filter != "Data Science" || len(s.visible) != 1 {
		t.Fatalf("filter = %q, visible = %d", s.filter, len(s.visible))
	}
	press('f')
	if s.filter != "" || len(s.visible) != 3 || s.Title() != "History" {
		t.Fatalf("expected all runs, filter = %q, visible = %d", s.filter, len(s.visible))
	}
	if len(s.all) != 3 {
		t.Error("filtering must not drop runs from the full list")
	}
}

func TestHistory_EscClosesDetailFirst(t *testing.T) {
	s := loaded(t, &mockTranscriptRepo{transcripts: runs("Design")})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.open != 0 {
		t.Fatalf("open = %d, want 0", s.open)
	}
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil || s.open != -1 {
		t.Fatal("Esc should collapse the open run without leaving")
	}
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("second Esc should leave")
	}
}

func TestHistory_Reload(t *testing.T) {
	repo := &mockTranscriptRepo{}
	s := loaded(t, repo)
	repo.transcripts = runs("Design")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil || !strings.Contains(s.View(100, 30), "Loading") {
		t.Fatal("expected reload")
	}
	s.Update(cmd())
	if len(s.visible) != 1 {
		t.Errorf("visible = %d after reload", len(s.visible))
	}
}

func TestHistory_MarksFollowUps(t *testing.T) {
	run := store.Transcript{TranscriptData: store.TranscriptData{
		JobCategory: "Software Engineering",
		Questions: []store.QuestionRecord{
			{ID: "q1", Text: "Describe a hard bug.", Category: "common"},
			{ID: "f1", Text: "How did you confirm the fix?", Category: "follow_up"},
		},
	}}
	out := renderDetail(run, 80)
	if !strings.Contains(out, "Q: Describe a hard bug.") || !strings.Contains(out, "↳ How did you confirm the fix?") {
		t.Errorf("unexpected detail:\n%s", out)
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		n, selected, rows int
		from, to          int
	}{
		{3, 0, 10, 0, 3},
		{20, 0, 5, 0, 5},
		{20, 10, 5, 8, 13},
		{20, 19, 5, 15, 20},
	}
	for _, tt := range tests {
		from, to := window(tt.n, tt.selected, tt.rows)
		if from != tt.from || to != tt.to {
			t.Errorf("window(%d, %d, %d) = [%d, %d), want [%d, %d)", tt.n, tt.selected, tt.rows, from, to, tt.from, tt.to)
		}
	}
}
