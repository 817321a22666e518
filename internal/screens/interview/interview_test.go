package interview

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	iv "github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/router"
	"github.com/abhisek/intervue/internal/screen"
	"github.com/abhisek/intervue/internal/store"
)

// mockTranscriptRepo implements store.TranscriptRepo for testing.
type mockTranscriptRepo struct {
	saved []store.TranscriptData
}

func (m *mockTranscriptRepo) Save(_ context.Context, data store.TranscriptData) (int, error) {
	m.saved = append(m.saved, data)
	return len(m.saved), nil
}
func (m *mockTranscriptRepo) List(_ context.Context, _ int) ([]store.Transcript, error) {
	return nil, nil
}
func (m *mockTranscriptRepo) Get(_ context.Context, _ int) (*store.Transcript, error) {
	return nil, store.ErrNotFound
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func testScreen() (*InterviewScreen, *mockTranscriptRepo) {
	repo := &mockTranscriptRepo{}
	s := New(Deps{Transcripts: repo}, iv.Selection{JobCategory: "Software Engineering", JobSkill: "Backend Development"})
	return s, repo
}

// answer types text and submits it, running the resulting command inline.
func answer(t *testing.T, s *InterviewScreen, text string) *InterviewScreen {
	t.Helper()
	s.input.SetValue(text)
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*InterviewScreen)
	if s.phase != phaseThinking {
		t.Fatalf("phase = %v, want thinking", s.phase)
	}
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	scr, _ = s.Update(cmd())
	return scr.(*InterviewScreen)
}

func isPop(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(router.PopScreenMsg)
	return ok
}

func TestInterviewScreen_StartsOnFirstQuestion(t *testing.T) {
	s, _ := testScreen()
	if s.Title() != "Interview" {
		t.Errorf("Title = %q", s.Title())
	}
	q := s.Session().CurrentQuestion()
	if q == nil || q.ID != "q1" {
		t.Fatalf("current question = %+v, want q1", q)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, q.Text) {
		t.Error("expected question text in view")
	}
}

func TestInterviewScreen_SubmitAdvances(t *testing.T) {
	s, _ := testScreen()
	s = answer(t, s, "I design HTTP services.")

	if s.phase != phaseAnswering {
		t.Errorf("phase = %v, want answering", s.phase)
	}
	if got := s.Session().Answered(); got != 1 {
		t.Errorf("answered = %d, want 1", got)
	}
	if s.Session().CurrentQuestionIndex != 1 {
		t.Errorf("index = %d, want 1", s.Session().CurrentQuestionIndex)
	}
	if s.input.Value() != "" {
		t.Errorf("input not cleared: %q", s.input.Value())
	}
}

func TestInterviewScreen_EmptySubmitIgnored(t *testing.T) {
	s, _ := testScreen()
	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*InterviewScreen)
	if cmd != nil {
		t.Error("expected no command for empty answer")
	}
	if s.notice == "" {
		t.Error("expected a notice")
	}
	if s.Session().Answered() != 0 {
		t.Error("expected no response recorded")
	}
}

func TestInterviewScreen_FinishRequiresAnswer(t *testing.T) {
	s, _ := testScreen()
	scr, cmd := s.Update(ctrlKey('e'))
	s = scr.(*InterviewScreen)
	if cmd != nil || s.phase != phaseAnswering {
		t.Error("expected finish to be refused before any answer")
	}
}

func TestInterviewScreen_FinishShowsFeedbackAndSaves(t *testing.T) {
	s, repo := testScreen()
	s = answer(t, s, "I have shipped payment systems for five years.")
	s = answer(t, s, "Go and Postgres mostly.")

	scr, cmd := s.Update(ctrlKey('e'))
	s = scr.(*InterviewScreen)
	if s.phase != phaseSummarizing || cmd == nil {
		t.Fatalf("expected summarizing with a command, phase = %v", s.phase)
	}

	scr, saveCmd := s.Update(cmd())
	s = scr.(*InterviewScreen)
	if s.phase != phaseFeedback {
		t.Fatalf("phase = %v, want feedback", s.phase)
	}
	if !strings.Contains(s.feedback, "Software Engineering") {
		t.Errorf("feedback = %q", s.feedback)
	}
	if saveCmd == nil {
		t.Fatal("expected save command")
	}

	scr, _ = s.Update(saveCmd())
	s = scr.(*InterviewScreen)
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d transcripts, want 1", len(repo.saved))
	}
	got := repo.saved[0]
	if got.SessionID != s.Session().ID || len(got.Responses) != 2 || got.Feedback != s.feedback {
		t.Errorf("unexpected transcript: %+v", got)
	}
	if got.JobSkill != "Backend Development" {
		t.Errorf("skill = %q", got.JobSkill)
	}
	if s.savedID != 1 {
		t.Errorf("savedID = %d", s.savedID)
	}
	if !strings.Contains(s.View(100, 30), "Saved to history") {
		t.Error("expected saved marker in view")
	}

	_, cmd = s.Update(specialKey(tea.KeyEnter))
	if !isPop(cmd) {
		t.Error("expected Enter to leave the feedback view")
	}
}

func TestInterviewScreen_EscWithoutAnswersLeaves(t *testing.T) {
	s, _ := testScreen()
	if s.HandlesBack() {
		t.Error("expected app to handle Esc before any answer")
	}
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if !isPop(cmd) {
		t.Error("expected pop")
	}
}

func TestInterviewScreen_QuitConfirm(t *testing.T) {
	s, repo := testScreen()
	s = answer(t, s, "Hello.")
	if !s.HandlesBack() {
		t.Fatal("expected screen to handle Esc once answers exist")
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	if !scr.(*InterviewScreen).showingQuitConfirm {
		t.Fatal("expected quit confirmation")
	}
	scr, _ = scr.Update(keyPress('n'))
	if scr.(*InterviewScreen).showingQuitConfirm {
		t.Fatal("expected confirmation dismissed")
	}

	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	_, cmd := scr.Update(keyPress('y'))
	if !isPop(cmd) {
		t.Error("expected pop after confirming")
	}
	if len(repo.saved) != 0 {
		t.Error("expected nothing saved when leaving early")
	}
}

func TestInterviewScreen_KeysIgnoredWhileThinking(t *testing.T) {
	s, _ := testScreen()
	s.input.SetValue("An answer")
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*InterviewScreen)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Error("expected no second submit while thinking")
	}
	if !strings.Contains(s.View(100, 30), "Thinking") {
		t.Error("expected thinking indicator")
	}
}
