package interview

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	iv "github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/logger"
	"github.com/abhisek/intervue/internal/router"
	"github.com/abhisek/intervue/internal/screen"
	"github.com/abhisek/intervue/internal/store"
	"github.com/abhisek/intervue/internal/ui/components"
	"github.com/abhisek/intervue/internal/ui/layout"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseThinking
	phaseSummarizing
	phaseFeedback
)

// Deps are the services the interview screen talks to.
type Deps struct {
	Interviewer *iv.Interviewer
	Transcripts store.TranscriptRepo
	Logger      *zap.Logger
}

// InterviewScreen runs one practice interview: it shows the current
// question, records answers and ends with written feedback.
type InterviewScreen struct {
	deps    Deps
	session *iv.Session
	input   components.AnswerInput
	phase   phase
	elapsed time.Duration

	feedback string
	savedID  int
	saveErr  string
	notice   string

	showingQuitConfirm bool
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.BackHandler = (*InterviewScreen)(nil)

// New starts a session for sel and returns the screen driving it.
func New(d Deps, sel iv.Selection) *InterviewScreen {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Interviewer == nil {
		d.Interviewer = iv.NewInterviewer(nil, iv.DefaultConfig(), d.Logger)
	}
	return &InterviewScreen{
		deps:    d,
		session: iv.Start(sel),
		input:   components.NewAnswerInput(),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), tickCmd())
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

// Session returns the session as last committed by the screen.
func (s *InterviewScreen) Session() *iv.Session {
	return s.session
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.phase {
	case phaseThinking, phaseSummarizing:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+E", Description: "Finish"},
		{Key: "Esc", Description: "Leave"},
	}
}

// HandlesBack keeps Esc from discarding an interview with answers in it.
func (s *InterviewScreen) HandlesBack() bool {
	return s.phase != phaseFeedback && s.session.Answered() > 0
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case responseProcessedMsg:
		return s.handleResponseProcessed(msg)

	case feedbackReadyMsg:
		return s.handleFeedbackReady(msg)

	case transcriptSavedMsg:
		if msg.Err != nil {
			s.saveErr = msg.Err.Error()
		} else {
			s.savedID = msg.ID
		}
		return s, nil

	case timerTickMsg:
		if s.phase == phaseFeedback {
			return s, nil
		}
		s.elapsed = time.Since(s.session.StartedAt)
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	switch s.phase {
	case phaseThinking, phaseSummarizing:
		return s, nil

	case phaseFeedback:
		switch key {
		case "enter", "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.session.Answered() > 0 {
			s.showingQuitConfirm = true
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		return s.submit()
	case "ctrl+e":
		return s.finish()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InterviewScreen) submit() (screen.Screen, tea.Cmd) {
	text := s.input.Value()
	if text == "" {
		s.notice = "Type an answer before submitting."
		return s, nil
	}
	if s.session.CurrentQuestion() == nil {
		return s, nil
	}

	s.notice = ""
	s.phase = phaseThinking
	s.input.SetEnabled(false)

	// The command works on a copy so View never races the interviewer.
	working := s.session.Clone()
	interviewer := s.deps.Interviewer
	return s, func() tea.Msg {
		next, err := interviewer.SubmitResponse(s.ctx(working), working, text)
		return responseProcessedMsg{Session: working, Next: next, Err: err}
	}
}

func (s *InterviewScreen) handleResponseProcessed(msg responseProcessedMsg) (screen.Screen, tea.Cmd) {
	s.phase = phaseAnswering
	if msg.Err != nil {
		s.notice = msg.Err.Error()
		return s, s.input.SetEnabled(true)
	}
	s.session = msg.Session
	s.input.Reset()
	return s, s.input.SetEnabled(true)
}

func (s *InterviewScreen) finish() (screen.Screen, tea.Cmd) {
	if s.session.Answered() == 0 {
		s.notice = "Answer at least one question to get feedback."
		return s, nil
	}

	s.notice = ""
	s.phase = phaseSummarizing
	s.input.SetEnabled(false)

	snapshot := s.session.Clone()
	interviewer := s.deps.Interviewer
	return s, func() tea.Msg {
		feedback, err := interviewer.Feedback(s.ctx(snapshot), snapshot)
		return feedbackReadyMsg{Feedback: feedback, Err: err}
	}
}

func (s *InterviewScreen) handleFeedbackReady(msg feedbackReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseAnswering
		s.notice = msg.Err.Error()
		return s, s.input.SetEnabled(true)
	}
	s.phase = phaseFeedback
	s.feedback = msg.Feedback
	return s, s.saveTranscript()
}

func (s *InterviewScreen) saveTranscript() tea.Cmd {
	repo := s.deps.Transcripts
	if repo == nil {
		return nil
	}
	data := transcriptData(s.session, s.feedback)
	log := s.deps.Logger
	return func() tea.Msg {
		id, err := repo.Save(context.Background(), data)
		if err != nil {
			log.Warn("Failed to save interview transcript",
				zap.String("session_id", data.SessionID), zap.Error(err))
		}
		return transcriptSavedMsg{ID: id, Err: err}
	}
}

func (s *InterviewScreen) ctx(session *iv.Session) context.Context {
	return logger.WithSessionID(context.Background(), session.ID)
}

func transcriptData(session *iv.Session, feedback string) store.TranscriptData {
	questions := make([]store.QuestionRecord, len(session.Questions))
	for i, q := range session.Questions {
		questions[i] = store.QuestionRecord{ID: q.ID, Text: q.Text, Category: q.Category}
	}
	responses := make([]store.ResponseRecord, len(session.Responses))
	for i, r := range session.Responses {
		responses[i] = store.ResponseRecord{QuestionID: r.QuestionID, Text: r.Text}
	}
	return store.TranscriptData{
		SessionID:         session.ID,
		JobCategory:       session.JobCategory,
		JobSkill:          session.JobSkill,
		TechnicalLanguage: session.TechnicalLanguage,
		Questions:         questions,
		Responses:         responses,
		Feedback:          feedback,
		StartedAt:         session.StartedAt,
		EndedAt:           time.Now(),
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
