package interview

import (
	"time"

	"github.com/google/uuid"
)

// Start begins a new session for sel. Known categories open with the common
// questions followed by their category questions; unknown categories get the
// common questions only.
func Start(sel Selection) *Session {
	return &Session{
		ID:                uuid.NewString(),
		JobCategory:       sel.JobCategory,
		JobSkill:          sel.JobSkill,
		TechnicalLanguage: sel.TechnicalLanguage,
		Questions:         seedQuestions(sel.JobCategory),
		Responses:         []Response{},
		StartedAt:         time.Now(),
	}
}

// CurrentQuestion returns a copy of the question at the current index, or
// nil once the index has moved past the end of the list.
func (s *Session) CurrentQuestion() *Question {
	if s == nil || s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex >= len(s.Questions) {
		return nil
	}
	q := s.Questions[s.CurrentQuestionIndex]
	return &q
}

// Answered returns how many questions have a response.
func (s *Session) Answered() int {
	return len(s.Responses)
}
