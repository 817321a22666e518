package interview

import (
	"errors"
	"time"
)

var (
	// ErrNoCurrentQuestion is returned when a response is submitted past the
	// end of the question list.
	ErrNoCurrentQuestion = errors.New("no current question")

	// ErrNoResponses is returned when feedback is requested before any answer.
	ErrNoResponses = errors.New("no responses to review")
)

// Question categories used outside the seed tables.
const (
	CategoryTechnical = "technical"
	CategoryFollowUp  = "follow_up"
)

// Question is one interview prompt. Questions are never edited once appended.
type Question struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Response is the candidate's answer to one question.
type Response struct {
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
}

// Selection is what the candidate is practising for.
type Selection struct {
	JobCategory       string `json:"jobCategory"`
	JobSkill          string `json:"jobSkill"`
	TechnicalLanguage string `json:"technicalLanguage,omitempty"`
}

// Session is one interview attempt. It has a single owner and is not safe
// for concurrent use; callers serialize SubmitResponse and Feedback.
type Session struct {
	ID                   string     `json:"id"`
	JobCategory          string     `json:"jobCategory"`
	JobSkill             string     `json:"jobSkill"`
	TechnicalLanguage    string     `json:"technicalLanguage,omitempty"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	Questions            []Question `json:"questions"`
	Responses            []Response `json:"responses"`
	StartedAt            time.Time  `json:"startedAt"`
}

// Selection returns the category, skill and language the session was started with.
func (s *Session) Selection() Selection {
	return Selection{
		JobCategory:       s.JobCategory,
		JobSkill:          s.JobSkill,
		TechnicalLanguage: s.TechnicalLanguage,
	}
}

// Clone returns a deep copy of s.
func (s *Session) Clone() *Session {
	c := *s
	c.Questions = append([]Question(nil), s.Questions...)
	c.Responses = append([]Response{}, s.Responses...)
	return &c
}
