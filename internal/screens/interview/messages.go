package interview

import (
	"time"

	iv "github.com/abhisek/intervue/internal/interview"
)

// responseProcessedMsg carries the session after a response was recorded.
type responseProcessedMsg struct {
	Session *iv.Session
	Next    *iv.Question
	Err     error
}

// feedbackReadyMsg is sent when end-of-interview feedback is available.
type feedbackReadyMsg struct {
	Feedback string
	Err      error
}

// transcriptSavedMsg confirms the transcript was written to history.
type transcriptSavedMsg struct {
	ID  int
	Err error
}

// timerTickMsg is sent every second to update the elapsed time.
type timerTickMsg time.Time
