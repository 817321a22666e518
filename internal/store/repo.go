package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	After   int64  // sequence > After
	Purpose string // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage for one purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

// QuestionRecord is a question as persisted in a transcript.
type QuestionRecord struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ResponseRecord is an answer as persisted in a transcript.
type ResponseRecord struct {
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
}

// TranscriptData is one finished practice run.
type TranscriptData struct {
	SessionID         string
	JobCategory       string
	JobSkill          string
	TechnicalLanguage string
	Questions         []QuestionRecord
	Responses         []ResponseRecord
	Feedback          string
	StartedAt         time.Time
	EndedAt           time.Time
}

// Transcript is a stored practice run.
type Transcript struct {
	ID       int
	Sequence int64
	TranscriptData
}

// TranscriptRepo stores locally saved practice history.
type TranscriptRepo interface {
	Save(ctx context.Context, data TranscriptData) (int, error)

	// List returns transcripts newest first.
	List(ctx context.Context, limit int) ([]Transcript, error)

	// Get returns ErrNotFound when the id is unknown.
	Get(ctx context.Context, id int) (*Transcript, error)
}

// CredentialRepo stores the optional API key, one per provider.
type CredentialRepo interface {
	SetAPIKey(ctx context.Context, provider, key string) error

	// APIKey returns ErrNotFound when no key is stored for provider.
	APIKey(ctx context.Context, provider string) (string, error)

	// Any returns the most recently stored provider and key.
	Any(ctx context.Context) (provider, key string, err error)

	ClearAPIKey(ctx context.Context, provider string) error
}
