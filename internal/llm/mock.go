package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
)

// Schema names of the interviewer's structured replies.
const (
	SchemaFollowUp    = "follow-up-question"
	SchemaQuestionSet = "technical-questions"
	SchemaFeedback    = "interview-feedback"
)

// MockResponse is a canned reply for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON builds a canned structured reply from v.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return MockResponse{Err: &ErrInvalidResponse{Err: err}}
	}
	return MockResponse{Content: b}
}

// MockProvider returns canned replies in FIFO order and records every
// request. An empty queue behaves like an unreachable provider, which is
// what fallback tests rely on.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// ScriptedProvider answers interviewer prompts offline, picking replies by
// schema name and cycling through them. It backs INTERVUE_LLM_PROVIDER=mock
// so a full practice session can run without an API key.
type ScriptedProvider struct {
	mu      sync.Mutex
	replies map[string][]json.RawMessage
	turn    map[string]int
}

// NewScriptedProvider creates a ScriptedProvider. A nil script uses
// DefaultScript.
func NewScriptedProvider(script map[string][]json.RawMessage) *ScriptedProvider {
	if script == nil {
		script = DefaultScript()
	}
	return &ScriptedProvider{replies: script, turn: make(map[string]int)}
}

// DefaultScript returns canned replies for every interviewer schema.
func DefaultScript() map[string][]json.RawMessage {
	return map[string][]json.RawMessage{
		SchemaFollowUp: {
			json.RawMessage(`{"question":"You mentioned a trade-off there. What alternatives did you rule out, and why?"}`),
			json.RawMessage(`{"question":"How did you measure whether that approach actually worked?"}`),
			json.RawMessage(`{"question":"If you had to hand that work to a new teammate tomorrow, what would you warn them about?"}`),
		},
		SchemaQuestionSet: {
			json.RawMessage(`{"questions":["Walk me through how you would debug a slow production request.","How do you decide when code is ready to ship?","Describe a design you would change if you could start over."]}`),
		},
		SchemaFeedback: {
			json.RawMessage(`{"feedback":"Strengths: your answers were structured and stayed on topic.\n\nAreas for improvement: add numbers to show impact, and name the alternatives you considered.\n\nAdvice: practise the situation, task, action and result format until it feels natural."}`),
		},
	}
}

func (s *ScriptedProvider) Generate(_ context.Context, req Request) (*Response, error) {
	if req.Schema == nil {
		return nil, &ErrInvalidResponse{Err: errMockNeedsSchema}
	}

	s.mu.Lock()
	replies := s.replies[req.Schema.Name]
	n := s.turn[req.Schema.Name]
	s.turn[req.Schema.Name] = n + 1
	s.mu.Unlock()

	if len(replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	content := replies[n%len(replies)]
	usage := newUsage(approxTokens(promptText(req)), approxTokens(string(content)))
	return finish(req, content, usage, "mock", StopEnd)
}

func (s *ScriptedProvider) ModelID() string {
	return "mock"
}

var errMockNeedsSchema = errors.New("scripted provider only answers structured requests")

func promptText(req Request) string {
	var b strings.Builder
	b.WriteString(req.System)
	for _, m := range req.Messages {
		b.WriteString(m.Content)
	}
	return b.String()
}

// approxTokens estimates tokens at four bytes each.
func approxTokens(s string) int {
	return (len(s) + 3) / 4
}
