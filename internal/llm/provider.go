package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Provider produces interviewer output: question sets, follow-ups and
// feedback. Concrete providers talk to one chat-completion API; the
// decorators in this package add timeouts, retries and the audit log.
type Provider interface {
	// Generate sends one prompt and returns the reply. When req.Schema is set
	// the reply has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn interviewer prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema constrains the reply to a JSON object. Nil means free text.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the prompt.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. The name is sent to providers that accept
// one and keys the compiled-schema cache, so it must be unique per shape.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a provider reply.
type Response struct {
	// Content is the reply body: the validated JSON object for structured
	// requests, raw text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Decode unmarshals a structured reply into v. Failures are reported as
// *ErrInvalidResponse so callers can fall back on them like any other
// malformed reply.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Content) == 0 {
		return &ErrInvalidResponse{Err: errors.New("empty reply")}
	}
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: fmt.Errorf("decode reply: %w", err)}
	}
	return nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

func newUsage(input, output int) Usage {
	return Usage{InputTokens: input, OutputTokens: output, TotalTokens: input + output}
}

// finish turns raw provider output into a Response. Structured replies are
// unwrapped from code fences and validated; a structured reply that was cut
// off by the token limit is reported as *ErrMaxTokensExceeded.
func finish(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if req.Schema != nil {
		content = normalizeJSON(content)
		if err := validateResponse(req.Schema, content); err != nil {
			if stop == StopMaxTokens {
				return nil, &ErrMaxTokensExceeded{Content: content}
			}
			return nil, err
		}
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
