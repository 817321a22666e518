package llm

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/logger"
	"github.com/abhisek/intervue/internal/store"
)

// LoggingProvider audits calls: each one is written to the event log and
// summarised in a single log line. It sits innermost so every retry attempt
// is recorded separately.
type LoggingProvider struct {
	inner  Provider
	vendor string
	events store.EventRepo
	log    *zap.Logger
	clock  func() time.Time
}

// WithLogging wraps p. events and log may be nil.
func WithLogging(p Provider, vendor string, events store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, vendor: vendor, events: events, log: log.Named("llm"), clock: time.Now}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	started := l.clock()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(ctx, req, resp, err, l.clock().Sub(started))

	log := logger.WithCtx(ctx, l.log).With(
		zap.String("purpose", ev.Purpose),
		zap.String("model", ev.Model),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	)
	if err != nil {
		log.Warn("llm request failed", zap.String("reason", FailureReason(err)), zap.Error(err))
	} else {
		log.Debug("llm request")
	}

	// A broken audit log never fails the interview.
	if l.events != nil {
		if recErr := l.events.AppendLLMRequest(ctx, ev); recErr != nil {
			log.Warn("record llm event", zap.Error(recErr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.vendor,
		Model:       l.inner.ModelID(),
		Purpose:     string(PurposeFrom(ctx)),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: auditPrompt(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// auditMessage and auditRequest are the JSON shape of a prompt in the event
// log, which `intervue llm view` pretty-prints.
type auditMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type auditRequest struct {
	System    string         `json:"system,omitempty"`
	Messages  []auditMessage `json:"messages"`
	Schema    string         `json:"schema,omitempty"`
	MaxTokens int            `json:"max_tokens,omitempty"`
}

func auditPrompt(req Request) string {
	a := auditRequest{
		System:    req.System,
		Messages:  make([]auditMessage, len(req.Messages)),
		MaxTokens: req.MaxTokens,
	}
	for i, m := range req.Messages {
		a.Messages[i] = auditMessage{Role: m.Role, Content: m.Content}
	}
	if req.Schema != nil {
		a.Schema = req.Schema.Name
	}
	b, err := json.Marshal(a)
	if err != nil {
		return ""
	}
	return string(b)
}
