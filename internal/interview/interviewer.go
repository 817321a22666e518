package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/llm"
	"github.com/abhisek/intervue/internal/logger"
)

// errEmptyOutput marks a schema-valid reply whose text is blank.
var errEmptyOutput = &llm.ErrInvalidResponse{Err: errors.New("blank text in reply")}

// Interviewer drives sessions forward using an LLM provider. A nil provider
// is allowed; every LLM-backed step then uses its fallback.
type Interviewer struct {
	provider llm.Provider
	config   Config
	log      *zap.Logger
}

// NewInterviewer creates an Interviewer.
func NewInterviewer(provider llm.Provider, cfg Config, log *zap.Logger) *Interviewer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interviewer{provider: provider, config: cfg, log: log}
}

// SubmitResponse records text as the answer to the current question and
// advances the session. When the answer exhausts the question list, exactly
// one follow-up question is appended. It returns the new current question.
func (iv *Interviewer) SubmitResponse(ctx context.Context, s *Session, text string) (*Question, error) {
	q := s.CurrentQuestion()
	if q == nil {
		return nil, ErrNoCurrentQuestion
	}

	s.Responses = append(s.Responses, Response{QuestionID: q.ID, Text: text})
	s.CurrentQuestionIndex++

	if s.CurrentQuestionIndex >= len(s.Questions) {
		s.Questions = append(s.Questions, Question{
			ID:       fmt.Sprintf("gen-%d", len(s.Questions)+1),
			Text:     iv.followUp(ctx, s),
			Category: CategoryFollowUp,
		})
	}
	return s.CurrentQuestion(), nil
}

// Feedback reviews the whole transcript. It fails only when there is no
// session or nothing has been answered yet.
func (iv *Interviewer) Feedback(ctx context.Context, s *Session) (string, error) {
	if s == nil || len(s.Responses) == 0 {
		return "", ErrNoResponses
	}

	ctx = logger.WithSessionID(llm.WithPurpose(ctx, llm.PurposeFeedback), s.ID)
	var out feedbackOutput
	err := iv.generate(ctx, llm.Request{
		System:   feedbackSystemPrompt(s.JobCategory),
		Messages: []llm.Message{{Role: llm.RoleUser, Content: feedbackUserPrompt(s)}},
		Schema:   FeedbackSchema,
	}, &out)
	if err == nil && strings.TrimSpace(out.Feedback) == "" {
		err = errEmptyOutput
	}
	if err != nil {
		logger.WithCtx(ctx, iv.log).Warn("feedback generation failed, using fallback",
			zap.String("reason", llm.FailureReason(err)), zap.Error(err))
		return fallbackFeedback(s.JobCategory, s.Responses), nil
	}
	return strings.TrimSpace(out.Feedback), nil
}

func (iv *Interviewer) followUp(ctx context.Context, s *Session) string {
	ctx = logger.WithSessionID(llm.WithPurpose(ctx, llm.PurposeFollowUp), s.ID)
	var out followUpOutput
	err := iv.generate(ctx, llm.Request{
		System:   followUpSystemPrompt(s.JobCategory),
		Messages: []llm.Message{{Role: llm.RoleUser, Content: followUpUserPrompt(s)}},
		Schema:   FollowUpSchema,
	}, &out)
	if err == nil && strings.TrimSpace(out.Question) == "" {
		err = errEmptyOutput
	}
	if err != nil {
		logger.WithCtx(ctx, iv.log).Warn("follow-up generation failed, using fallback",
			zap.String("reason", llm.FailureReason(err)), zap.Error(err))
		return fallbackFollowUp(s)
	}
	return strings.TrimSpace(out.Question)
}

// generate makes a single LLM call and decodes the structured output into v.
func (iv *Interviewer) generate(ctx context.Context, req llm.Request, v any) error {
	if iv.provider == nil {
		return llm.ErrNotConfigured
	}
	req.MaxTokens = iv.config.MaxTokens
	req.Temperature = iv.config.Temperature

	resp, err := iv.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM generation failed: %w", err)
	}
	return resp.Decode(v)
}
