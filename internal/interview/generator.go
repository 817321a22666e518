package interview

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/llm"
	"github.com/abhisek/intervue/internal/logger"
)

// GenerateQuestions builds the opening list for a stateless interview: up to
// BankQuestions random skill-bank questions followed by AIQuestions generated
// ones. If the LLM fails the bank questions are returned alone; if that
// leaves nothing, the seed questions for the category are used.
func (iv *Interviewer) GenerateQuestions(ctx context.Context, sel Selection) []Question {
	bank := bankQuestions(sel.JobCategory, sel.JobSkill)
	rand.Shuffle(len(bank), func(i, j int) { bank[i], bank[j] = bank[j], bank[i] })
	if len(bank) > iv.config.BankQuestions {
		bank = bank[:iv.config.BankQuestions]
	}

	questions := make([]Question, 0, len(bank)+iv.config.AIQuestions)
	for i, text := range bank {
		questions = append(questions, Question{ID: fmt.Sprintf("base-%d", i), Text: text, Category: CategoryTechnical})
	}

	if iv.config.AIQuestions > 0 {
		ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)
		var out questionSetOutput
		err := iv.generate(ctx, llm.Request{
			System:   questionGenSystemPrompt,
			Messages: []llm.Message{{Role: llm.RoleUser, Content: questionGenUserPrompt(sel, iv.config.AIQuestions)}},
			Schema:   QuestionSetSchema,
		}, &out)
		if err != nil {
			logger.WithCtx(ctx, iv.log).Warn("question generation failed, using question bank only",
				zap.String("category", sel.JobCategory), zap.String("skill", sel.JobSkill),
				zap.String("reason", llm.FailureReason(err)), zap.Error(err))
		}
		n := 0
		for _, text := range out.Questions {
			text = strings.TrimSpace(text)
			if text == "" || n == iv.config.AIQuestions {
				continue
			}
			questions = append(questions, Question{ID: fmt.Sprintf("ai-%d", n), Text: text, Category: CategoryTechnical})
			n++
		}
	}

	if len(questions) == 0 {
		return seedQuestions(sel.JobCategory)
	}
	return questions
}

// NextQuestion produces one follow-up to userResponse without any session state.
func (iv *Interviewer) NextQuestion(ctx context.Context, sel Selection, userResponse string) Question {
	ctx = llm.WithPurpose(ctx, llm.PurposeFollowUp)
	var out followUpOutput
	err := iv.generate(ctx, llm.Request{
		System:   nextQuestionSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: nextQuestionUserPrompt(sel, userResponse)}},
		Schema:   FollowUpSchema,
	}, &out)
	text := strings.TrimSpace(out.Question)
	if err == nil && text == "" {
		err = errEmptyOutput
	}
	if err != nil {
		logger.WithCtx(ctx, iv.log).Warn("follow-up generation failed, using fallback",
			zap.String("reason", llm.FailureReason(err)), zap.Error(err))
		text = fallbackNextQuestion(sel)
	}
	return Question{
		ID:       fmt.Sprintf("follow-up-%d", time.Now().UnixMilli()),
		Text:     text,
		Category: CategoryFollowUp,
	}
}

// Review produces feedback for a transcript supplied by the caller. It fails
// only when responses is empty.
func (iv *Interviewer) Review(ctx context.Context, sel Selection, questions []Question, responses []Response) (string, error) {
	if len(responses) == 0 {
		return "", ErrNoResponses
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)
	var out feedbackOutput
	err := iv.generate(ctx, llm.Request{
		System:   reviewSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: reviewUserPrompt(sel, questions, responses)}},
		Schema:   FeedbackSchema,
	}, &out)
	if err == nil && strings.TrimSpace(out.Feedback) == "" {
		err = errEmptyOutput
	}
	if err != nil {
		logger.WithCtx(ctx, iv.log).Warn("feedback generation failed, using fallback",
			zap.String("reason", llm.FailureReason(err)), zap.Error(err))
		return fallbackFeedback(sel.JobCategory, responses), nil
	}
	return strings.TrimSpace(out.Feedback), nil
}
