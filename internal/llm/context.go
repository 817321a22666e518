package llm

import "context"

// Purpose labels what an LLM call is for. It is stored with every audit
// event and used to filter `intervue llm list`.
type Purpose string

const (
	PurposeQuestionGen Purpose = "question-gen"
	PurposeFollowUp    Purpose = "follow-up"
	PurposeFeedback    Purpose = "feedback"

	purposeUnknown Purpose = "unknown"
)

// Purposes lists the labels the interview flow uses.
func Purposes() []Purpose {
	return []Purpose{PurposeQuestionGen, PurposeFollowUp, PurposeFeedback}
}

type purposeKey struct{}

// WithPurpose attaches p to ctx.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey{}, p)
}

// PurposeFrom returns the purpose attached to ctx, or "unknown".
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey{}).(Purpose); ok && p != "" {
		return p
	}
	return purposeUnknown
}
