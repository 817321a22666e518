package interview

import "github.com/abhisek/intervue/internal/llm"

// FollowUpSchema is the structured output for a single follow-up question.
var FollowUpSchema = &llm.Schema{
	Name:        llm.SchemaFollowUp,
	Description: "One follow-up interview question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The follow-up question, phrased as the interviewer would ask it",
			},
		},
		"required":             []any{"question"},
		"additionalProperties": false,
	},
}

// QuestionSetSchema is the structured output for a batch of technical questions.
var QuestionSetSchema = &llm.Schema{
	Name:        llm.SchemaQuestionSet,
	Description: "A list of technical interview questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "Interview questions, one per entry",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// FeedbackSchema is the structured output for interview feedback.
var FeedbackSchema = &llm.Schema{
	Name:        llm.SchemaFeedback,
	Description: "Constructive feedback on a candidate's interview answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"feedback": map[string]any{
				"type":        "string",
				"description": "Feedback covering strengths, areas for improvement and advice",
			},
		},
		"required":             []any{"feedback"},
		"additionalProperties": false,
	},
}

type followUpOutput struct {
	Question string `json:"question"`
}

type questionSetOutput struct {
	Questions []string `json:"questions"`
}

type feedbackOutput struct {
	Feedback string `json:"feedback"`
}
