package interview

import (
	"encoding/json"
	"fmt"
	"strings"
)

const noResponseText = "No response provided"

func followUpSystemPrompt(category string) string {
	return fmt.Sprintf("You are an AI interviewer for a %s position. Generate a follow-up question based on the candidate's previous responses. The question should be challenging but fair, and should help assess the candidate's skills and fit for the role. Make the question specific to something mentioned in their previous responses.", category)
}

func followUpUserPrompt(s *Session) string {
	qs := make([]string, len(s.Questions))
	for i, q := range s.Questions {
		qs[i] = q.Text
	}
	rs := make([]string, len(s.Responses))
	for i, r := range s.Responses {
		rs[i] = r.Text
	}
	return fmt.Sprintf("Previous questions: %s\n\nCandidate's responses: %s\n\nPlease generate a follow-up question that digs deeper into the candidate's experience, technical skills, or problem-solving abilities related to %s.",
		strings.Join(qs, "\n"), strings.Join(rs, "\n"), s.JobCategory)
}

func feedbackSystemPrompt(category string) string {
	return fmt.Sprintf("You are an expert interviewer and career coach. Provide constructive feedback on the candidate's interview responses for a %s position. Focus on strengths, areas for improvement, and specific advice for future interviews.", category)
}

type transcriptEntry struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

// feedbackUserPrompt pairs questions with responses by position.
func feedbackUserPrompt(s *Session) string {
	entries := make([]transcriptEntry, len(s.Questions))
	for i, q := range s.Questions {
		resp := noResponseText
		if i < len(s.Responses) && s.Responses[i].Text != "" {
			resp = s.Responses[i].Text
		}
		entries[i] = transcriptEntry{Question: q.Text, Response: resp}
	}
	body, _ := json.MarshalIndent(entries, "", "  ")
	return fmt.Sprintf("Here are the interview questions and the candidate's responses:\n\n%s\n\nPlease provide comprehensive feedback on the candidate's interview performance.", body)
}

const (
	questionGenSystemPrompt  = "You are an expert technical interviewer. Generate specific, technical questions that assess both theoretical knowledge and practical experience."
	nextQuestionSystemPrompt = "You are an expert technical interviewer. Generate follow-up questions that dig deeper into the candidate's knowledge and experience."
	reviewSystemPrompt       = "You are an expert technical interviewer. Provide constructive feedback on the candidate's responses, highlighting strengths and areas for improvement."
)

func focusClause(lang string) string {
	if lang == "" {
		return ""
	}
	return " focusing on " + lang
}

func questionGenUserPrompt(sel Selection, n int) string {
	return fmt.Sprintf("Generate %d technical interview questions for a %s position%s in %s. Questions should be challenging and specific to the role.",
		n, sel.JobSkill, focusClause(sel.TechnicalLanguage), sel.JobCategory)
}

func nextQuestionUserPrompt(sel Selection, userResponse string) string {
	knowledge := sel.JobSkill
	if sel.TechnicalLanguage != "" {
		knowledge = sel.TechnicalLanguage + " and " + sel.JobSkill
	}
	return fmt.Sprintf("Based on this response to a %s interview question: \"%s\", generate a relevant follow-up question that digs deeper into the candidate's knowledge of %s.",
		sel.JobSkill, userResponse, knowledge)
}

func reviewUserPrompt(sel Selection, questions []Question, responses []Response) string {
	pairs := make([]string, len(responses))
	for i, r := range responses {
		q := ""
		if i < len(questions) {
			q = questions[i].Text
		}
		pairs[i] = fmt.Sprintf("Q: %s\nA: %s", q, r.Text)
	}
	return fmt.Sprintf("Provide detailed feedback for a %s interview%s in %s. Here are the questions and answers:\n\n%s",
		sel.JobSkill, focusClause(sel.TechnicalLanguage), sel.JobCategory, strings.Join(pairs, "\n\n"))
}
