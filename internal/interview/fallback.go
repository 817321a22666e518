package interview

import (
	"fmt"
	"strings"
)

var followUpTemplates = []string{
	"Walk me through a recent %s project in more detail. What would you do differently if you started it today?",
	"What was the hardest trade-off you made while working on %s, and how did you decide?",
	"Describe a time a %s task did not go as planned. How did you recover?",
	"Which part of %s are you actively trying to get better at right now, and how?",
}

// fallbackFollowUp picks a template by the current question count so repeated
// failures still rotate through different prompts.
func fallbackFollowUp(s *Session) string {
	focus := s.JobSkill
	if focus == "" {
		focus = s.JobCategory
	}
	if focus == "" {
		focus = "your field"
	}
	tmpl := followUpTemplates[len(s.Questions)%len(followUpTemplates)]
	return fmt.Sprintf(tmpl, focus)
}

func fallbackNextQuestion(sel Selection) string {
	focus := sel.JobSkill
	if sel.TechnicalLanguage != "" {
		focus = sel.TechnicalLanguage
	}
	if focus == "" {
		focus = "this area"
	}
	return fmt.Sprintf("Can you go one level deeper on that answer? Describe a specific situation where you applied %s and what the outcome was.", focus)
}

// fallbackFeedback summarizes the answers without calling out to the LLM.
func fallbackFeedback(category string, responses []Response) string {
	if category == "" {
		category = "this"
	}
	words := 0
	for _, r := range responses {
		words += len(strings.Fields(r.Text))
	}
	avg := 0
	if len(responses) > 0 {
		avg = words / len(responses)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for practising for a %s position. You answered %d question(s) with an average of %d words per answer.\n\n", category, len(responses), avg)
	switch {
	case avg < 30:
		b.WriteString("Your answers were brief. Interviewers usually want more context, so aim to expand each answer with a concrete example.\n\n")
	case avg > 250:
		b.WriteString("Your answers were long. Try to lead with the key point and keep supporting detail focused.\n\n")
	default:
		b.WriteString("Your answers had a reasonable length. Keep pairing each claim with a concrete example.\n\n")
	}
	b.WriteString("Tips for your next practice round:\n")
	b.WriteString("- Structure stories as situation, task, action and result.\n")
	b.WriteString("- Quantify the impact of your work where you can.\n")
	b.WriteString("- Close each answer by tying it back to the role you are applying for.")
	return b.String()
}
