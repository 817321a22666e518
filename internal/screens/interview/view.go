package interview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/intervue/internal/ui/components"
	"github.com/abhisek/intervue/internal/ui/theme"
)

func (s *InterviewScreen) View(width, height int) string {
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	switch s.phase {
	case phaseSummarizing:
		return renderWaiting(width, height, "Reviewing your answers...")
	case phaseFeedback:
		return s.renderFeedback(width, height)
	}
	return s.renderQuestionView(width)
}

// renderQuestionView renders the current question and the answer box.
func (s *InterviewScreen) renderQuestionView(width int) string {
	var b strings.Builder

	role := s.session.JobCategory
	if s.session.JobSkill != "" {
		role += " · " + s.session.JobSkill
	}
	if s.session.TechnicalLanguage != "" {
		role += " · " + s.session.TechnicalLanguage
	}

	mins := int(s.elapsed.Minutes())
	secs := int(s.elapsed.Seconds()) % 60

	infoLeft := theme.Category.Render("  " + role)
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %d:%02d",
			min(s.session.CurrentQuestionIndex+1, len(s.session.Questions)),
			len(s.session.Questions), mins, secs))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	textWidth := min(width-8, 76)
	q := s.session.CurrentQuestion()
	if q != nil {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Question.Width(textWidth).Render(q.Text)))
		b.WriteString("\n\n")
	}

	if s.phase == phaseThinking {
		b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render("Thinking about your answer..."))
	} else {
		answer := "Answer: " + s.input.View(textWidth-8)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(textWidth).Render(answer)))
	}
	b.WriteString("\n\n")

	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Accent).
			Render(s.notice))
		b.WriteString("\n\n")
	}

	tracker := components.Tracker{Answered: s.session.Answered(), Total: len(s.session.Questions)}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, tracker.View(min(width-8, 60))))

	return b.String()
}

func (s *InterviewScreen) renderFeedback(width, height int) string {
	cardWidth := min(width-6, 90)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Interview feedback"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%d of %d questions answered",
		s.session.Answered(), len(s.session.Questions))))
	b.WriteString("\n\n")
	b.WriteString(theme.Card.Width(cardWidth).Render(theme.Body.Render(s.feedback)))
	b.WriteString("\n\n")

	switch {
	case s.saveErr != "":
		b.WriteString(theme.Alert.Render("Could not save to history: " + s.saveErr))
	case s.savedID > 0:
		b.WriteString(theme.Saved.Render("Saved to history"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderWaiting(width, height int, msg string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Hint.Render(msg))
}

func renderQuitConfirm(width, height int) string {
	box := theme.Card.Render(
		theme.Body.Bold(true).Render("Leave this interview?") + "\n\n" +
			theme.Hint.Render("Your answers will not be saved."))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
