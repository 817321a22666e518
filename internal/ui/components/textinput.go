package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intervue/internal/ui/theme"
)

// MaxAnswerLength caps a single answer in characters.
const MaxAnswerLength = 2000

// AnswerInput is the answer box of the interview screen. It shows a running
// word count so candidates can see when an answer is getting thin or long.
type AnswerInput struct {
	model textinput.Model
}

func NewAnswerInput() AnswerInput {
	ti := textinput.New()
	ti.Placeholder = "Type your answer..."
	ti.CharLimit = MaxAnswerLength
	ti.Focus()
	return AnswerInput{model: ti}
}

func (a AnswerInput) Init() tea.Cmd { return a.model.Focus() }

func (a AnswerInput) Update(msg tea.Msg) (AnswerInput, tea.Cmd) {
	var cmd tea.Cmd
	a.model, cmd = a.model.Update(msg)
	return a, cmd
}

// View renders the box at width, with the word count right-aligned.
func (a AnswerInput) View(width int) string {
	count := ""
	if n := a.Words(); n > 0 {
		count = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %d words", n))
	}
	a.model.SetWidth(max(width-lipgloss.Width(count)-2, 10))
	return a.model.View() + count
}

// Value returns the answer with surrounding whitespace removed.
func (a AnswerInput) Value() string {
	return strings.TrimSpace(a.model.Value())
}

func (a AnswerInput) Words() int {
	return len(strings.Fields(a.model.Value()))
}

func (a *AnswerInput) SetValue(s string) { a.model.SetValue(s) }

func (a *AnswerInput) Reset() { a.model.Reset() }

// SetEnabled focuses the box, or blurs it while the interviewer is thinking.
func (a *AnswerInput) SetEnabled(enabled bool) tea.Cmd {
	if enabled {
		return a.model.Focus()
	}
	a.model.Blur()
	return nil
}
