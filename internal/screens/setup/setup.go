package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/router"
	"github.com/abhisek/intervue/internal/screen"
	interviewscreen "github.com/abhisek/intervue/internal/screens/interview"
	"github.com/abhisek/intervue/internal/store"
	"github.com/abhisek/intervue/internal/ui/components"
	"github.com/abhisek/intervue/internal/ui/layout"
	"github.com/abhisek/intervue/internal/ui/theme"
)

type step int

const (
	stepCategory step = iota
	stepSkill
	stepLanguage
)

const (
	anySkill   = "Any skill"
	noLanguage = "No particular focus"
)

// Deps are passed through to the interview screen.
type Deps struct {
	Interviewer *interview.Interviewer
	Transcripts store.TranscriptRepo
	Logger      *zap.Logger
}

// SetupScreen walks through category, skill and language selection before
// starting an interview.
type SetupScreen struct {
	deps      Deps
	step      step
	selection interview.Selection
	menu      components.Menu
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.BackHandler = (*SetupScreen)(nil)

// New creates a SetupScreen positioned on category selection.
func New(d Deps) *SetupScreen {
	s := &SetupScreen{deps: d}
	s.enter(stepCategory)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Interview"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	back := "Back"
	if s.step == stepCategory {
		back = "Home"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: back},
	}
}

// HandlesBack steps back through the wizard before leaving the screen.
func (s *SetupScreen) HandlesBack() bool {
	return s.step > stepCategory
}

// Selection returns what has been chosen so far.
func (s *SetupScreen) Selection() interview.Selection {
	return s.selection
}

// choiceMsg carries the label picked from the current step's menu.
type choiceMsg struct {
	step  step
	value string
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case choiceMsg:
		if msg.step != s.step {
			return s, nil
		}
		return s, s.choose(msg.value)

	case tea.KeyMsg:
		if msg.String() == "esc" {
			s.back()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) choose(value string) tea.Cmd {
	switch s.step {
	case stepCategory:
		s.selection = interview.Selection{JobCategory: value}
		if len(interview.Skills(value)) == 0 {
			s.enter(stepLanguage)
		} else {
			s.enter(stepSkill)
		}
	case stepSkill:
		if value != anySkill {
			s.selection.JobSkill = value
		}
		s.enter(stepLanguage)
	case stepLanguage:
		if value != noLanguage {
			s.selection.TechnicalLanguage = value
		}
		return s.start()
	}
	return nil
}

func (s *SetupScreen) back() {
	switch s.step {
	case stepLanguage:
		s.selection.TechnicalLanguage = ""
		if len(interview.Skills(s.selection.JobCategory)) == 0 {
			s.enter(stepCategory)
		} else {
			s.selection.JobSkill = ""
			s.enter(stepSkill)
		}
	case stepSkill:
		s.selection = interview.Selection{}
		s.enter(stepCategory)
	}
}

func (s *SetupScreen) enter(st step) {
	s.step = st

	var labels []string
	switch st {
	case stepCategory:
		labels = interview.Categories
	case stepSkill:
		labels = append([]string{anySkill}, interview.Skills(s.selection.JobCategory)...)
	case stepLanguage:
		labels = append([]string{noLanguage}, interview.Languages...)
	}

	items := make([]components.MenuItem, len(labels))
	for i, label := range labels {
		items[i] = components.MenuItem{Label: label, Action: func() tea.Cmd {
			return func() tea.Msg { return choiceMsg{step: st, value: label} }
		}}
	}
	s.menu = components.NewMenu(items)
}

func (s *SetupScreen) start() tea.Cmd {
	sel := s.selection
	scr := interviewscreen.New(interviewscreen.Deps{
		Interviewer: s.deps.Interviewer,
		Transcripts: s.deps.Transcripts,
		Logger:      s.deps.Logger,
	}, sel)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: scr}
	}
}

func (s *SetupScreen) View(width, height int) string {
	var prompt string
	switch s.step {
	case stepCategory:
		prompt = "Which role are you interviewing for?"
	case stepSkill:
		prompt = fmt.Sprintf("Pick a %s specialty", s.selection.JobCategory)
	case stepLanguage:
		prompt = "Any technology to focus on?"
	}

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(prompt))
	b.WriteString("\n")
	if summary := summarize(s.selection); summary != "" {
		b.WriteString(theme.Subtitle.Width(width).Render(summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func summarize(sel interview.Selection) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{sel.JobCategory, sel.JobSkill, sel.TechnicalLanguage} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " · ")
}
