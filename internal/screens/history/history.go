// Package history is the screen for browsing saved practice runs.
package history

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/router"
	"github.com/abhisek/intervue/internal/screen"
	"github.com/abhisek/intervue/internal/store"
	"github.com/abhisek/intervue/internal/ui/layout"
	"github.com/abhisek/intervue/internal/ui/theme"
)

const listLimit = 50

type historyLoadedMsg struct {
	Transcripts []store.Transcript
	Err         error
}

// HistoryScreen lists past runs newest first. Enter opens one run's answers
// and feedback, f cycles a job category filter.
type HistoryScreen struct {
	repo store.TranscriptRepo

	all     []store.Transcript
	visible []store.Transcript

	// filter is "" for every category.
	filter string

	selected int
	open     int // index into visible, -1 when collapsed
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(repo store.TranscriptRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo, open: -1}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		transcripts, err := repo.List(context.Background(), listLimit)
		return historyLoadedMsg{Transcripts: transcripts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	if s.filter != "" {
		return "History: " + s.filter
	}
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "f", Description: "Filter"},
		{Key: "r", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.all = msg.Transcripts
		s.applyFilter()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if s.open >= 0 {
				s.open = -1
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.selected = max(s.selected-1, 0)
		case "down", "j":
			s.selected = min(s.selected+1, max(len(s.visible)-1, 0))
		case "enter":
			if s.open == s.selected {
				s.open = -1
			} else if s.selected < len(s.visible) {
				s.open = s.selected
			}
		case "f":
			s.filter = nextCategory(s.all, s.filter)
			s.applyFilter()
		case "r":
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

// applyFilter rebuilds visible from all and resets the cursor.
func (s *HistoryScreen) applyFilter() {
	s.visible = s.all
	if s.filter != "" {
		s.visible = slices.DeleteFunc(slices.Clone(s.all), func(t store.Transcript) bool {
			return t.JobCategory != s.filter
		})
	}
	s.selected = 0
	s.open = -1
}

// nextCategory steps the filter through the categories present in runs, in
// order of first appearance, then back to "" (all).
func nextCategory(runs []store.Transcript, current string) string {
	var cats []string
	for _, t := range runs {
		if !slices.Contains(cats, t.JobCategory) {
			cats = append(cats, t.JobCategory)
		}
	}
	if current == "" {
		if len(cats) == 0 {
			return ""
		}
		return cats[0]
	}
	i := slices.Index(cats, current)
	if i < 0 || i == len(cats)-1 {
		return ""
	}
	return cats[i+1]
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nCould not load history: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.all) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo interviews yet. Start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.open >= 0 {
		t := s.visible[s.open]
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.row(t, true)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderDetail(t, min(width-8, 90))))
		return b.String()
	}

	from, to := window(len(s.visible), s.selected, max(height-2, 1))
	for i := from; i < to; i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.row(s.visible[i], i == s.selected)))
		b.WriteString("\n")
	}
	if len(s.visible) == 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render("No " + s.filter + " interviews."))
	}
	return b.String()
}

func (s *HistoryScreen) row(t store.Transcript, selected bool) string {
	role := t.JobCategory
	if t.JobSkill != "" {
		role += " / " + t.JobSkill
	}
	line := fmt.Sprintf("%s  %-40s  %d/%d answered  %s",
		t.StartedAt.Local().Format("Jan 02, 2006"), role,
		len(t.Responses), len(t.Questions), t.EndedAt.Sub(t.StartedAt).Round(time.Second))

	if selected {
		return theme.Title.Align(lipgloss.Left).Render("> " + line)
	}
	return theme.Body.Render("  " + line)
}

// window returns the [from, to) slice of n rows to draw so that selected
// stays on screen.
func window(n, selected, rows int) (int, int) {
	if n <= rows {
		return 0, n
	}
	from := min(max(selected-rows/2, 0), n-rows)
	return from, from + rows
}

// renderDetail lists each question with its answer, then the feedback.
// Follow-ups are indented under the question they grew out of.
func renderDetail(t store.Transcript, width int) string {
	answers := make(map[string]string, len(t.Responses))
	for _, r := range t.Responses {
		answers[r.QuestionID] = r.Text
	}

	question := lipgloss.NewStyle().Foreground(theme.Secondary).Width(width)
	answer := lipgloss.NewStyle().Foreground(theme.Text).Width(width).PaddingLeft(2)
	missing := theme.Hint.PaddingLeft(2)

	var b strings.Builder
	for _, q := range t.Questions {
		label := "Q: "
		if q.Category == interview.CategoryFollowUp {
			label = "  ↳ "
		}
		b.WriteString(question.Render(label + q.Text))
		b.WriteString("\n")
		if a, ok := answers[q.ID]; ok {
			b.WriteString(answer.Render(a))
		} else {
			b.WriteString(missing.Render("(not answered)"))
		}
		b.WriteString("\n")
	}
	if t.Feedback != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Feedback"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(width).Render(t.Feedback))
	}

	return theme.Card.Padding(0, 1).Render(b.String())
}
