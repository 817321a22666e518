package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/router"
	"github.com/abhisek/intervue/internal/screen"
	"github.com/abhisek/intervue/internal/screens/history"
	"github.com/abhisek/intervue/internal/screens/setup"
	"github.com/abhisek/intervue/internal/store"
	"github.com/abhisek/intervue/internal/ui/components"
	"github.com/abhisek/intervue/internal/ui/theme"
)

// Deps are the services the home menu hands to the screens it opens.
type Deps struct {
	Interviewer *interview.Interviewer
	Transcripts store.TranscriptRepo
	Logger      *zap.Logger
}

// HomeScreen is the main menu. When history is available it also recalls
// the most recent practice run.
type HomeScreen struct {
	menu        components.Menu
	transcripts store.TranscriptRepo
	last        *store.Transcript
}

// lastRunMsg carries the newest saved transcript, if any.
type lastRunMsg struct{ t *store.Transcript }

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(d Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start Practice", Hint: "pick a role and start answering", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: setup.New(setup.Deps{
					Interviewer: d.Interviewer,
					Transcripts: d.Transcripts,
					Logger:      d.Logger,
				})}
			}
		}},
		{Label: "History", Hint: "review saved transcripts", Disabled: d.Transcripts == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(d.Transcripts)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items), transcripts: d.Transcripts}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.transcripts == nil {
		return nil
	}
	repo := h.transcripts
	return func() tea.Msg {
		runs, err := repo.List(context.Background(), 1)
		if err != nil || len(runs) == 0 {
			return lastRunMsg{}
		}
		return lastRunMsg{t: &runs[0]}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(lastRunMsg); ok {
		h.last = m.t
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	sections := []string{
		renderBanner(width),
		theme.Subtitle.Render("Practice interviews, one question at a time."),
		theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")),
	}
	if h.last != nil {
		sections = append(sections, theme.Hint.Render(lastRunSummary(*h.last, time.Now())))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// lastRunSummary reads like "Last practice: Data Science · 4 answers · 2 days ago".
func lastRunSummary(t store.Transcript, now time.Time) string {
	answers := fmt.Sprintf("%d answers", len(t.Responses))
	if len(t.Responses) == 1 {
		answers = "1 answer"
	}
	return fmt.Sprintf("Last practice: %s · %s · %s", t.JobCategory, answers, ago(now.Sub(t.EndedAt)))
}

func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d min ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d h ago", int(d.Hours()))
	case d < 48*time.Hour:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
