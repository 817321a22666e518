package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/router"
	"github.com/abhisek/intervue/internal/screen"
	"github.com/abhisek/intervue/internal/screens/home"
	"github.com/abhisek/intervue/internal/store"
	"github.com/abhisek/intervue/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Interviewer *interview.Interviewer
	Transcripts store.TranscriptRepo

	// ModelID is shown in the header. Empty means no LLM is configured.
	ModelID string

	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Interviewer == nil {
		opts.Interviewer = interview.NewInterviewer(nil, interview.DefaultConfig(), opts.Logger)
	}

	status := "offline"
	if opts.ModelID != "" {
		status = "AI: " + opts.ModelID
	}

	homeScreen := home.New(home.Deps{
		Interviewer: opts.Interviewer,
		Transcripts: opts.Transcripts,
		Logger:      opts.Logger,
	})
	return AppModel{
		router: router.New(homeScreen),
		status: status,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.TooSmall(m.width, m.height) {
		v.SetContent(layout.TooSmallMessage(m.width, m.height))
		return v
	}

	chrome := layout.Chrome{
		Titles: m.router.Titles(),
		Status: m.status,
		Hints:  m.hints(),
	}
	v.SetContent(layout.Render(chrome, m.router.View, m.width, m.height))
	return v
}

// hints returns the active screen's key hints, or the generic ones for
// menus and sub-screens.
func (m AppModel) hints() []layout.KeyHint {
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); hints != nil {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-9", Description: "Jump"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
