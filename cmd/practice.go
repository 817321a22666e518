package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/intervue/internal/app"
	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/logger"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start an interactive practice interview in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

// runPractice opens the store, builds dependencies, and launches the TUI.
func runPractice(cmd *cobra.Command) error {
	ctx := cmd.Context()
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to INTERVUE_LOG_FILE.
	log := logger.NewFileOnly(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = log.Sync() }()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := app.Options{
		Transcripts: st.TranscriptRepo(),
		Logger:      log,
	}

	provider, err := buildProvider(ctx, st, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Follow-up questions and feedback will use built-in templates.")
		fmt.Fprintln(os.Stderr, "Run `intervue key set <provider>` to store an API key.")
		provider = nil
	} else {
		opts.ModelID = provider.ModelID()
	}
	opts.Interviewer = interview.NewInterviewer(provider, interview.DefaultConfig(), log.Named("interview"))

	return app.Run(opts)
}
