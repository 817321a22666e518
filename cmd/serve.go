package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/interview"
	"github.com/abhisek/intervue/internal/logger"
	"github.com/abhisek/intervue/internal/server"
	"github.com/abhisek/intervue/internal/speech"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview HTTP and WebSocket API",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		log := logger.New(logger.Options{
			Level:       cfg.LogLevel,
			Development: cfg.Development,
			File:        cfg.LogFile,
		})
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := buildProvider(ctx, st, log)
		if err != nil {
			log.Warn("LLM provider not configured, serving template questions and feedback", zap.Error(err))
			provider = nil
		} else {
			log.Info("LLM provider ready", zap.String("model", provider.ModelID()))
		}

		var backend *speech.Backend
		if cfg.Speech.Enabled {
			backend = speech.OpenGoogle(ctx, cfg.Speech, log.Named("speech"))
			defer backend.Close()
		}

		srv := server.New(server.Deps{
			Config:      cfg,
			Interviewer: interview.NewInterviewer(provider, interview.DefaultConfig(), log.Named("interview")),
			Speech:      backend,
			Logger:      log,
		})
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides INTERVUE_PORT)")
}
