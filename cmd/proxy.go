package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/intervue/internal/config"
	"github.com/abhisek/intervue/internal/logger"
	"github.com/abhisek/intervue/internal/proxy"
)

var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the gateway that forwards interview calls to API_BASE_URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Proxy.Port = port
		}
		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.Proxy.BackendURL = backend
		}

		log := logger.New(logger.Options{
			Level:       cfg.LogLevel,
			Development: cfg.Development,
			File:        cfg.LogFile,
		})
		defer func() { _ = log.Sync() }()

		p, err := proxy.New(cfg.Proxy.BackendURL, cfg.Proxy.Timeout, cfg.AllowedOrigins, log.Named("proxy"))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info("Forwarding interview calls", zap.String("backend", cfg.Proxy.BackendURL))
		if err := p.Run(ctx, ":"+cfg.Proxy.Port); err != nil {
			return fmt.Errorf("proxy: %w", err)
		}
		return nil
	},
}

func init() {
	proxyCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides INTERVUE_PROXY_PORT)")
	proxyCmd.Flags().String("backend", "", "Backend base URL (overrides API_BASE_URL)")
}
