package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fundboard/internal/logging"
	"github.com/theirongolddev/fundboard/internal/server"
)

var (
	flagServeAddr  string
	flagServeSweep time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard data as a JSON API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config)")
	serveCmd.Flags().DurationVar(&flagServeSweep, "sweep-interval", time.Minute, "How often idle sessions are evicted")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	logCfg := cfg.Logging
	logCfg.Format = "json"
	if flagLogLevel == "" && cfg.Logging.Level == "warn" {
		logCfg.Level = "info"
	}
	logger := logging.Setup(logCfg, os.Stderr)

	svc := server.New(server.Config{
		Addr:          addr,
		DataFile:      cfg.General.DataFile,
		SessionTTL:    cfg.Server.SessionTTL(),
		SweepInterval: flagServeSweep,
		MaxSessions:   cfg.Server.MaxSessions,
		Horizon:       cfg.Forecast.HorizonDays,
		Logger:        logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Serving %s on http://%s\n", cfg.General.DataFile, addr)
	}
	return svc.Run(ctx)
}
