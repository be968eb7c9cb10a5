package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"bitget-margin-info/internal/api"
	"bitget-margin-info/internal/config"
	"bitget-margin-info/internal/logger"
	"bitget-margin-info/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogFile, cfg.LogLevel)
	logger.Info("Starting Bitget margin info client...")
	if !cfg.EnvFileLoaded {
		logger.Warn(".env file not found, using process environment only")
	}

	logger.Info("Configuration loaded successfully",
		"symbol", cfg.Symbol,
		"base_url", cfg.BitgetBaseURL,
		"locale", cfg.BitgetLocale,
		"all_borrowable", cfg.AllBorrowable,
		"refresh_schedule", cfg.RefreshSchedule,
		"has_api_key", cfg.Credentials.APIKey != "",
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bitgetClient := api.NewBitgetClient(cfg)
	report := service.NewMarginReportService(bitgetClient, os.Stdout, os.Stderr)

	run := func() error {
		if cfg.AllBorrowable {
			return report.RunAllBorrowable(ctx)
		}
		return report.Run(ctx, cfg.Symbol)
	}

	if cfg.RefreshSchedule == "" {
		if err := run(); err != nil {
			logger.Error("Report finished with errors", "error", err)
			os.Exit(1)
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.RefreshSchedule, func() {
		if err := run(); err != nil {
			logger.Error("Scheduled report finished with errors", "error", err)
		}
	}); err != nil {
		logger.Error("Failed to schedule report", "schedule", cfg.RefreshSchedule, "error", err)
		os.Exit(1)
	}

	// First report right away, then on schedule.
	if err := run(); err != nil {
		logger.Error("Report finished with errors", "error", err)
	}

	c.Start()
	logger.Info("Refresh schedule started", "schedule", cfg.RefreshSchedule)

	<-ctx.Done()
	<-c.Stop().Done()
	logger.Info("Shutting down")
}
