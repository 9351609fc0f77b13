package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ssehuun/telegram-news-bot/internal/app"
	"github.com/ssehuun/telegram-news-bot/internal/common"
)

func main() {
	configPath := os.Getenv("STOCKBOT_CONFIG")

	ctx := context.Background()

	a, err := app.NewApp(ctx, configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	common.PrintBanner(a.Config, a.Logger)

	// Initial report, then background services
	a.SendStartupReport(ctx)
	a.StartPolling()
	a.StartReportScheduler()

	a.Logger.Info().Msg("Bot ready - waiting for commands (/add, /remove, /list, /report)")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	a.Logger.Info().Msg("Shutdown signal received")

	a.Close()
	common.PrintShutdownBanner(a.Logger)
}
