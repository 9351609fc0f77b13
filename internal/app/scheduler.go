package app

import (
	"context"
	"strconv"
	"time"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
)

// startReportScheduler delivers a report to every chat with a non-empty
// interest list on a fixed interval.
func startReportScheduler(ctx context.Context, interestSvc interfaces.InterestService, reportSvc interfaces.ReportService, tg interfaces.TelegramClient, logger *common.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Report scheduler: stopped")
			return
		case <-ticker.C:
			deliverReports(ctx, interestSvc, reportSvc, tg, logger)
		}
	}
}

func deliverReports(ctx context.Context, interestSvc interfaces.InterestService, reportSvc interfaces.ReportService, tg interfaces.TelegramClient, logger *common.Logger) {
	start := time.Now()

	chats := interestSvc.Chats(ctx)
	if len(chats) == 0 {
		return
	}

	for _, chatKey := range chats {
		chatID, err := strconv.ParseInt(chatKey, 10, 64)
		if err != nil {
			logger.Warn().Str("chat", chatKey).Msg("Scheduled report: unparseable chat key")
			continue
		}

		rep := reportSvc.Generate(ctx, interestSvc.List(ctx, chatKey))
		if err := tg.SendMessage(ctx, chatID, rep.Text); err != nil {
			logger.Warn().Err(err).Str("chat", chatKey).Msg("Scheduled report: delivery failed")
		}
	}

	logger.Info().
		Int("chats", len(chats)).
		Dur("elapsed", time.Since(start)).
		Msg("Scheduled reports delivered")
}

// SendStartupReport generates and delivers an initial report to the
// configured default chat. Delivery failures are logged, never fatal.
func (a *App) SendStartupReport(ctx context.Context) {
	if a.Config.DefaultChat == "" {
		return
	}

	chatID, err := strconv.ParseInt(a.Config.DefaultChat, 10, 64)
	if err != nil {
		a.Logger.Warn().Str("chat", a.Config.DefaultChat).Msg("Startup report: invalid default chat id")
		return
	}

	rep := a.ReportService.Generate(ctx, a.InterestService.List(ctx, a.Config.DefaultChat))
	if err := a.Telegram.SendMessage(ctx, chatID, rep.Text); err != nil {
		a.Logger.Warn().Err(err).Msg("Startup report: delivery failed")
		return
	}

	a.Logger.Info().Str("chat", a.Config.DefaultChat).Msg("Startup report delivered")
}
