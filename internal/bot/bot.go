// Package bot dispatches Telegram chat commands to the core services.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
	"github.com/ssehuun/telegram-news-bot/internal/resolver"
	"github.com/ssehuun/telegram-news-bot/internal/services/interest"
)

// pollRetryDelay is the backoff after a failed getUpdates call.
const pollRetryDelay = 3 * time.Second

// Bot polls Telegram for commands and replies in the chat they came
// from. Supported commands: /add, /remove, /list, /report.
type Bot struct {
	tg       interfaces.TelegramClient
	resolver *resolver.Resolver
	interest interfaces.InterestService
	report   interfaces.ReportService
	logger   *common.Logger
}

// New creates a new command dispatcher.
func New(tg interfaces.TelegramClient, res *resolver.Resolver, interestSvc interfaces.InterestService, reportSvc interfaces.ReportService, logger *common.Logger) *Bot {
	return &Bot{
		tg:       tg,
		resolver: res,
		interest: interestSvc,
		report:   reportSvc,
		logger:   logger,
	}
}

// Run long-polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	b.logger.Info().Msg("Command polling started")

	var offset int64
	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Command polling stopped")
			return
		default:
		}

		updates, err := b.tg.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			b.logger.Warn().Err(err).Msg("getUpdates failed: retrying")
			select {
			case <-ctx.Done():
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			if update.Message == nil {
				continue
			}
			b.dispatch(ctx, update.Message)
		}
	}
}

// dispatch routes one message to its command handler.
func (b *Bot) dispatch(ctx context.Context, msg *models.Message) {
	command, args := splitCommand(msg.Text)
	if command == "" {
		return
	}

	chatID := msg.Chat.ID
	b.logger.Debug().Int64("chat_id", chatID).Str("command", command).Msg("Command received")

	switch command {
	case "/add":
		b.handleAdd(ctx, chatID, args)
	case "/remove":
		b.handleRemove(ctx, chatID, args)
	case "/list":
		b.handleList(ctx, chatID)
	case "/report":
		b.handleReport(ctx, chatID)
	}
}

// splitCommand extracts "/cmd" and its argument text. A "@botname"
// suffix on the command (group chats) is stripped.
func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}

	command := text
	args := ""
	if idx := strings.IndexAny(text, " \t"); idx >= 0 {
		command = text[:idx]
		args = strings.TrimSpace(text[idx+1:])
	}
	if idx := strings.Index(command, "@"); idx >= 0 {
		command = command[:idx]
	}
	return command, args
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (b *Bot) handleAdd(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.reply(ctx, chatID, "사용법: /add 005930")
		return
	}

	res := b.resolver.Resolve(args)
	switch res.Status {
	case models.Unresolved:
		b.reply(ctx, chatID, "사용법: /add 005930")
		return

	case models.Ambiguous:
		var sb strings.Builder
		sb.WriteString("여러 종목이 검색되었습니다. 코드로 다시 시도해주세요:\n")
		for _, cand := range res.Candidates {
			sb.WriteString(fmt.Sprintf("- %s (%s)\n", cand.Name, cand.Code))
		}
		b.reply(ctx, chatID, sb.String())
		return
	}

	err := b.interest.Add(ctx, chatKey(chatID), res.Ticker)
	switch {
	case errors.Is(err, interest.ErrUnknownTicker):
		b.reply(ctx, chatID, "존재하지 않는 종목입니다.")
	case errors.Is(err, interest.ErrDuplicateTicker):
		b.reply(ctx, chatID, "이미 추가된 종목입니다.")
	case err != nil:
		b.logger.Error().Err(err).Str("ticker", res.Ticker).Msg("Interest add failed")
		b.reply(ctx, chatID, "종목 추가 중 오류가 발생했습니다.")
	default:
		b.reply(ctx, chatID, fmt.Sprintf("%s 추가 완료.", displayTicker(res)))
	}
}

func (b *Bot) handleRemove(ctx context.Context, chatID int64, args string) {
	if args == "" {
		b.reply(ctx, chatID, "사용법: /remove 005930")
		return
	}

	ticker := models.NormalizeTicker(args)
	err := b.interest.Remove(ctx, chatKey(chatID), ticker)
	switch {
	case errors.Is(err, interest.ErrTickerNotListed):
		b.reply(ctx, chatID, "목록에 없는 종목입니다.")
	case err != nil:
		b.logger.Error().Err(err).Str("ticker", ticker).Msg("Interest remove failed")
		b.reply(ctx, chatID, "종목 삭제 중 오류가 발생했습니다.")
	default:
		b.reply(ctx, chatID, fmt.Sprintf("%s 삭제 완료.", ticker))
	}
}

func (b *Bot) handleList(ctx context.Context, chatID int64) {
	tickers := b.interest.List(ctx, chatKey(chatID))
	if len(tickers) == 0 {
		b.reply(ctx, chatID, "비어있음")
		return
	}
	b.reply(ctx, chatID, strings.Join(tickers, ", "))
}

func (b *Bot) handleReport(ctx context.Context, chatID int64) {
	tickers := b.interest.List(ctx, chatKey(chatID))
	rep := b.report.Generate(ctx, tickers)
	b.reply(ctx, chatID, rep.Text)
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.tg.SendMessage(ctx, chatID, text); err != nil {
		b.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Reply failed")
	}
}

// displayTicker labels a resolved ticker with its name when known.
func displayTicker(res models.Resolution) string {
	if res.Name != "" {
		return fmt.Sprintf("%s(%s)", res.Ticker, res.Name)
	}
	return res.Ticker
}
