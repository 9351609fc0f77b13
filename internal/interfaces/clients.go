// Package interfaces defines service contracts for the stock news bot
package interfaces

import (
	"context"
	"time"

	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// MarketDataClient provides access to the market data provider.
type MarketDataClient interface {
	// GetEOD retrieves daily closes for a provider symbol, ascending by date.
	GetEOD(ctx context.Context, symbol string, from, to time.Time) ([]models.PriceBar, error)

	// GetExchangeSymbols retrieves the full listing for an exchange.
	// Used once at startup to build the symbol catalog.
	GetExchangeSymbols(ctx context.Context, exchange string) ([]models.Symbol, error)
}

// NewsClient provides access to the news provider.
type NewsClient interface {
	// DomesticNews retrieves the newest cluster's first item for a
	// domestic ticker code.
	DomesticNews(ctx context.Context, code string) (*models.NewsItem, error)

	// WorldNews retrieves the newest cluster's first item for a foreign
	// symbol. The symbol must already carry its market suffix.
	WorldNews(ctx context.Context, symbol string) (*models.NewsItem, error)
}

// SummarizerClient provides access to the generative text service.
type SummarizerClient interface {
	// SummarizeNews produces a short investor-focused summary of the
	// article at newsURL about the named stock.
	SummarizeNews(ctx context.Context, stockName, newsURL string) (string, error)
}

// TelegramClient provides access to the Telegram Bot API.
type TelegramClient interface {
	// SendMessage delivers plain text to a chat. No parse mode is set so
	// user input and summaries cannot break message formatting; link
	// previews stay enabled.
	SendMessage(ctx context.Context, chatID int64, text string) error

	// GetUpdates long-polls for new updates after offset.
	GetUpdates(ctx context.Context, offset int64) ([]models.Update, error)
}
