package interfaces

import (
	"context"
	"time"

	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// SymbolCatalog answers classification and name-lookup queries. It is
// built once at startup and read-only afterwards; an empty catalog is a
// supported degraded mode, not an error.
type SymbolCatalog interface {
	// Classify returns the market a ticker belongs to, or MarketUnknown.
	Classify(ticker string) models.Market

	// NameFor returns the listed name for a domestic code or foreign
	// symbol.
	NameFor(code string) (string, bool)

	// CodeForName returns the code for an exact domestic name.
	CodeForName(name string) (string, bool)

	// Search returns all (name, code) pairs whose name contains text,
	// in catalog iteration order (stable, not ranked).
	Search(text string) []models.Candidate

	// Empty reports whether the catalog loaded no domestic listing.
	Empty() bool
}

// MarketGateway fetches and validates per-ticker price data.
type MarketGateway interface {
	// FetchSeries returns daily closes for a canonical ticker between
	// from and to, ascending by date. An empty slice with nil error means
	// the provider had no rows; a non-nil error means the fetch faulted.
	FetchSeries(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceBar, error)

	// IsValid reports whether a ticker plausibly exists: a catalog hit,
	// or a short trailing-window fetch yielding at least one row.
	// Best-effort: thin tickers can produce false negatives.
	IsValid(ctx context.Context, ticker string) bool
}

// NewsService fetches the latest news item and its summary for a ticker.
// Both operations absorb every failure: LatestNews returns nil, Summarize
// returns a fixed fallback string.
type NewsService interface {
	LatestNews(ctx context.Context, ticker string) *models.NewsItem
	Summarize(ctx context.Context, stockName, newsURL string) string
}

// ReportService composes the market report for a list of tickers.
type ReportService interface {
	// Generate produces the full report text. Individual ticker failures
	// are skipped, never surfaced.
	Generate(ctx context.Context, tickers []string) *models.Report
}

// InterestService manages per-chat interest lists.
type InterestService interface {
	// Add appends a ticker to a chat's list. Returns ErrDuplicateTicker
	// or ErrUnknownTicker.
	Add(ctx context.Context, chatKey, ticker string) error

	// Remove deletes a ticker from a chat's list. Returns
	// ErrTickerNotListed when absent.
	Remove(ctx context.Context, chatKey, ticker string) error

	// List returns a chat's tickers in insertion order.
	List(ctx context.Context, chatKey string) []string

	// Chats returns every chat key with a non-empty list.
	Chats(ctx context.Context) []string
}
