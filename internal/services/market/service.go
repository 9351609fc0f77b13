// Package market provides the market data gateway and the per-run
// stock info cache.
package market

import (
	"context"
	"fmt"
	"time"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

const (
	// Provider symbol suffixes. Domestic codes map to the Korean
	// exchange feed; US-listed foreign symbols share one feed.
	domesticSuffix = ".KO"
	foreignSuffix  = ".US"

	// probeWindow is the trailing window used by IsValid when the
	// catalog has no entry for a ticker.
	probeWindow = 5 * 24 * time.Hour
)

// Service implements MarketGateway.
type Service struct {
	client  interfaces.MarketDataClient
	catalog interfaces.SymbolCatalog
	logger  *common.Logger
}

// NewService creates a new market data gateway.
func NewService(client interfaces.MarketDataClient, catalog interfaces.SymbolCatalog, logger *common.Logger) *Service {
	return &Service{
		client:  client,
		catalog: catalog,
		logger:  logger,
	}
}

// providerSymbol maps a canonical ticker to the provider's symbol form.
func providerSymbol(ticker string) string {
	ticker = models.NormalizeTicker(ticker)
	if models.IsDomesticCode(ticker) {
		return ticker + domesticSuffix
	}
	return ticker + foreignSuffix
}

// FetchSeries returns daily closes for a canonical ticker, ascending by
// date. An empty result is not an error: it means the provider had no
// rows for the window. A non-nil error means the fetch itself faulted.
func (s *Service) FetchSeries(ctx context.Context, ticker string, from, to time.Time) ([]models.PriceBar, error) {
	if s.client == nil {
		return nil, fmt.Errorf("market data client not configured")
	}

	bars, err := s.client.GetEOD(ctx, providerSymbol(ticker), from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch series for %s: %w", ticker, err)
	}

	return bars, nil
}

// IsValid reports whether a ticker plausibly exists. A catalog hit is
// accepted outright; otherwise a short trailing-window fetch must yield
// at least one row. Best-effort only: thin or illiquid tickers can
// produce false negatives.
func (s *Service) IsValid(ctx context.Context, ticker string) bool {
	if s.catalog.Classify(ticker) != models.MarketUnknown {
		return true
	}

	to := time.Now()
	from := to.Add(-probeWindow)

	bars, err := s.FetchSeries(ctx, ticker, from, to)
	if err != nil {
		s.logger.Debug().Err(err).Str("ticker", ticker).Msg("Validity probe failed")
		return false
	}
	return len(bars) > 0
}

// Ensure Service implements MarketGateway
var _ interfaces.MarketGateway = (*Service)(nil)
