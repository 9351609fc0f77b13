package market

import (
	"context"
	"sort"
	"time"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// infoWindow is the trailing window fetched for a stock info lookup.
// A week covers weekends and market holidays while still yielding the
// last two trading sessions.
const infoWindow = 7 * 24 * time.Hour

// RunCache memoizes StockInfo per ticker for a single report run.
// It exists so one run never fetches the same ticker twice; it carries
// no TTL and no invalidation. Create a fresh instance per run and
// discard it afterwards.
type RunCache struct {
	gateway interfaces.MarketGateway
	catalog interfaces.SymbolCatalog
	logger  *common.Logger

	entries map[string]*models.StockInfo
	order   []string // insertion order, drives the top-movers tie-break
}

// NewRunCache creates an empty cache for one report run.
func NewRunCache(gateway interfaces.MarketGateway, catalog interfaces.SymbolCatalog, logger *common.Logger) *RunCache {
	return &RunCache{
		gateway: gateway,
		catalog: catalog,
		logger:  logger,
		entries: make(map[string]*models.StockInfo),
	}
}

// Get returns the stock info for a ticker, fetching on first use.
// Fewer than two session closes in the window yields nil: "no info",
// not an error; callers skip the ticker silently.
func (c *RunCache) Get(ctx context.Context, ticker string) *models.StockInfo {
	ticker = models.NormalizeTicker(ticker)

	if info, ok := c.entries[ticker]; ok {
		return info
	}

	to := time.Now()
	from := to.Add(-infoWindow)

	bars, err := c.gateway.FetchSeries(ctx, ticker, from, to)
	if err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("Stock info fetch failed: skipping")
		return nil
	}
	if len(bars) < 2 {
		c.logger.Debug().Str("ticker", ticker).Int("rows", len(bars)).
			Msg("Insufficient history for change rate: skipping")
		return nil
	}

	// Gateway returns ascending rows; the last two are the most recent
	// trading sessions (not necessarily adjacent calendar days).
	latest := bars[len(bars)-1].Close
	previous := bars[len(bars)-2].Close

	info := &models.StockInfo{
		Name:       c.displayName(ticker),
		Ticker:     ticker,
		Close:      latest,
		ChangeRate: (latest - previous) / previous * 100,
	}

	c.entries[ticker] = info
	c.order = append(c.order, ticker)
	return info
}

// displayName resolves a ticker's display name: the catalog serves both
// domestic and foreign listing names; the raw ticker string is the last
// resort.
func (c *RunCache) displayName(ticker string) string {
	if name, ok := c.catalog.NameFor(ticker); ok {
		return name
	}
	return ticker
}

// Len returns the number of cached entries.
func (c *RunCache) Len() int {
	return len(c.entries)
}

// TopMovers returns up to n cached entries ranked by change rate
// descending. Ties keep insertion order: the order tickers were first
// fetched in this run.
func (c *RunCache) TopMovers(n int) []*models.StockInfo {
	ranked := make([]*models.StockInfo, 0, len(c.order))
	for _, ticker := range c.order {
		ranked = append(ranked, c.entries[ticker])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ChangeRate > ranked[j].ChangeRate
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
