// Package report composes the market-watch report.
package report

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
	"github.com/ssehuun/telegram-news-bot/internal/services/market"
)

// topMoversCount caps the strength section.
const topMoversCount = 3

// Service implements ReportService.
type Service struct {
	gateway  interfaces.MarketGateway
	catalog  interfaces.SymbolCatalog
	news     interfaces.NewsService
	logger   *common.Logger
	location *time.Location
}

// NewService creates a new report composer.
func NewService(gateway interfaces.MarketGateway, catalog interfaces.SymbolCatalog, news interfaces.NewsService, location *time.Location, logger *common.Logger) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		gateway:  gateway,
		catalog:  catalog,
		news:     news,
		logger:   logger,
		location: location,
	}
}

// Generate composes the full report for a ticker list. Every run gets
// its own empty RunCache, so no data leaks between runs. A single
// ticker's data, news, or summary failure skips just that piece;
// everything below the composer returns sentinel "no value" results
// rather than errors, and nothing here aborts the run.
func (s *Service) Generate(ctx context.Context, tickers []string) *models.Report {
	runID := uuid.NewString()
	start := time.Now()
	logger := &common.Logger{Logger: s.logger.With().Str("run_id", runID).Logger()}

	logger.Info().Int("tickers", len(tickers)).Msg("Generating report")

	cache := market.NewRunCache(s.gateway, s.catalog, logger)

	var sb strings.Builder
	now := time.Now().In(s.location)
	sb.WriteString(formatHeader(now))

	sb.WriteString("🎯 관심 종목\n")
	sb.WriteString(sectionRule + "\n")

	if len(tickers) == 0 {
		sb.WriteString("\n" + emptyListNotice + "\n")
	}

	for _, ticker := range tickers {
		info := cache.Get(ctx, ticker)
		if info == nil {
			continue
		}

		item := s.news.LatestNews(ctx, info.Ticker)
		summary := ""
		if item != nil {
			summary = s.news.Summarize(ctx, info.Name, item.URL)
		}

		formatStockSection(&sb, info, item, summary)
	}

	formatTopMovers(&sb, cache.TopMovers(topMoversCount))

	logger.Info().
		Int("with_info", cache.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Report generated")

	return &models.Report{
		RunID:       runID,
		GeneratedAt: now,
		Tickers:     append([]string(nil), tickers...),
		Text:        sb.String(),
	}
}

// Ensure Service implements ReportService
var _ interfaces.ReportService = (*Service)(nil)
