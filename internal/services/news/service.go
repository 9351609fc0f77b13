// Package news fetches the latest news item and its LLM summary for a
// ticker. Both operations are an isolated failure domain: nothing in
// here ever propagates an error to the caller.
package news

import (
	"context"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

// SummaryFallback is returned whenever summarization fails. The summary
// is advisory and must never block report completion.
const SummaryFallback = "요약을 생성할 수 없습니다."

// worldSuffix is appended to foreign symbols for the world-stock news
// endpoint. The upstream behavior applies the same suffix to both
// foreign exchanges; the mapping lives in newsSuffix so a per-exchange
// convention is a one-line change once confirmed.
const worldSuffix = ".O"

func newsSuffix(market models.Market) string {
	switch market {
	case models.MarketNASDAQ, models.MarketNYSE:
		return worldSuffix
	default:
		return worldSuffix
	}
}

// Service implements NewsService.
type Service struct {
	news       interfaces.NewsClient
	summarizer interfaces.SummarizerClient
	catalog    interfaces.SymbolCatalog
	logger     *common.Logger
}

// NewService creates a new news service. The summarizer may be nil, in
// which case every summary is the fallback string.
func NewService(news interfaces.NewsClient, summarizer interfaces.SummarizerClient, catalog interfaces.SymbolCatalog, logger *common.Logger) *Service {
	return &Service{
		news:       news,
		summarizer: summarizer,
		catalog:    catalog,
		logger:     logger,
	}
}

// LatestNews returns the single most recent news item for a ticker,
// routed by market classification. Domestic codes use the domestic
// endpoint; everything else goes to the world-stock endpoint with the
// market suffix appended. Any transport, parsing, or empty-result
// condition yields nil.
func (s *Service) LatestNews(ctx context.Context, ticker string) *models.NewsItem {
	if s.news == nil {
		return nil
	}

	ticker = models.NormalizeTicker(ticker)
	market := s.catalog.Classify(ticker)

	var (
		item *models.NewsItem
		err  error
	)
	if market == models.MarketDomestic || (market == models.MarketUnknown && models.IsDomesticCode(ticker)) {
		item, err = s.news.DomesticNews(ctx, ticker)
	} else {
		item, err = s.news.WorldNews(ctx, ticker+newsSuffix(market))
	}

	if err != nil {
		s.logger.Debug().Err(err).Str("ticker", ticker).Msg("News lookup failed")
		return nil
	}
	return item
}

// Summarize returns an LLM summary of the article, or the fallback
// string on any failure.
func (s *Service) Summarize(ctx context.Context, stockName, newsURL string) string {
	if s.summarizer == nil {
		return SummaryFallback
	}

	summary, err := s.summarizer.SummarizeNews(ctx, stockName, newsURL)
	if err != nil {
		s.logger.Warn().Err(err).Str("stock", stockName).Msg("Summarization failed: using fallback")
		return SummaryFallback
	}
	if summary == "" {
		return SummaryFallback
	}
	return summary
}

// Ensure Service implements NewsService
var _ interfaces.NewsService = (*Service)(nil)
