// Package app wires configuration, clients, and services together.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ssehuun/telegram-news-bot/internal/bot"
	"github.com/ssehuun/telegram-news-bot/internal/catalog"
	"github.com/ssehuun/telegram-news-bot/internal/clients/eodhd"
	"github.com/ssehuun/telegram-news-bot/internal/clients/gemini"
	"github.com/ssehuun/telegram-news-bot/internal/clients/naver"
	"github.com/ssehuun/telegram-news-bot/internal/clients/telegram"
	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/resolver"
	"github.com/ssehuun/telegram-news-bot/internal/services/interest"
	"github.com/ssehuun/telegram-news-bot/internal/services/market"
	"github.com/ssehuun/telegram-news-bot/internal/services/news"
	"github.com/ssehuun/telegram-news-bot/internal/services/report"
	"github.com/ssehuun/telegram-news-bot/internal/storage/interestdb"
)

// App holds all initialized clients and services. It is the shared core
// behind cmd/stockbot.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Store           interfaces.InterestStore
	MarketClient    interfaces.MarketDataClient
	NewsClient      interfaces.NewsClient
	Summarizer      interfaces.SummarizerClient
	Telegram        interfaces.TelegramClient
	Catalog         interfaces.SymbolCatalog
	Resolver        *resolver.Resolver
	Gateway         interfaces.MarketGateway
	NewsService     interfaces.NewsService
	ReportService   interfaces.ReportService
	InterestService interfaces.InterestService
	Bot             *bot.Bot
	StartupTime     time.Time

	schedulerCancel context.CancelFunc
	pollCancel      context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, clients, and services.
// configPath may be empty, in which case the default resolution logic
// is used.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, STOCKBOT_CONFIG, then
	// binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("STOCKBOT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "stockbot.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/stockbot.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Interest.Path != "" && !filepath.IsAbs(config.Storage.Interest.Path) {
		config.Storage.Interest.Path = filepath.Join(binDir, config.Storage.Interest.Path)
	}

	logger := common.NewLogger(config.Logging.Level)

	if config.Clients.Telegram.Token == "" {
		return nil, fmt.Errorf("telegram bot token not configured (TELEGRAM_BOT_TOKEN)")
	}

	// Storage
	store, err := interestdb.NewStore(logger, config.Storage.Interest.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize interest storage: %w", err)
	}
	store.ImportLegacyFile(ctx, config.Storage.LegacyFile)

	// API clients
	var marketClient interfaces.MarketDataClient
	if config.Clients.EODHD.APIKey != "" {
		marketClient = eodhd.NewClient(config.Clients.EODHD.APIKey,
			eodhd.WithBaseURL(config.Clients.EODHD.BaseURL),
			eodhd.WithLogger(logger),
			eodhd.WithRateLimit(config.Clients.EODHD.RateLimit),
			eodhd.WithTimeout(config.Clients.EODHD.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("EODHD API key not configured - price data will be unavailable")
	}

	newsClient := naver.NewClient(
		naver.WithBaseURL(config.Clients.Naver.BaseURL),
		naver.WithLogger(logger),
		naver.WithTimeout(config.Clients.Naver.GetTimeout()),
	)

	var summarizer interfaces.SummarizerClient
	if config.Clients.Gemini.APIKey != "" {
		geminiClient, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithMaxOutputTokens(config.Clients.Gemini.MaxOutputTokens),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client - summaries will use fallback text")
		} else {
			summarizer = geminiClient
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - summaries will use fallback text")
	}

	tgClient := telegram.NewClient(config.Clients.Telegram.Token,
		telegram.WithBaseURL(config.Clients.Telegram.BaseURL),
		telegram.WithLogger(logger),
		telegram.WithTimeout(config.Clients.Telegram.GetTimeout()),
		telegram.WithPollSeconds(config.Clients.Telegram.PollSeconds),
	)

	// Catalog is built once at startup; a failed listing fetch degrades
	// to an empty catalog rather than failing startup.
	cat := catalog.Build(ctx, marketClient, config.Catalog, logger)

	// Services
	gateway := market.NewService(marketClient, cat, logger)
	newsService := news.NewService(newsClient, summarizer, cat, logger)
	reportService := report.NewService(gateway, cat, newsService, config.ReportLocation(), logger)
	interestService := interest.NewService(ctx, store, gateway, logger)
	res := resolver.New(cat)

	a := &App{
		Config:          config,
		Logger:          logger,
		Store:           store,
		MarketClient:    marketClient,
		NewsClient:      newsClient,
		Summarizer:      summarizer,
		Telegram:        tgClient,
		Catalog:         cat,
		Resolver:        res,
		Gateway:         gateway,
		NewsService:     newsService,
		ReportService:   reportService,
		InterestService: interestService,
		Bot:             bot.New(tgClient, res, interestService, reportService, logger),
		StartupTime:     startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// StartPolling launches the Telegram command polling goroutine.
func (a *App) StartPolling() {
	pollCtx, pollCancel := context.WithCancel(context.Background())
	a.pollCancel = pollCancel
	go a.Bot.Run(pollCtx)
}

// StartReportScheduler launches the background report delivery goroutine.
func (a *App) StartReportScheduler() {
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	a.schedulerCancel = schedulerCancel
	go startReportScheduler(schedulerCtx, a.InterestService, a.ReportService, a.Telegram, a.Logger, a.Config.Report.GetInterval())
}

// Close releases all resources held by the App.
// Shutdown order: stop polling, stop scheduler, close storage.
func (a *App) Close() {
	if a.pollCancel != nil {
		a.pollCancel()
		a.pollCancel = nil
	}
	if a.schedulerCancel != nil {
		a.schedulerCancel()
		a.schedulerCancel = nil
	}
	if a.Store != nil {
		a.Store.Close()
		a.Store = nil
	}
}
