// Package common provides shared utilities for the stock news bot
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the bot
type Config struct {
	Environment string        `toml:"environment"`
	DefaultChat string        `toml:"default_chat"` // chat id that receives scheduled reports
	Report      ReportConfig  `toml:"report"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Catalog     CatalogConfig `toml:"catalog"`
	Logging     LoggingConfig `toml:"logging"`
}

// ReportConfig holds report scheduling configuration
type ReportConfig struct {
	Interval string `toml:"interval"` // duration string, default "24h"
	Timezone string `toml:"timezone"` // IANA name for the report header timestamp
}

// GetInterval parses and returns the report interval
func (c *ReportConfig) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Interest   AreaConfig `toml:"interest"`    // interest lists (BadgerHold)
	LegacyFile string     `toml:"legacy_file"` // old flat JSON file, imported once if present
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Telegram TelegramConfig `toml:"telegram"`
	EODHD    EODHDConfig    `toml:"eodhd"`
	Naver    NaverConfig    `toml:"naver"`
	Gemini   GeminiConfig   `toml:"gemini"`
}

// TelegramConfig holds Telegram Bot API configuration
type TelegramConfig struct {
	BaseURL     string `toml:"base_url"`
	Token       string `toml:"token"`
	Timeout     string `toml:"timeout"`
	PollSeconds int    `toml:"poll_seconds"` // long-poll timeout for getUpdates
}

// GetTimeout parses and returns the timeout duration
func (c *TelegramConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// EODHDConfig holds EODHD API configuration
type EODHDConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *EODHDConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// NaverConfig holds Naver Finance news endpoint configuration
type NaverConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *NaverConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey          string `toml:"api_key"`
	Model           string `toml:"model"`
	MaxOutputTokens int32  `toml:"max_output_tokens"`
}

// CatalogConfig holds symbol catalog configuration.
// The domestic exchange supplies the code/name listing used for
// disambiguation; foreign exchanges supply membership sets only.
type CatalogConfig struct {
	DomesticExchange string   `toml:"domestic_exchange"`
	ForeignExchanges []string `toml:"foreign_exchanges"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Report: ReportConfig{
			Interval: "24h",
			Timezone: "Asia/Seoul",
		},
		Storage: StorageConfig{
			Interest:   AreaConfig{Path: "data/interest"},
			LegacyFile: "./interest_stocks.json",
		},
		Clients: ClientsConfig{
			Telegram: TelegramConfig{
				BaseURL:     "https://api.telegram.org",
				Timeout:     "30s",
				PollSeconds: 25,
			},
			EODHD: EODHDConfig{
				BaseURL:   "https://eodhd.com/api",
				RateLimit: 10,
				Timeout:   "10s",
			},
			Naver: NaverConfig{
				BaseURL: "https://stock.naver.com/api",
				Timeout: "10s",
			},
			Gemini: GeminiConfig{
				Model:           "gemini-2.0-flash",
				MaxOutputTokens: 200,
			},
		},
		Catalog: CatalogConfig{
			DomesticExchange: "KO",
			ForeignExchanges: []string{"NASDAQ", "NYSE"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STOCKBOT_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("STOCKBOT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("STOCKBOT_DATA_PATH"); path != "" {
		config.Storage.Interest.Path = filepath.Join(path, "interest")
	}

	if v := os.Getenv("STOCKBOT_REPORT_INTERVAL"); v != "" {
		config.Report.Interval = v
	}

	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		config.Clients.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		config.DefaultChat = v
	}
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		config.Clients.EODHD.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Clients.Gemini.APIKey = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ReportLocation resolves the configured report timezone, falling back to UTC.
func (c *Config) ReportLocation() *time.Location {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
