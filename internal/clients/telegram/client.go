// Package telegram provides a client for the Telegram Bot API
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

const (
	DefaultBaseURL     = "https://api.telegram.org"
	DefaultTimeout     = 30 * time.Second
	DefaultPollSeconds = 25
	DefaultRateLimit   = 25 // messages per second, under Telegram's global cap
)

// Client implements the TelegramClient interface
type Client struct {
	baseURL     string
	token       string
	pollSeconds int
	httpClient  *http.Client
	logger      *common.Logger
	limiter     *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithPollSeconds sets the getUpdates long-poll timeout
func WithPollSeconds(seconds int) ClientOption {
	return func(c *Client) {
		if seconds > 0 {
			c.pollSeconds = seconds
		}
	}
}

// NewClient creates a new Telegram Bot API client
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		token:       token,
		pollSeconds: DefaultPollSeconds,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a Bot API error
type APIError struct {
	StatusCode  int
	Description string
	Method      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Telegram API error: %s (status: %d, method: %s)", e.Description, e.StatusCode, e.Method)
}

// apiResponse is the Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// post performs a rate-limited JSON POST to a Bot API method.
func (c *Client) post(ctx context.Context, method string, payload, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	reqURL := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("method", method).Msg("Telegram API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !envelope.OK {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Description: envelope.Description,
			Method:      method,
		}
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}

	return nil
}

// SendMessage delivers plain text to a chat. Parse mode is deliberately
// unset since summaries and user input may contain markup-like
// characters. Link previews stay enabled.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload := map[string]interface{}{
		"chat_id":                  chatID,
		"text":                     text,
		"disable_web_page_preview": false,
	}

	if err := c.post(ctx, "sendMessage", payload, nil); err != nil {
		return err
	}

	c.logger.Debug().Int64("chat_id", chatID).Int("chars", len(text)).Msg("Message sent")
	return nil
}

// GetUpdates long-polls for updates after offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]models.Update, error) {
	payload := map[string]interface{}{
		"offset":          offset,
		"timeout":         c.pollSeconds,
		"allowed_updates": []string{"message"},
	}

	var updates []models.Update
	if err := c.post(ctx, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}

	return updates, nil
}

// Ensure Client implements TelegramClient
var _ interfaces.TelegramClient = (*Client)(nil)
