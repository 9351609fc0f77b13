// Package gemini provides a client for the Google Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
)

const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultMaxOutputTokens = 200
)

// Client implements the SummarizerClient interface
type Client struct {
	client          *genai.Client
	model           string
	maxOutputTokens int32
	logger          *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithMaxOutputTokens bounds the summary length
func WithMaxOutputTokens(n int32) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxOutputTokens = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini client
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client:          genaiClient,
		model:           DefaultModel,
		maxOutputTokens: DefaultMaxOutputTokens,
		logger:          common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// GenerateContent generates text from a prompt, bounded by the configured
// output token limit.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	c.logger.Debug().Str("model", c.model).Msg("Generating content")

	contents := genai.Text(prompt)
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxOutputTokens,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(result)
}

// SummarizeNews produces a short investor-focused summary of the article
// at newsURL about the named stock.
func (c *Client) SummarizeNews(ctx context.Context, stockName, newsURL string) (string, error) {
	prompt := fmt.Sprintf(`종목명과 뉴스 링크를 바탕으로 투자자 관점에서 핵심 포인트만 짧게 요약해주세요:

종목명: %s
뉴스 링크: %s
`, stockName, newsURL)

	text, err := c.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

// extractTextFromResponse extracts text from a generate content response
func extractTextFromResponse(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	text := ""
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}

	return text, nil
}

// Ensure Client implements SummarizerClient
var _ interfaces.SummarizerClient = (*Client)(nil)
