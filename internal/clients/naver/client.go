// Package naver provides a client for the Naver Finance news endpoints
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/ssehuun/telegram-news-bot/internal/common"
	"github.com/ssehuun/telegram-news-bot/internal/interfaces"
	"github.com/ssehuun/telegram-news-bot/internal/models"
)

const (
	DefaultBaseURL   = "https://stock.naver.com/api"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second

	articleURLFormat = "https://n.news.naver.com/article/%s/%s"
)

// Client implements the NewsClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
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

// NewClient creates a new Naver Finance news client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
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

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Naver API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// newsResponse mirrors the cluster-grouped news payload (trimmed).
type newsResponse struct {
	Clusters []struct {
		Items []struct {
			Title     string `json:"title"`
			OfficeID  string `json:"officeId"`
			ArticleID string `json:"articleId"`
		} `json:"items"`
	} `json:"clusters"`
}

// get performs a rate-limited GET request with browser-shaped headers.
func (c *Client) get(ctx context.Context, path, referer string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", referer)

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Naver news request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// DomesticNews retrieves the newest cluster's first item for a domestic code.
func (c *Client) DomesticNews(ctx context.Context, code string) (*models.NewsItem, error) {
	params := url.Values{}
	params.Set("itemCode", code)
	params.Set("page", "1")
	params.Set("pageSize", "1")

	referer := fmt.Sprintf("https://stock.naver.com/domestic/stock/%s/news", code)

	var resp newsResponse
	if err := c.get(ctx, "/domestic/detail/news", referer, params, &resp); err != nil {
		return nil, err
	}

	return firstItem(&resp)
}

// WorldNews retrieves the newest cluster's first item for a foreign symbol.
// The symbol must already carry its market suffix (e.g. "AAPL.O").
func (c *Client) WorldNews(ctx context.Context, symbol string) (*models.NewsItem, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("page", "1")
	params.Set("pageSize", "1")

	referer := fmt.Sprintf("https://stock.naver.com/worldstock/stock/%s/news", symbol)

	var resp newsResponse
	if err := c.get(ctx, "/news/worldstock", referer, params, &resp); err != nil {
		return nil, err
	}

	return firstItem(&resp)
}

// firstItem extracts the first item of the first cluster. Only the most
// relevant article is kept per ticker.
func firstItem(resp *newsResponse) (*models.NewsItem, error) {
	if len(resp.Clusters) == 0 || len(resp.Clusters[0].Items) == 0 {
		return nil, fmt.Errorf("no news items in response")
	}

	item := resp.Clusters[0].Items[0]
	return &models.NewsItem{
		Title:     item.Title,
		OfficeID:  item.OfficeID,
		ArticleID: item.ArticleID,
		URL:       fmt.Sprintf(articleURLFormat, item.OfficeID, item.ArticleID),
	}, nil
}

// Ensure Client implements NewsClient
var _ interfaces.NewsClient = (*Client)(nil)
