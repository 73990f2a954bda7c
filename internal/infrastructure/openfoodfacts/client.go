package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claimcheck/backend/internal/domain"
	"golang.org/x/time/rate"
)

const maxAttempts = 3

// ClientConfig holds Open Food Facts client settings
type ClientConfig struct {
	BaseURL                  string
	UserAgent                string
	Timeout                  time.Duration
	ProductRequestsPerMinute int
	SearchRequestsPerMinute  int
}

// Client handles communication with the Open Food Facts API
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	productLimiter *rate.Limiter
	searchLimiter  *rate.Limiter
	backoff        func(attempt int) time.Duration
	debug          bool
}

// NewClient creates a new Open Food Facts API client
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = "ClaimCheck/1.0"
	}

	// Open Food Facts allows 100 product reads and 10 searches per minute
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:        strings.TrimRight(config.BaseURL, "/"),
		userAgent:      userAgent,
		productLimiter: newPerMinuteLimiter(config.ProductRequestsPerMinute, 100, 10),
		searchLimiter:  newPerMinuteLimiter(config.SearchRequestsPerMinute, 10, 2),
		backoff:        exponentialBackoff,
	}
}

func newPerMinuteLimiter(perMinute, fallback, burst int) *rate.Limiter {
	if perMinute <= 0 {
		perMinute = fallback
	}
	if burst > perMinute {
		burst = perMinute
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
}

// SetDebug enables or disables logging of raw API responses
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the wait before retrying: 500ms, 1s, 2s, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// GetProduct retrieves a product by barcode
func (c *Client) GetProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	params := url.Values{}
	params.Add("fields", strings.Join(productFields, ","))
	reqURL := fmt.Sprintf("%s/api/v2/product/%s.json?%s", c.baseURL, url.PathEscape(barcode), params.Encode())

	body, status, err := c.getWithRetry(ctx, c.productLimiter, reqURL)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNotFound {
		log.Printf("[OFF] Product %s not found", barcode)
		return nil, domain.ErrProductNotFound
	}

	var productResp ProductResponse
	if err := json.Unmarshal(body, &productResp); err != nil {
		log.Printf("[OFF] JSON decode error: %v", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if productResp.Status != 1 || productResp.Product == nil {
		log.Printf("[OFF] Product %s not found (%s)", barcode, productResp.StatusVerbose)
		return nil, domain.ErrProductNotFound
	}

	return MapToProduct(productResp.Product, barcode), nil
}

// SearchProducts lists products of a category
func (c *Client) SearchProducts(ctx context.Context, query domain.SearchQuery) ([]domain.Product, error) {
	if strings.TrimSpace(query.CategoryTag) == "" {
		return nil, fmt.Errorf("category tag is required for search")
	}

	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	params := url.Values{}
	params.Add("categories_tags", query.CategoryTag)
	params.Add("fields", strings.Join(productFields, ","))
	params.Add("page_size", strconv.Itoa(pageSize))
	params.Add("sort_by", "popularity_key")
	reqURL := fmt.Sprintf("%s/api/v2/search?%s", c.baseURL, params.Encode())

	body, status, err := c.getWithRetry(ctx, c.searchLimiter, reqURL)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return []domain.Product{}, nil
	}

	var searchResp SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		log.Printf("[OFF] JSON decode error: %v", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[OFF] Found %d products in category %q", len(searchResp.Products), query.CategoryTag)
	return MapToProducts(searchResp.Products), nil
}

// getWithRetry performs up to maxAttempts GETs, retrying transport errors, 429
// and 5xx responses. 404 is returned to the caller as a status; other 4xx
// responses are errors. A 429 on the last attempt yields domain.ErrRateLimited.
func (c *Client) getWithRetry(ctx context.Context, limiter *rate.Limiter, reqURL string) ([]byte, int, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, 0, err
			}
		}

		if err := limiter.Wait(ctx); err != nil {
			log.Printf("[OFF] Rate limiter error: %v", err)
			return nil, 0, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, 0, err
			}
			log.Printf("[OFF] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrOpenFoodFactsFailure, readErr)
			continue
		}

		if c.debug {
			log.Printf("[OFF] GET %s -> %d: %s", reqURL, resp.StatusCode, truncate(string(body), 500))
		}

		switch {
		case resp.StatusCode == http.StatusOK, resp.StatusCode == http.StatusNotFound:
			return body, resp.StatusCode, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			log.Printf("[OFF] Rate limited (attempt %d)", attempt)
			lastErr = fmt.Errorf("%w: %w: status %d", domain.ErrRateLimited, domain.ErrOpenFoodFactsFailure, resp.StatusCode)
		case resp.StatusCode >= 500:
			log.Printf("[OFF] API error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrOpenFoodFactsFailure, resp.StatusCode)
		default:
			return nil, resp.StatusCode, fmt.Errorf("%w: status %d, body: %s",
				domain.ErrOpenFoodFactsFailure, resp.StatusCode, truncate(string(body), 200))
		}
	}

	log.Printf("[OFF] All retries failed for %s", reqURL)
	return nil, 0, lastErr
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOpenFoodFactsFailure, err)
	}

	return resp, nil
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
