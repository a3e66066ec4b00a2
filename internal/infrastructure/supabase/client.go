package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lumo/storefront/internal/domain"
	"github.com/lumo/storefront/internal/infrastructure/catalog"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	maxAttempts      = 3
	defaultRetryBase = 500 * time.Millisecond
	maxErrorBodySize = 4096
	defaultTable     = "projects"
)

// ClientConfig holds configuration for the PostgREST client
type ClientConfig struct {
	BaseURL           string
	APIKey            string
	Table             string
	RequestsPerSecond float64
	Mapper            catalog.MapperOptions
	Logger            zerolog.Logger
}

// Client reads the project catalog from a Supabase PostgREST endpoint
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	table       string
	mapper      catalog.MapperOptions
	rateLimiter *rate.Limiter
	retryBase   time.Duration
	logger      zerolog.Logger
	debug       bool
}

// NewClient creates a new PostgREST catalog client
func NewClient(config ClientConfig) *Client {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	table := config.Table
	if table == "" {
		table = defaultTable
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      config.APIKey,
		baseURL:     strings.TrimSuffix(config.BaseURL, "/"),
		table:       table,
		mapper:      config.Mapper,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		retryBase:   defaultRetryBase,
		logger:      config.Logger.With().Str("component", "supabase").Logger(),
	}
}

// SetDebug enables or disables request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// ListProjects fetches the full catalog
func (c *Client) ListProjects(ctx context.Context) ([]domain.CatalogItem, error) {
	params := url.Values{}
	params.Set("select", "*")

	records, err := c.fetchRecords(ctx, params)
	if err != nil {
		return nil, err
	}

	c.debugLog("fetched %d projects", len(records))
	return catalog.ToCatalogItems(records, c.mapper), nil
}

// GetProject fetches one project by id
func (c *Client) GetProject(ctx context.Context, id string) (*domain.CatalogItem, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	params := url.Values{}
	params.Set("select", "*")
	params.Set("id", "eq."+id)

	records, err := c.fetchRecords(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrProjectNotFound
	}

	item := catalog.ToCatalogItem(&records[0], c.mapper)
	return &item, nil
}

// fetchRecords queries the table, retrying transport failures, 429 and 5xx
func (c *Client) fetchRecords(ctx context.Context, params url.Values) ([]catalog.ProjectRecord, error) {
	reqURL := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, c.table, params.Encode())
	if _, err := url.Parse(reqURL); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, exponentialBackoff(c.retryBase, attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("catalog request failed")
			lastErr = err
			continue
		}

		body, err := readLimitedBody(resp.Body, 32<<20)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrCatalogUnavailable, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			var records []catalog.ProjectRecord
			if err := json.Unmarshal(body, &records); err != nil {
				return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrCatalogUnavailable, err)
			}
			return records, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%w: table %q not found", domain.ErrCatalogUnavailable, c.table)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Int("attempt", attempt).
				Str("body", truncate(body, maxErrorBodySize)).
				Msg("catalog request returned retryable status")
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s",
				domain.ErrCatalogUnavailable, resp.StatusCode, truncate(body, maxErrorBodySize))
		}
	}

	c.logger.Error().Err(lastErr).Msg("all catalog request attempts failed")
	return nil, lastErr
}

// doRequest executes an HTTP GET request with PostgREST headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Lumo/1.0")

	c.debugLog("GET %s", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return resp, nil
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		c.logger.Debug().Msgf(format, args...)
	}
}

// exponentialBackoff returns base, 2*base, 4*base... for attempt 1, 2, 3...
func exponentialBackoff(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return base * time.Duration(1<<(attempt-1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

func truncate(body []byte, n int) string {
	if len(body) > n {
		body = body[:n]
	}
	return string(body)
}
