package nba

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://stats.nba.com/stats"

// Client fetches stats endpoints with request pacing, one retry on transport
// errors, and an optional response cache. The upstream API throttles
// aggressively, so every request waits on a shared rate limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	cacheTTL   time.Duration
	maxRetries int
	backoff    time.Duration
}

func New(baseURL string, requestsPerSec float64, cache Cache, cacheTTL time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cache == nil {
		cache = NopCache()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		cache:      cache,
		cacheTTL:   cacheTTL,
		maxRetries: 1,
		backoff:    5 * time.Second,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	key := endpoint + "?" + params.Encode()
	if body, ok := c.cache.Get(ctx, key); ok {
		return body, nil
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.doRequest(ctx, endpoint, params)
		if err != nil {
			lastErr = err
			continue
		}

		if c.cacheTTL > 0 {
			c.cache.Set(ctx, key, body, c.cacheTTL)
		}
		return body, nil
	}

	return nil, fmt.Errorf("fetching %s: %w", endpoint, lastErr)
}

func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	// The stats API rejects requests without browser-shaped headers.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", endpoint, res.StatusCode)
	}

	return io.ReadAll(res.Body)
}
