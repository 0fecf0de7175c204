package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gamebites/backend/internal/domain"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

const snapshotKey = "rates:usd"

// Client fetches exchange-rate snapshots anchored at USD.
//
// A fetched snapshot is memoized with a TTL so concurrent page sessions
// share one upstream call; each session keeps whatever table it was handed
// for its whole lifetime.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	snapshots   *gocache.Cache
	debug       bool
}

// NewClient creates a rates client. snapshotTTL bounds how long a live
// snapshot is reused before the next session triggers a fresh fetch.
func NewClient(baseURL string, snapshotTTL time.Duration) *Client {
	if snapshotTTL <= 0 {
		snapshotTTL = time.Hour
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
		snapshots:   gocache.New(snapshotTTL, 2*snapshotTTL),
	}
}

// SetDebug enables verbose request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchRates returns a rate table for the session. It never fails: any
// fetch or parse problem degrades to the hardcoded fallback table. The
// fallback is not memoized, so a later session retries the live source.
func (c *Client) FetchRates(ctx context.Context) domain.RateTable {
	if cached, ok := c.snapshots.Get(snapshotKey); ok {
		return cached.(domain.RateTable)
	}

	table, err := c.fetchLive(ctx)
	if err != nil {
		log.Printf("[Rates] Live fetch failed, using fallback table: %v", err)
		return domain.FallbackRates()
	}

	c.snapshots.Set(snapshotKey, table, gocache.DefaultExpiration)
	log.Printf("[Rates] Loaded %d rates", len(table))
	return table
}

// fetchLive performs one GET against the rate service.
func (c *Client) fetchLive(ctx context.Context) (domain.RateTable, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/latest?from=USD", c.baseURL)
	if c.debug {
		log.Printf("[Rates] GET %s", reqURL)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "GameBites/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrRateServiceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateServiceUnavailable, err)
	}

	var payload domain.RatesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRateServiceUnavailable, err)
	}

	// USD is pinned to 1 regardless of what the service reports.
	table := domain.RateTable{domain.CurrencyUSD: 1}
	for code, r := range payload.Rates {
		if code == domain.CurrencyUSD {
			continue
		}
		table[code] = r
	}

	return table, nil
}
