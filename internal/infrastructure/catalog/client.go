package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gamebites/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client fetches the remote product catalog (products.json).
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	// The catalog is a static JSON file behind a CDN; one fetch per page
	// session is the norm, so a small steady rate with a burst is plenty.
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the sleep before retry attempt n (1-based).
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(250<<attempt) * time.Millisecond
}

// doRequest executes an HTTP GET with the standard headers.
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "GameBites/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	return resp, nil
}

// FetchCatalog downloads and maps the product catalog snapshot.
// A failed fetch aborts session initialization upstream: the pipeline has
// nothing to compare against without a catalog.
func (c *Client) FetchCatalog(ctx context.Context) (*domain.Catalog, error) {
	reqURL := fmt.Sprintf("%s/products.json", c.baseURL)

	if c.debug {
		log.Printf("[Catalog] GET %s", reqURL)
	}

	// Retry transient failures; malformed payloads are terminal.
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[Catalog] Request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			log.Printf("[Catalog] Non-OK status (attempt %d): %d", attempt, resp.StatusCode)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		var payload domain.CatalogResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			log.Printf("[Catalog] JSON decode error: %v", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}

		snapshot := MapToCatalog(&payload)
		if len(snapshot.Products) == 0 {
			return nil, fmt.Errorf("%w: catalog is empty", domain.ErrCatalogUnavailable)
		}

		log.Printf("[Catalog] Loaded %d products from %d countries",
			len(snapshot.Products), len(payload.Countries))
		return snapshot, nil
	}

	log.Printf("[Catalog] All retries failed")
	return nil, lastErr
}
