package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/smartcart/backend/internal/domain"
	"golang.org/x/time/rate"
)

// feedRecord is one raw row from the price feed. The feed publishes under
// its own field names and is not guaranteed clean; mapping to domain offers
// happens here, at the boundary.
type feedRecord struct {
	Name  string  `json:"name"`
	Brand string  `json:"brand,omitempty"`
	Price float64 `json:"price"`
	Unit  string  `json:"unit,omitempty"`
	Store string  `json:"store"`
}

// feedResponse is the price feed's offer listing.
type feedResponse struct {
	Offers     []feedRecord `json:"offers"`
	StoreCount int          `json:"storeCount"`
	Snapshot   string       `json:"snapshot,omitempty"`
}

// Client fetches the offer table from an external price feed API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new price feed client. The feed allows 1000 requests
// per hour, so the limiter runs at 1000/3600 ≈ 0.278 requests/sec with a
// small burst.
func NewClient(apiKey, baseURL string) *Client {
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// FetchOffers retrieves the full offer table for the current feed snapshot.
// Transient failures are retried up to 3 times with linear backoff.
func (c *Client) FetchOffers(ctx context.Context) ([]domain.PriceOffer, error) {
	endpoint := fmt.Sprintf("%s/v1/offers", c.baseURL)
	params := url.Values{}
	params.Add("api_key", c.apiKey)

	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] Feed error (attempt %d) - Status: %d, Body: %s",
					attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var feed feedResponse
		if err := json.Unmarshal(body, &feed); err != nil {
			return nil, fmt.Errorf("failed to decode feed response: %w", err)
		}

		offers := mapFeedOffers(feed.Offers)
		if c.debug {
			log.Printf("[CATALOG] Fetched %d offers (%d usable)", len(feed.Offers), len(offers))
		}
		return offers, nil
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with proper headers
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "SmartCart/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return resp, nil
}

// mapFeedOffers converts raw feed rows to domain offers, skipping rows that
// lack a product or store. The engine drops dirty records too; filtering
// here just keeps garbage out of the cache.
func mapFeedOffers(records []feedRecord) []domain.PriceOffer {
	offers := make([]domain.PriceOffer, 0, len(records))
	for _, rec := range records {
		if rec.Name == "" || rec.Store == "" || rec.Price < 0 {
			continue
		}
		offers = append(offers, domain.PriceOffer{
			Product: rec.Name,
			Brand:   rec.Brand,
			Price:   rec.Price,
			Unit:    rec.Unit,
			Store:   rec.Store,
		})
	}
	return offers
}
