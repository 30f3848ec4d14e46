package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
)

// RawProduct is an opaque marketplace record. The source guarantees nothing
// about field presence or shape, so the boundary stays loosely typed and the
// normalizer coerces it into the strict internal Product.
type RawProduct map[string]interface{}

// Distinguishable failure reasons per the capability contract.
var (
	ErrNoProducts    = errors.New("search returned no products")
	ErrMalformedBody = errors.New("search response body is malformed")
)

// ProductSearcher is the capability contract consumed by the router.
type ProductSearcher interface {
	Search(ctx context.Context, query string) ([]RawProduct, error)
}

// Client calls a marketplace product-search API over HTTP GET.
type Client struct {
	baseURL string
	apiKey  string
	apiHost string
	country string
	http    *http.Client
	cache   *cache.Cache
}

var _ ProductSearcher = &Client{}

func NewClient(baseURL, apiKey, apiHost, country string) *Client {
	if country == "" {
		country = "US"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		apiHost: apiHost,
		country: country,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		// Search results are stable enough to reuse across a conversation
		cache: cache.New(10*time.Minute, 30*time.Minute),
	}
}

type searchResponse struct {
	Status string `json:"status"`
	Data   *struct {
		Products []RawProduct `json:"products"`
	} `json:"data"`
}

// Search returns the raw product list for a query. Failure reasons are kept
// distinguishable: transport/status errors, malformed bodies (ErrMalformedBody)
// and empty result sets (ErrNoProducts).
func (c *Client) Search(ctx context.Context, query string) ([]RawProduct, error) {
	cacheKey := fmt.Sprintf("search:%s:%s", c.country, query)
	if val, ok := c.cache.Get(cacheKey); ok {
		return val.([]RawProduct), nil
	}

	params := url.Values{}
	params.Add("query", query)
	params.Add("country", c.country)

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
	if c.apiHost != "" {
		req.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search error: status %d, body: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if result.Data == nil {
		return nil, fmt.Errorf("%w: missing data envelope", ErrMalformedBody)
	}
	if len(result.Data.Products) == 0 {
		return nil, ErrNoProducts
	}

	c.cache.Set(cacheKey, result.Data.Products, cache.DefaultExpiration)

	return result.Data.Products, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
