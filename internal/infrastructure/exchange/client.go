package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// RateProvider looks up the conversion rate from one currency to another.
// Implementations may fail; the Normalizer decides what that means.
type RateProvider interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

const DefaultBaseURL = "https://api.exchangerate-api.com/v4"

// Client talks to exchangerate-api.com. One GET per lookup, bounded by the
// http client's timeout, no retries: the caller falls back on failure
// rather than waiting.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (c *Client) GetRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/latest/%s", c.baseURL, from)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate lookup %s->%s: %w", from, to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate lookup %s->%s: unexpected status %d", from, to, resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("rate lookup %s->%s: decode: %w", from, to, err)
	}

	rate, ok := body.Rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate lookup %s->%s: currency not in response", from, to)
	}
	return rate, nil
}
