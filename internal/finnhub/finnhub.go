// Package finnhub is a minimal client for the Finnhub stock API.
// It covers the two endpoints the tracker needs: the current-quote lookup
// and the basic-financials (metrics) lookup.
package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production Finnhub API endpoint.
const DefaultBaseURL = "https://finnhub.io/api/v1"

// TokenSource supplies the API token at request time. Finnhub authenticates
// via a token query parameter, so the token is resolved per call rather than
// baked into the client; this lets the stored setting change without a
// restart.
type TokenSource interface {
	Token() (string, error)
}

// StaticToken is a TokenSource returning a fixed token, typically from the
// environment.
type StaticToken string

// Token returns the fixed token.
func (t StaticToken) Token() (string, error) {
	return string(t), nil
}

// Client provides methods for fetching quote data from the Finnhub API.
// It wraps an HTTP client with a request timeout and a token source.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a Finnhub client. An empty baseURL selects the
// production endpoint; tests point it at an httptest server. The timeout
// bounds every individual request so a hung call cannot stall a refresh
// sequence indefinitely.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Quote fetches a price snapshot for the given symbol.
//
// Two sequential calls are made: the quote lookup (current price, previous
// close) and the metrics lookup (52-week high/low). A failing quote lookup
// fails the whole operation; a failing metrics lookup degrades to a snapshot
// without 52-week fields, since stale highs/lows are preferable to dropping
// a fresh price.
func (c *Client) Quote(ctx context.Context, symbol string) (Snapshot, error) {
	var quote QuoteResponse
	if err := c.get(ctx, "/quote", symbol, nil, &quote); err != nil {
		return Snapshot{}, fmt.Errorf("quote lookup for %s: %w", symbol, err)
	}

	snapshot := Snapshot{
		CurrentPrice: quote.Current,
		PrevClose:    quote.PrevClose,
	}

	var metrics MetricResponse
	if err := c.get(ctx, "/stock/metric", symbol, url.Values{"metric": {"all"}}, &metrics); err != nil {
		log.Printf("metrics lookup for %s failed, keeping quote only: %v", symbol, err)
		return snapshot, nil
	}

	if high, ok := metrics.Metric[metricHigh52W]; ok {
		snapshot.High52W = &high
	}
	if low, ok := metrics.Metric[metricLow52W]; ok {
		snapshot.Low52W = &low
	}

	return snapshot, nil
}

// get executes a single authenticated GET against a Finnhub endpoint and
// decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path, symbol string, extra url.Values, out any) error {
	token, err := c.tokens.Token()
	if err != nil {
		return err
	}

	params := url.Values{
		"symbol": {symbol},
		"token":  {token},
	}
	for key, values := range extra {
		for _, v := range values {
			params.Add(key, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("finnhub returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode finnhub response: %w", err)
	}

	return nil
}
