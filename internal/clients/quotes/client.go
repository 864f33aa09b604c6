// Package quotes is an HTTP client for the external quote service.
package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/rpatwa/nivesh/internal/domain"
	"github.com/rpatwa/nivesh/internal/modules/universe"
)

const defaultMaxRetries = 3

// Client fetches quotes from the quote service. It implements
// domain.PriceProvider.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient creates a new quote service client
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.With().Str("client", "quotes").Logger(),
	}
}

type quoteResponse struct {
	Symbol       string   `json:"symbol"`
	Price        float64  `json:"price"`
	DayChangePct *float64 `json:"day_change_pct"`
}

// GetQuote fetches the current price for a symbol, retrying transient
// failures with exponential backoff. The symbol is normalized before the
// request so exchange-suffixed variants hit the same quote.
func (c *Client) GetQuote(symbol string) (*domain.Quote, error) {
	normalized := universe.Normalize(symbol)

	var lastErr error
	for attempt := 0; attempt < defaultMaxRetries; attempt++ {
		quote, err := c.fetchQuote(normalized)
		if err == nil {
			return quote, nil
		}
		lastErr = err
		if attempt < defaultMaxRetries-1 {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			c.log.Warn().Err(err).
				Str("symbol", symbol).
				Int("attempt", attempt+1).
				Dur("wait", wait).
				Msg("Failed to fetch quote, retrying")
			time.Sleep(wait)
		}
	}

	return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, lastErr)
}

func (c *Client) fetchQuote(symbol string) (*domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s", c.baseURL, url.QueryEscape(symbol))

	resp, err := c.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("quote service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}
	if parsed.Price <= 0 {
		return nil, fmt.Errorf("quote service returned no price for %s", symbol)
	}

	return &domain.Quote{
		Symbol:       symbol,
		Price:        parsed.Price,
		DayChangePct: parsed.DayChangePct,
	}, nil
}
