// Package clients contains HTTP clients for external APIs.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/salesfx/internal/domain"
)

const defaultTimeout = 10 * time.Second

// ErrRateUnavailable reports that the API has no rate for the requested date.
var ErrRateUnavailable = errors.New("conversion rate unavailable")

// ExchangeRateClient fetches historical conversion rates from an
// exchangerate.host compatible REST API.
type ExchangeRateClient struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewExchangeRateClient creates a client for the given API base URL. The API
// key is optional and sent as the access_key query parameter when set.
func NewExchangeRateClient(apiURL, apiKey string, timeout time.Duration) *ExchangeRateClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ExchangeRateClient{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ratesResponse represents the historical rates payload of the API.
type ratesResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// HistoricalRate fetches the base->quote conversion rate for the given date.
// A missing quote symbol in the response yields ErrRateUnavailable.
func (c *ExchangeRateClient) HistoricalRate(ctx context.Context, date time.Time, pair domain.Pair) (decimal.Decimal, error) {
	day := date.Format("2006-01-02")

	endpoint := fmt.Sprintf("%s/%s?base=%s&symbols=%s", c.apiURL, day, url.QueryEscape(pair.From), url.QueryEscape(pair.To))
	if c.apiKey != "" {
		endpoint += "&access_key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "failed to create HTTP request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		return decimal.Decimal{}, fmt.Errorf("rate API returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload ratesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "failed to unmarshal response")
	}

	rate, ok := payload.Rates[pair.To]
	if !ok {
		return decimal.Decimal{}, errors.Wrapf(ErrRateUnavailable, "no %s rate for %s", pair.To, day)
	}

	return rate, nil
}
