package sectors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"sectorchat/internal/domain/models"
	"sectorchat/internal/logger"
)

// API is the set of Sectors endpoints the rest of the system consumes.
// Implemented by Client; stubbed in tests.
type API interface {
	CompanyOverview(ctx context.Context, stock string) (json.RawMessage, error)
	DailyTransactions(ctx context.Context, stock string, window models.DateWindow) (json.RawMessage, error)
	ListingPerformance(ctx context.Context, stock string) (json.RawMessage, error)
	MostTraded(ctx context.Context, window models.DateWindow, nStock int) (models.DailyTransactions, error)
	CompanySegments(ctx context.Context, ticker string) (json.RawMessage, error)
}

// Client issues authenticated GETs against the Sectors financial-data API.
//
// It is a pure pass-through: no retries, no caching, no rate limiting. Errors
// are typed (*TransportError for network failures, *UpstreamError for non-2xx
// responses) so callers can decide what to do with them.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for the given provider base URL and credential.
// The timeout bounds every request; pass zero to fall back to 15s.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: timeout},
		log:     logger.With("sectors"),
	}
}

// Fetch performs one authenticated GET against path (relative to the base
// URL) with the given query parameters and returns the raw JSON document.
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", u, err)
	}
	// The provider expects the raw key in the Authorization header.
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error().Str("url", u).Err(err).Msg("request failed")
		return nil, &TransportError{URL: u, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: u, Err: err}
	}

	c.log.Debug().
		Str("url", u).
		Int("status", resp.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("upstream_request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Status: resp.StatusCode, URL: u, Body: string(body)}
	}
	return body, nil
}

// CompanyOverview returns the overview section of a company report.
func (c *Client) CompanyOverview(ctx context.Context, stock string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("sections", "overview")
	return c.Fetch(ctx, "/v1/company/report/"+url.PathEscape(stock)+"/", q)
}

// DailyTransactions returns per-day transaction data (volume, close price)
// for a stock over an inclusive date range.
func (c *Client) DailyTransactions(ctx context.Context, stock string, window models.DateWindow) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("start", window.StartString())
	q.Set("end", window.EndString())
	return c.Fetch(ctx, "/v1/daily/"+url.PathEscape(stock)+"/", q)
}

// ListingPerformance returns price changes since IPO listing (chg_7d,
// chg_30d, chg_90d, chg_365d).
func (c *Client) ListingPerformance(ctx context.Context, stock string) (json.RawMessage, error) {
	return c.Fetch(ctx, "/v1/listing-performance/"+url.PathEscape(stock)+"/", nil)
}

// MostTraded returns the most-traded companies per day over a date range,
// decoded into the date-keyed record map the aggregator consumes.
func (c *Client) MostTraded(ctx context.Context, window models.DateWindow, nStock int) (models.DailyTransactions, error) {
	q := url.Values{}
	q.Set("start", window.StartString())
	q.Set("end", window.EndString())
	q.Set("n_stock", strconv.Itoa(nStock))

	raw, err := c.Fetch(ctx, "/v1/most-traded/", q)
	if err != nil {
		return nil, err
	}

	var out models.DailyTransactions
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode most-traded payload: %w", err)
	}
	return out, nil
}

// CompanySegments returns the revenue and cost segments of a company.
func (c *Client) CompanySegments(ctx context.Context, ticker string) (json.RawMessage, error) {
	return c.Fetch(ctx, "/v1/company/get-segments/"+url.PathEscape(ticker)+"/", nil)
}

var _ API = (*Client)(nil)

// Ping checks provider reachability for readiness probes. Any HTTP response
// counts as reachable; only transport-level failures report an error.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &TransportError{URL: c.baseURL, Err: err}
	}
	_ = resp.Body.Close()
	return nil
}
