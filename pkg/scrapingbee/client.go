// Package scrapingbee provides a client for the ScrapingBee proxy-fetch API.
package scrapingbee

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// DefaultEndpoint is the ScrapingBee API entry point.
const DefaultEndpoint = "https://app.scrapingbee.com/api/v1/"

// ErrMissingKey indicates the client was built without an API key. Every
// request would fail the same way, so callers treat this as fatal
// configuration rather than a transient fetch failure.
var ErrMissingKey = eris.New("scrapingbee: missing API key")

// Params controls per-request proxy behavior.
type Params struct {
	RenderJS     bool // execute JavaScript before returning the page
	PremiumProxy bool // route through residential proxies
	WaitMs       int  // fixed wait after load, in milliseconds
}

// Client fetches pages through the ScrapingBee proxy.
type Client interface {
	// Fetch retrieves targetURL through the proxy and returns the raw body.
	Fetch(ctx context.Context, targetURL string, params Params) (string, error)
}

// Option configures the ScrapingBee client.
type Option func(*httpClient)

// WithBaseURL sets a custom API endpoint (for testing).
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a ScrapingBee client. The key is validated at request
// time so that a keyless client can still be constructed in offline paths.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: DefaultEndpoint,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryableStatusCode returns true if the HTTP status should trigger a retry.
func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

// retryDo executes a request with exponential backoff on transport errors
// and transient statuses (429, 500, 502, 503).
func (c *httpClient) retryDo(ctx context.Context, req *http.Request) ([]byte, int, error) {
	const maxAttempts = 3
	backoff := 1 * time.Second

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.http.Do(req.Clone(ctx))
		if err != nil {
			lastErr = err
			if attempt < maxAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "scrapingbee: read response body")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxAttempts {
			lastErr = eris.Errorf("scrapingbee: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *httpClient) Fetch(ctx context.Context, targetURL string, params Params) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingKey
	}

	qs := url.Values{}
	qs.Set("api_key", c.apiKey)
	qs.Set("url", targetURL)
	if params.RenderJS {
		qs.Set("render_js", "true")
	}
	if params.PremiumProxy {
		qs.Set("premium_proxy", "true")
	}
	if params.WaitMs > 0 {
		qs.Set("wait", strconv.Itoa(params.WaitMs))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+qs.Encode(), nil)
	if err != nil {
		return "", eris.Wrap(err, "scrapingbee: create request")
	}

	body, statusCode, err := c.retryDo(ctx, req)
	if err != nil {
		return "", eris.Wrap(err, "scrapingbee: request failed")
	}
	if statusCode != http.StatusOK {
		return "", eris.Errorf("scrapingbee: unexpected status %d: %s", statusCode, truncate(string(body), 200))
	}

	return string(body), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
