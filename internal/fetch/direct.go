package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

// DirectFetcher fetches pages via plain net/http. Free, no proxy credits.
// It cannot render JavaScript or rotate proxies, so it refuses requests
// that require them and falls through to the proxy fetcher when blocked.
type DirectFetcher struct {
	client *http.Client
}

// NewDirectFetcher creates a DirectFetcher with sensible defaults.
func NewDirectFetcher() *DirectFetcher {
	return &DirectFetcher{
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

func (d *DirectFetcher) Name() string { return "direct_http" }

// Supports returns true for any URL; render/proxy requirements are checked
// per request in Fetch because they arrive with the options.
func (d *DirectFetcher) Supports(_ string) bool { return true }

// Fetch retrieves a URL directly, rejecting blocked or error responses so
// the chain can fall through.
func (d *DirectFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (string, error) {
	if opts.RenderJS || opts.PremiumProxy {
		return "", eris.New("direct_http: render/proxy options require the proxy fetcher")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "direct_http: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; CompsBot/1.0)")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "direct_http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2*1024*1024))
	if err != nil {
		return "", eris.Wrap(err, "direct_http: read body")
	}

	blocked, blockType := DetectBlock(resp, body)
	if blocked {
		return "", eris.Errorf("direct_http: blocked (%s)", blockType)
	}

	if resp.StatusCode >= 400 {
		return "", eris.Errorf("direct_http: status %d", resp.StatusCode)
	}

	if len(body) < 100 {
		return "", eris.New("direct_http: empty page")
	}

	return string(body), nil
}
