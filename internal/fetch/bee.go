package fetch

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"

	"github.com/slabworks/comps-cli/pkg/scrapingbee"
)

// BeeFetcher wraps a ScrapingBee client as a Fetcher.
type BeeFetcher struct {
	client scrapingbee.Client
}

// NewBeeFetcher creates a BeeFetcher from a ScrapingBee client.
func NewBeeFetcher(client scrapingbee.Client) *BeeFetcher {
	return &BeeFetcher{client: client}
}

func (b *BeeFetcher) Name() string { return "scrapingbee" }

// Supports returns true; the proxy can attempt any URL.
func (b *BeeFetcher) Supports(_ string) bool { return true }

// Fetch retrieves a URL through the ScrapingBee proxy. A missing API key
// surfaces as ErrNotConfigured so the orchestrator aborts the run.
func (b *BeeFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (string, error) {
	body, err := b.client.Fetch(ctx, targetURL, scrapingbee.Params{
		RenderJS:     opts.RenderJS,
		PremiumProxy: opts.PremiumProxy,
		WaitMs:       opts.WaitMs,
	})
	if err != nil {
		if errors.Is(err, scrapingbee.ErrMissingKey) {
			return "", eris.Wrap(ErrNotConfigured, "scrapingbee: missing API key")
		}
		return "", err
	}
	return body, nil
}
