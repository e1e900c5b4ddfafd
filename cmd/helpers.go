package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/slabworks/comps-cli/internal/comps"
	"github.com/slabworks/comps-cli/internal/config"
	"github.com/slabworks/comps-cli/internal/fetch"
	"github.com/slabworks/comps-cli/internal/store"
	"github.com/slabworks/comps-cli/pkg/scrapingbee"
)

// newFetchers returns the fetch chain members in priority order: free
// direct HTTP first, the ScrapingBee proxy as fallback for blocked or
// render-heavy pages.
func newFetchers(c *config.Config) []fetch.Fetcher {
	bee := scrapingbee.NewClient(c.ScrapingBee.Key,
		scrapingbee.WithBaseURL(c.ScrapingBee.BaseURL),
	)
	return []fetch.Fetcher{
		fetch.NewDirectFetcher(),
		fetch.NewBeeFetcher(bee),
	}
}

// newSearcher wires the fetch chain and comp searcher from config.
func newSearcher() *comps.Searcher {
	chain := fetch.NewChain(newFetchers(cfg)...)

	return comps.New(chain,
		comps.WithCategoryID(cfg.Ebay.CategoryID),
		comps.WithMinComps(cfg.Comps.MinComps),
		comps.WithTakeN(cfg.Comps.TakeN),
		comps.WithFetchOptions(fetch.Options{
			RenderJS:     cfg.ScrapingBee.RenderJS,
			PremiumProxy: cfg.ScrapingBee.PremiumProxy,
			WaitMs:       cfg.ScrapingBee.WaitMs,
		}),
	)
}

// initStore opens and migrates the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}
