package fetch

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Chain tries fetchers in priority order, returning the first success.
// A configuration error from any fetcher aborts immediately instead of
// falling through: the next attempt would fail the same way.
type Chain struct {
	fetchers []Fetcher
}

// NewChain creates a Chain. Fetchers are tried in order.
func NewChain(fetchers ...Fetcher) *Chain {
	return &Chain{fetchers: fetchers}
}

func (c *Chain) Name() string { return "chain" }

// Supports returns true when any member supports the URL.
func (c *Chain) Supports(targetURL string) bool {
	for _, f := range c.fetchers {
		if f.Supports(targetURL) {
			return true
		}
	}
	return false
}

// Fetch tries each fetcher in order for a single URL.
func (c *Chain) Fetch(ctx context.Context, targetURL string, opts Options) (string, error) {
	var lastErr error
	for _, f := range c.fetchers {
		if !f.Supports(targetURL) {
			continue
		}
		body, err := f.Fetch(ctx, targetURL, opts)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrNotConfigured) {
			return "", err
		}
		zap.L().Debug("fetch: fetcher failed, trying next",
			zap.String("fetcher", f.Name()),
			zap.String("url", targetURL),
			zap.Error(err),
		)
		lastErr = err
	}
	if lastErr != nil {
		return "", eris.Wrap(lastErr, "fetch: all fetchers failed")
	}
	return "", eris.Errorf("fetch: no suitable fetcher for url: %s", targetURL)
}
