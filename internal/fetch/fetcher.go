// Package fetch provides chained page fetching for sold-listing searches.
package fetch

import (
	"context"

	"github.com/rotisserie/eris"
)

// ErrNotConfigured marks a fetch capability missing its credentials. Unlike
// an ordinary fetch failure it is fatal to the whole run: every subsequent
// request would fail identically.
var ErrNotConfigured = eris.New("fetch: capability not configured")

// Options controls how a page is fetched.
type Options struct {
	RenderJS     bool
	PremiumProxy bool
	WaitMs       int
}

// Fetcher retrieves the raw text of a single URL.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string, opts Options) (string, error)
	Name() string
	Supports(targetURL string) bool
}
