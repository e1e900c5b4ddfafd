// Package comps discovers comparable sold prices for a card by walking
// query tiers from strict to loose until enough evidence is found.
package comps

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/slabworks/comps-cli/internal/estimate"
	"github.com/slabworks/comps-cli/internal/extract"
	"github.com/slabworks/comps-cli/internal/fetch"
	"github.com/slabworks/comps-cli/internal/model"
	"github.com/slabworks/comps-cli/internal/pricing"
	"github.com/slabworks/comps-cli/internal/query"
)

// Defaults for the search policy.
const (
	DefaultMinComps   = 5
	DefaultCategoryID = 47140 // eBay soccer trading cards
)

// Searcher drives tiered comp discovery against a fetch capability.
// Tiers within one card are strictly sequential: a later tier is only
// attempted when the earlier one fails the early-stop condition.
type Searcher struct {
	fetcher    fetch.Fetcher
	categoryID int
	minComps   int
	takeN      int
	fetchOpts  fetch.Options
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithCategoryID sets the marketplace category searched.
func WithCategoryID(id int) Option {
	return func(s *Searcher) { s.categoryID = id }
}

// WithMinComps sets the sample count at which a tier is accepted outright.
func WithMinComps(n int) Option {
	return func(s *Searcher) { s.minComps = n }
}

// WithTakeN caps how many samples feed the estimator per tier.
func WithTakeN(n int) Option {
	return func(s *Searcher) { s.takeN = n }
}

// WithFetchOptions sets the proxy options used for every tier fetch.
func WithFetchOptions(opts fetch.Options) Option {
	return func(s *Searcher) { s.fetchOpts = opts }
}

// New creates a Searcher over the given fetch capability.
func New(fetcher fetch.Fetcher, opts ...Option) *Searcher {
	s := &Searcher{
		fetcher:    fetcher,
		categoryID: DefaultCategoryID,
		minComps:   DefaultMinComps,
		takeN:      estimate.DefaultTakeN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// outcome is one tier's attempt, immutable once built.
type outcome struct {
	tier   model.TierLabel
	query  string
	url    string
	count  int
	median decimal.NullDecimal
}

// reduce folds one tier attempt into the best-so-far accumulator and
// reports whether the search should stop. Acceptance: enough samples and
// a computable median. Replacement: strictly more samples than the best
// so far, with a median.
func reduce(best *outcome, cur outcome, minComps int) (outcome, bool) {
	if cur.count >= minComps && cur.median.Valid {
		return cur, true
	}
	if best == nil {
		return cur, false
	}
	if cur.count > best.count && cur.median.Valid {
		return cur, false
	}
	return *best, false
}

// Discover walks the card's query tiers and returns one CompResult. It
// always returns a result unless the fetch capability is unconfigured,
// which aborts the whole run.
func (s *Searcher) Discover(ctx context.Context, card model.Card) (*model.CompResult, error) {
	var best, last *outcome

	for _, tier := range query.Tiers(card) {
		cur, err := s.attempt(ctx, tier)
		if err != nil {
			return nil, err
		}
		last = &cur

		next, stop := reduce(best, cur, s.minComps)
		best = &next
		if stop {
			break
		}
	}

	if best == nil || !best.median.Valid {
		// No tier produced an estimate; report the loosest tier attempted.
		// When the card was too empty to build any tier at all, fall back
		// to a bare loose-tier result.
		if last != nil {
			best = last
		} else {
			best = &outcome{tier: model.TierLoose}
		}
	}

	result := &model.CompResult{
		Tier:       best.tier,
		Confidence: Label(best.tier, best.count),
		CompCount:  best.count,
		Median:     best.median,
		Query:      best.query,
		QueryURL:   best.url,
	}
	if best.median.Valid {
		result.Suggested = decimal.NewNullDecimal(pricing.Suggest(best.median.Decimal, card))
	}

	zap.L().Info("comps: discovery complete",
		zap.String("player", card.Player),
		zap.String("tier", string(result.Tier)),
		zap.String("confidence", string(result.Confidence)),
		zap.Int("comp_count", result.CompCount),
	)

	return result, nil
}

// attempt fetches and scores a single tier. Fetch failures other than
// configuration errors count as zero samples: a blocked or missing page
// is indistinguishable from a page with no matching sold listings.
func (s *Searcher) attempt(ctx context.Context, tier query.Tier) (outcome, error) {
	searchURL := query.SoldSearchURL(tier.Query, s.categoryID)
	cur := outcome{tier: tier.Label, query: tier.Query, url: searchURL}

	raw, err := s.fetcher.Fetch(ctx, searchURL, s.fetchOpts)
	if err != nil {
		if errors.Is(err, fetch.ErrNotConfigured) {
			return outcome{}, err
		}
		zap.L().Debug("comps: tier fetch failed, counting zero samples",
			zap.String("tier", string(tier.Label)),
			zap.Error(err),
		)
		return cur, nil
	}

	prices := extract.Prices(extract.PlainText(raw))
	est := estimate.Robust(prices, s.takeN)

	// Count is the full deduped sample count; the estimator cap only
	// limits which samples feed the median.
	cur.count = len(prices)
	cur.median = est.Median

	zap.L().Debug("comps: tier attempted",
		zap.String("tier", string(tier.Label)),
		zap.String("query", tier.Query),
		zap.Int("samples", cur.count),
	)

	return cur, nil
}
