// Package estimate reduces noisy comp price lists to a robust point estimate.
package estimate

import (
	"slices"

	"github.com/shopspring/decimal"
)

// DefaultTakeN caps how many samples feed the estimator. Callers order
// samples by source relevance before calling, so the cap keeps the freshest
// evidence.
const DefaultTakeN = 20

// trimThreshold is the sample count at which symmetric trimming engages.
// Below it a plain median is taken. The remainder after trimming must keep
// at least minCore elements or trimming is skipped entirely.
const (
	trimThreshold = 6
	minCore       = 3
)

// Estimate is the outcome of robust estimation: a median (null when no
// samples were available) and the count of samples considered after the cap.
type Estimate struct {
	Median decimal.NullDecimal `json:"median"`
	Count  int                 `json:"count"`
}

// Robust computes an outlier-resistant central estimate of prices.
// The input is truncated to its first takeN elements (takeN <= 0 means
// DefaultTakeN). With trimThreshold or more samples, 10% per side is
// trimmed (at least one element each side) before taking the median;
// smaller lists get a plain median.
func Robust(prices []decimal.Decimal, takeN int) Estimate {
	if takeN <= 0 {
		takeN = DefaultTakeN
	}
	if len(prices) > takeN {
		prices = prices[:takeN]
	}
	if len(prices) == 0 {
		return Estimate{}
	}

	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	slices.SortFunc(sorted, func(a, b decimal.Decimal) int { return a.Cmp(b) })

	core := sorted
	if n := len(sorted); n >= trimThreshold {
		k := max(1, n/10)
		if n-2*k >= minCore {
			core = sorted[k : n-k]
		}
	}

	return Estimate{
		Median: decimal.NewNullDecimal(median(core)),
		Count:  len(prices),
	}
}

// median of a sorted, non-empty slice. Even counts average the two middles.
func median(sorted []decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return decimal.Avg(sorted[mid-1], sorted[mid])
}
