// Package extract pulls sold prices out of arbitrary listing markup.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	amountRe = regexp.MustCompile(`[\$£€]\s*([\d,]+(?:\.\d{2})?)`)
	rangeRe  = regexp.MustCompile(`(?i)([\$£€]\s*[\d,]+(?:\.\d{2})?)\s+to\s+([\$£€]\s*[\d,]+(?:\.\d{2})?)`)
)

// parseAmount parses a single currency-prefixed amount. Thousands separators
// are stripped; zero and negative values are rejected.
func parseAmount(s string) (decimal.Decimal, bool) {
	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return parseNumber(m[1])
}

// parseRange matches "<amount> to <amount>" and returns the lower bound.
// Sold-listing ranges are priced conservatively at the low end.
func parseRange(s string) (decimal.Decimal, bool) {
	m := rangeRe.FindStringSubmatch(s)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return parseAmount(m[1])
}

func parseNumber(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseMoney extracts one representative price from a text fragment: the
// lower bound when the fragment is a range, otherwise the first amount.
func ParseMoney(text string) (decimal.Decimal, bool) {
	if text == "" {
		return decimal.Decimal{}, false
	}
	if d, ok := parseRange(text); ok {
		return d, true
	}
	return parseAmount(text)
}

// Prices scans text line by line and returns every price found, in source
// order, with exact-duplicate values removed. A line matching the range
// pattern contributes only the range's lower bound. Malformed input yields
// an empty slice, never an error.
func Prices(text string) []decimal.Decimal {
	var out []decimal.Decimal
	seen := make(map[string]struct{})

	add := func(d decimal.Decimal) {
		key := d.StringFixed(2)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}

	for _, line := range strings.Split(text, "\n") {
		if d, ok := parseRange(line); ok {
			add(d)
			continue
		}
		for _, m := range amountRe.FindAllStringSubmatch(line, -1) {
			if d, ok := parseNumber(m[1]); ok {
				add(d)
			}
		}
	}
	return out
}
