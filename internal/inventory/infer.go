// Package inventory loads card inventory sheets and infers the derived
// fields the pricing engine queries on.
package inventory

import (
	"regexp"
	"strings"

	"github.com/slabworks/comps-cli/internal/model"
	"github.com/slabworks/comps-cli/internal/query"
)

var (
	yearRe   = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	serialRe = regexp.MustCompile(`/\s*(\d{1,4})\b`)
	autoRe   = regexp.MustCompile(`(?i)\b(auto|autograph)\b`)
)

// InferYear finds a 19xx/20xx year token in text.
func InferYear(text string) string {
	if m := yearRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// InferSerial finds a print-run marker like "/25" in any of the texts and
// returns the denominator.
func InferSerial(texts ...string) string {
	for _, t := range texts {
		if t == "" {
			continue
		}
		if m := serialRe.FindStringSubmatch(t); m != nil {
			return m[1]
		}
	}
	return ""
}

// InferAuto reports whether any of the texts mention an autograph.
func InferAuto(texts ...string) bool {
	return autoRe.MatchString(strings.Join(texts, " "))
}

// InferSetShort produces the short set label the upload template's set
// column expects. Long catalog names collapse to their brand line.
func InferSetShort(cardSet string) string {
	if strings.Contains(cardSet, "Finest") {
		return "Topps Finest"
	}
	return query.CleanSpace(cardSet)
}

// Enrich fills a card's derived fields from its raw columns. Existing
// values win over inference.
func Enrich(c *model.Card) {
	if c.Year == "" {
		c.Year = InferYear(c.CardName)
	}
	if c.Parallel == "" {
		c.Parallel = query.CleanSpace(c.Features)
	}
	if c.Serial == "" {
		c.Serial = InferSerial(c.Features, c.CardName)
	}
	if !c.Auto {
		c.Auto = InferAuto(c.Features, c.CardName)
	}
	if c.SetShort == "" {
		c.SetShort = InferSetShort(c.Set)
	}
}
