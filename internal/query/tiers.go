// Package query builds tiered eBay sold-listing search queries for a card.
package query

import (
	"regexp"
	"strings"

	"github.com/slabworks/comps-cli/internal/model"
)

// Tier pairs a specificity label with its search query string.
type Tier struct {
	Label model.TierLabel
	Query string
}

var spaceRe = regexp.MustCompile(`\s+`)

// CleanSpace collapses runs of whitespace to single spaces and trims.
func CleanSpace(s string) string {
	return spaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// join builds a query from parts, skipping empties.
func join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return CleanSpace(strings.Join(kept, " "))
}

// Tiers derives the ordered query tiers for a card, strict to loose.
// Empty queries are dropped and duplicate query strings collapse to the
// first tier that produced them, preserving order.
func Tiers(c model.Card) []Tier {
	year := c.Year
	set := c.Set
	player := c.Player
	parallel := c.Parallel
	serial := ""
	if c.Serial != "" {
		serial = "/" + c.Serial
	}
	auto := ""
	if c.Auto {
		auto = "auto"
	}
	grading := ""
	if c.GradeCompany != "" && c.Grade != "" {
		grading = c.GradeCompany + " " + c.Grade
	}

	tiers := []Tier{
		{model.TierExact, join(year, set, player, parallel, serial, auto, grading)},
		{model.TierNoGrade, join(year, set, player, parallel, serial, auto)},
		{model.TierNoSerial, join(year, set, player, parallel, auto)},
		{model.TierPlayerSet, join(year, set, player, auto)},
		{model.TierLoose, join(set, player)},
	}

	seen := make(map[string]struct{}, len(tiers))
	uniq := make([]Tier, 0, len(tiers))
	for _, t := range tiers {
		if t.Query == "" {
			continue
		}
		if _, dup := seen[t.Query]; dup {
			continue
		}
		seen[t.Query] = struct{}{}
		uniq = append(uniq, t)
	}
	return uniq
}
