// Package listing generates SKUs, titles, and descriptions for eBay bulk
// uploads and writes rows against the seller's upload template.
package listing

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/slabworks/comps-cli/internal/model"
	"github.com/slabworks/comps-cli/internal/query"
)

var (
	slugRe  = regexp.MustCompile(`[^a-z0-9]+`)
	digitRe = regexp.MustCompile(`[^0-9]+`)

	titleCaser = cases.Title(language.AmericanEnglish)
)

// Slug lowercases text and collapses non-alphanumerics to underscores.
func Slug(s string) string {
	out := slugRe.ReplaceAllString(strings.ToLower(s), "_")
	out = strings.Trim(out, "_")
	if out == "" {
		return "x"
	}
	return out
}

// MakeSKU builds a stable SKU from the inventory position, player, and
// card number.
func MakeSKU(idx int, player, cardNumber string) string {
	num := digitRe.ReplaceAllString(cardNumber, "")
	if num == "" {
		num = "x"
	}
	return fmt.Sprintf("SOC_%04d_%s_%s", idx, Slug(player), num)
}

// MakeTitle builds the listing title: year, set, number, player, parallel,
// optional serial marker, and an AUTO tag.
func MakeTitle(c model.Card) string {
	parts := []string{c.Year, c.Set, c.CardNumber, c.Player, c.Parallel}
	if c.Serial != "" {
		parts = append(parts, "/"+c.Serial)
	}
	if c.Auto {
		parts = append(parts, "AUTO")
	}
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return query.CleanSpace(strings.Join(kept, " "))
}

// DescriptionHTML renders a simple buyer-facing description block.
func DescriptionHTML(c model.Card) string {
	var b strings.Builder
	b.WriteString("<h2>" + MakeTitle(c) + "</h2>\n<ul>\n")

	row := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "<li><b>%s:</b> %s</li>\n", label, value)
		}
	}
	row("Player", titleCaser.String(c.Player))
	row("Team", c.Team)
	row("League", c.League)
	row("Season", c.Season)
	row("Set", c.Set)
	row("Card Number", c.CardNumber)
	row("Parallel/Variety", c.Parallel)
	if c.Serial != "" {
		row("Serial Numbered", "/"+c.Serial)
	}
	if c.Auto {
		row("Autographed", "Yes")
	}
	row("Condition", c.Condition)

	b.WriteString("</ul>\n<p>Shipped securely in a penny sleeve and top loader.</p>")
	return b.String()
}
