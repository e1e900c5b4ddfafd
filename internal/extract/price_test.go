package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain dollars", "$12.50", "12.50", true},
		{"no cents", "$45", "45", true},
		{"thousands separator", "$1,299.99", "1299.99", true},
		{"pound", "£30.00", "30.00", true},
		{"euro with space", "€ 15.25", "15.25", true},
		{"range takes lower bound", "$10.00 to $25.00", "10.00", true},
		{"range case insensitive", "$8.99 TO $12.99", "8.99", true},
		{"zero rejected", "$0.00", "", false},
		{"no currency token", "about 12 dollars", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMoney(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
			}
		})
	}
}

func TestPrices_OrderAndDedup(t *testing.T) {
	text := "Sold $19.99\nSold $5.00\nSold $19.99\nSold $12.50"
	got := Prices(text)
	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(dec("19.99")))
	assert.True(t, got[1].Equal(dec("5.00")))
	assert.True(t, got[2].Equal(dec("12.50")))
}

func TestPrices_DedupAcrossFormats(t *testing.T) {
	// $10 and $10.00 are the same value.
	got := Prices("$10\n$10.00")
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(dec("10")))
}

func TestPrices_RangeLineTakesLowerBoundOnly(t *testing.T) {
	got := Prices("$10.00 to $25.00")
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(dec("10.00")))
}

func TestPrices_MalformedInputYieldsEmpty(t *testing.T) {
	for _, in := range []string{"", "no prices here", "<div class=\"price\"></div>", "$", "$ ,", "price: free"} {
		assert.Empty(t, Prices(in), "input %q", in)
	}
}

func TestPrices_Idempotent(t *testing.T) {
	vals := []string{"19.99", "5.00", "1299.00"}
	var b strings.Builder
	for range 3 {
		for _, v := range vals {
			fmt.Fprintf(&b, "Sold for $%s\n", v)
		}
	}
	got := Prices(b.String())
	require.Len(t, got, len(vals))
	for i, v := range vals {
		assert.True(t, got[i].Equal(dec(v)))
	}
}

func TestPlainText_StripsMarkup(t *testing.T) {
	html := `<html><body><span class="s-item__price">$42.00</span><span class="s-item__price">$13.37</span></body></html>`
	text := PlainText(html)
	assert.NotContains(t, text, "<span")

	got := Prices(text)
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(dec("42.00")))
	assert.True(t, got[1].Equal(dec("13.37")))
}

func TestPlainText_PassesPlainInputThrough(t *testing.T) {
	assert.Equal(t, "sold $5.00", PlainText("sold $5.00"))
	assert.Equal(t, "", PlainText(""))
}
