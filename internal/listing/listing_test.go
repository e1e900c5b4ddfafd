package listing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabworks/comps-cli/internal/model"
)

func TestSlug(t *testing.T) {
	assert.Equal(t, "jude_bellingham", Slug("Jude Bellingham"))
	assert.Equal(t, "o_neill", Slug("O'Neill"))
	assert.Equal(t, "x", Slug("!!!"))
	assert.Equal(t, "x", Slug(""))
}

func TestMakeSKU(t *testing.T) {
	assert.Equal(t, "SOC_0001_jude_bellingham_23", MakeSKU(1, "Jude Bellingham", "23"))
	assert.Equal(t, "SOC_0042_pele_x", MakeSKU(42, "Pele", ""))
	assert.Equal(t, "SOC_0007_ronaldinho_7", MakeSKU(7, "Ronaldinho", "F-7"))
}

func sampleCard() model.Card {
	return model.Card{
		CardName:   "2023 Topps Finest Jude Bellingham",
		Player:     "Jude Bellingham",
		CardNumber: "23",
		Team:       "Real Madrid",
		League:     "La Liga",
		Season:     "2023-24",
		Condition:  "Near Mint",
		Brand:      "Topps",
		Set:        "Topps Finest",
		SetShort:   "Topps Finest",
		Year:       "2023",
		Parallel:   "Refractor",
		Serial:     "99",
		Auto:       true,
		Features:   "Refractor /99",
	}
}

func TestMakeTitle(t *testing.T) {
	got := MakeTitle(sampleCard())
	assert.Equal(t, "2023 Topps Finest 23 Jude Bellingham Refractor /99 AUTO", got)

	bare := MakeTitle(model.Card{Player: "Pele", Set: "Topps"})
	assert.Equal(t, "Topps Pele", bare)
}

func TestDescriptionHTML(t *testing.T) {
	html := DescriptionHTML(sampleCard())
	assert.Contains(t, html, "<h2>2023 Topps Finest 23 Jude Bellingham Refractor /99 AUTO</h2>")
	assert.Contains(t, html, "<li><b>Team:</b> Real Madrid</li>")
	assert.Contains(t, html, "<li><b>Serial Numbered:</b> /99</li>")
	assert.Contains(t, html, "<li><b>Autographed:</b> Yes</li>")

	plain := DescriptionHTML(model.Card{Player: "Pele", Set: "Topps"})
	assert.NotContains(t, plain, "Autographed")
	assert.NotContains(t, plain, "Serial")
}

const sampleTemplate = `Info,Version=1.0.0,Template=fx_category_template
CustomLabel,*Action(SiteID=US|Country=US|Currency=USD|Version=1193),*Action(SiteID=US),*Category,*Title,PicURL,*ConditionID,*StartPrice,*Description,Subtitle,AdditionalDetails,C:Player/Athlete,C:Team,C:Set,C:Autographed
#INFO,,,,,,,,,,,,,,
,,,,,,,,,,,,,,
`

func writeTemplate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTemplate), 0o644))
	return path
}

func TestReadTemplate(t *testing.T) {
	tpl, err := ReadTemplate(writeTemplate(t))
	require.NoError(t, err)
	assert.Len(t, tpl.HeaderLines, 4)
	assert.Len(t, tpl.Columns, 15)
	assert.Equal(t, "CustomLabel", tpl.Columns[0])
}

func TestReadTemplate_TooShort(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("one line"), 0o644))
	_, err := ReadTemplate(path)
	require.Error(t, err)
}

func TestBuildRow(t *testing.T) {
	tpl, err := ReadTemplate(writeTemplate(t))
	require.NoError(t, err)

	res := &model.CompResult{
		Tier:       model.TierExact,
		Confidence: model.ConfidenceHigh,
		CompCount:  7,
		Median:     decimal.NewNullDecimal(decimal.RequireFromString("43.00")),
		Suggested:  decimal.NewNullDecimal(decimal.RequireFromString("48.99")),
		QueryURL:   "https://www.ebay.com/sch/i.html?_nkw=x",
	}
	row := tpl.BuildRow(RowData{
		Action:      "Add",
		SKU:         "SOC_0001_jude_bellingham_23",
		Category:    47140,
		Title:       "2023 Topps Finest Jude Bellingham",
		PicURL:      "https://img.example/1.jpg",
		ConditionID: "4000",
		Card:        sampleCard(),
		Result:      res,
	})

	col := func(name string) string {
		for i, c := range tpl.Columns {
			if c == name {
				return row[i]
			}
		}
		t.Fatalf("column %q not found", name)
		return ""
	}

	assert.Equal(t, "SOC_0001_jude_bellingham_23", col("CustomLabel"))
	// First *Action column stays blank; the second carries the action.
	assert.Empty(t, row[1])
	assert.Equal(t, "Add", row[2])
	assert.Equal(t, "47140", col("*Category"))
	assert.Equal(t, "48.99", col("*StartPrice"))
	assert.Equal(t, "Jude Bellingham", col("C:Player/Athlete"))
	assert.Equal(t, "Yes", col("C:Autographed"))
	assert.Contains(t, col("*Description"), "<h2>")
	assert.Contains(t, col("Subtitle"), "comps:7")
	assert.Contains(t, col("Subtitle"), "tier:exact")
	assert.Contains(t, col("AdditionalDetails"), "_nkw=x")
}

func TestBuildRow_NoResultLeavesPriceBlank(t *testing.T) {
	tpl, err := ReadTemplate(writeTemplate(t))
	require.NoError(t, err)

	row := tpl.BuildRow(RowData{Action: "Add", SKU: "S", Category: 1, Card: model.Card{}})
	for i, c := range tpl.Columns {
		if c == "*StartPrice" || c == "Subtitle" {
			assert.Empty(t, row[i])
		}
	}
}

func TestClip_RuneBoundary(t *testing.T) {
	assert.Equal(t, "Pelé", clip("Pelé", 10))

	// A cut landing inside a multi-byte rune backs up to its start.
	s := strings.Repeat("a", 79) + "é"
	got := clip(s, 80)
	assert.Equal(t, strings.Repeat("a", 79), got)
	assert.True(t, utf8.ValidString(got))
}

func TestWriteBulkCSV(t *testing.T) {
	tpl, err := ReadTemplate(writeTemplate(t))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "bulk.csv")
	rows := [][]string{
		{"sku1", "", "Add"},                         // short row, padded
		make([]string, len(tpl.Columns)+3),          // long row, truncated
	}
	require.NoError(t, WriteBulkCSV(out, tpl, rows))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 6) // 4 header lines + 2 data rows

	assert.Equal(t, tpl.HeaderLines[0], lines[0])
	assert.Equal(t, len(tpl.Columns)-1, strings.Count(lines[4], ","))
	assert.Equal(t, len(tpl.Columns)-1, strings.Count(lines[5], ","))
}
