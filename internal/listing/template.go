package listing

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"

	"github.com/slabworks/comps-cli/internal/model"
)

// headerBlockLines is how many leading lines of the seller's upload
// template are preserved verbatim: an info line, the column header row,
// an explanatory row, and a blank row.
const headerBlockLines = 4

// Template holds the preserved header block and parsed columns of an eBay
// bulk-upload template.
type Template struct {
	HeaderLines []string
	Columns     []string
}

// ReadTemplate loads the template's header block and column row. The
// column row is always line 2.
func ReadTemplate(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "listing: read template")
	}
	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) < headerBlockLines {
		return nil, eris.Errorf("listing: template has %d lines, expected at least %d", len(lines), headerBlockLines)
	}

	cols, err := csv.NewReader(strings.NewReader(lines[1])).Read()
	if err != nil {
		return nil, eris.Wrap(err, "listing: parse template column row")
	}

	return &Template{
		HeaderLines: lines[:headerBlockLines],
		Columns:     cols,
	}, nil
}

// RowData carries everything needed to fill one upload row.
type RowData struct {
	Action      string
	SKU         string
	Category    int
	Title       string
	PicURL      string
	ConditionID string
	Card        model.Card
	Result      *model.CompResult
}

// BuildRow maps RowData onto the template's columns. Unknown columns stay
// blank; price, diagnostics, and query URL land in whichever of the known
// candidate columns the template carries.
func (t *Template) BuildRow(d RowData) []string {
	colIndex := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		colIndex[c] = i
	}
	row := make([]string, len(t.Columns))

	put := func(col, val string) {
		if i, ok := colIndex[col]; ok {
			row[i] = val
		}
	}

	put("CustomLabel", d.SKU)

	// The template carries duplicate *Action columns; sample rows populate
	// the second one, so follow the file's behavior.
	var actionCols []int
	for i, c := range t.Columns {
		if strings.HasPrefix(c, "*Action(") {
			actionCols = append(actionCols, i)
		}
	}
	switch {
	case len(actionCols) >= 2:
		row[actionCols[1]] = d.Action
	case len(actionCols) == 1:
		row[actionCols[0]] = d.Action
	}

	put("*Category", fmt.Sprintf("%d", d.Category))
	put("*Title", d.Title)
	put("PicURL", d.PicURL)
	put("*ConditionID", d.ConditionID)

	for _, descCol := range []string{"*Description", "Description"} {
		if i, ok := colIndex[descCol]; ok {
			row[i] = DescriptionHTML(d.Card)
			break
		}
	}

	c := d.Card
	put("C:Player/Athlete", c.Player)
	put("C:Team", c.Team)
	put("C:League", c.League)
	put("C:Parallel/Variety", c.Parallel)
	put("C:Card Number", c.CardNumber)
	put("C:Features", c.Features)
	put("C:Year Manufactured", c.Year)
	put("C:Season", c.Season)
	put("C:Manufacturer", c.Brand)
	put("C:Set", c.SetShort)
	put("C:Card Name", c.CardName)
	if c.Auto {
		put("C:Autographed", "Yes")
	} else {
		put("C:Autographed", "No")
	}

	if d.Result != nil {
		if d.Result.Suggested.Valid {
			for _, priceCol := range []string{"*StartPrice", "StartPrice", "Price", "*Price"} {
				if i, ok := colIndex[priceCol]; ok {
					row[i] = d.Result.Suggested.Decimal.StringFixed(2)
					break
				}
			}
		}
		put("Subtitle", diagSubtitle(d.Result))
		if i, ok := colIndex["AdditionalDetails"]; ok {
			row[i] = clip(d.Result.QueryURL, 500)
		}
	}

	return row
}

// diagSubtitle packs the comp diagnostics into the 80-char Subtitle field.
func diagSubtitle(r *model.CompResult) string {
	med := "na"
	if r.Median.Valid {
		med = r.Median.Decimal.Round(2).String()
	}
	return clip(fmt.Sprintf("comps:%d med:%s tier:%s conf:%s", r.CompCount, med, r.Tier, r.Confidence), 80)
}

// clip truncates s to at most n bytes, backing up to a rune boundary so
// the cut never splits a multi-byte character.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// WriteBulkCSV writes the preserved header block followed by the data
// rows, each padded or truncated to the template's column count.
func WriteBulkCSV(path string, tpl *Template, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "listing: create output file")
	}
	defer func() { _ = f.Close() }()

	for _, line := range tpl.HeaderLines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return eris.Wrap(err, "listing: write header line")
		}
	}

	w := csv.NewWriter(f)
	for _, row := range rows {
		switch {
		case len(row) < len(tpl.Columns):
			padded := make([]string, len(tpl.Columns))
			copy(padded, row)
			row = padded
		case len(row) > len(tpl.Columns):
			row = row[:len(tpl.Columns)]
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "listing: write row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "listing: flush output")
}
