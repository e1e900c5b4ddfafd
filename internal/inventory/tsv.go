package inventory

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/slabworks/comps-cli/internal/model"
	"github.com/slabworks/comps-cli/internal/query"
)

// Inventory sheet column names. Header cells are trimmed before matching
// because exported sheets routinely carry stray whitespace ("Team ").
const (
	colCardName   = "Card Name"
	colPlayer     = "Player Name"
	colSport      = "Sport"
	colCardNumber = "Card Number"
	colFeatures   = "Features"
	colImageURL   = "IMAGE URL"
	colLeague     = "League"
	colTeam       = "Team"
	colSeason     = "Season"
	colCondition  = "Condition"
	colBrand      = "Brand"
	colCardSet    = "Card Set"
)

// LoadTSV reads a tab-separated inventory sheet into cards, applying field
// inference to each record.
func LoadTSV(path string) ([]model.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "inventory: open tsv")
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1 // sheets often have ragged rows

	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrap(err, "inventory: read tsv header")
	}
	idx := headerIndex(header)

	var cards []model.Card
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "inventory: read tsv row")
		}
		cards = append(cards, cardFromRow(idx, row))
	}
	return cards, nil
}

// headerIndex maps trimmed column names to positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

// cardFromRow builds an enriched card from one sheet row.
func cardFromRow(idx map[string]int, row []string) model.Card {
	cell := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return query.CleanSpace(row[i])
	}

	c := model.Card{
		CardName:   cell(colCardName),
		Player:     cell(colPlayer),
		Sport:      cell(colSport),
		CardNumber: cell(colCardNumber),
		Features:   cell(colFeatures),
		ImageURL:   cell(colImageURL),
		League:     cell(colLeague),
		Team:       cell(colTeam),
		Season:     cell(colSeason),
		Condition:  cell(colCondition),
		Brand:      cell(colBrand),
		Set:        cell(colCardSet),
	}
	Enrich(&c)
	return c
}
