package inventory

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/slabworks/comps-cli/internal/model"
)

// LoadXLSX reads an inventory workbook sheet into cards. An empty sheet
// name selects the first sheet.
func LoadXLSX(path, sheetName string) ([]model.Card, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "inventory: open xlsx")
	}

	sheet, err := pickSheet(f, sheetName)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.New("inventory: xlsx sheet is empty")
	}

	idx := headerIndex(rowToStrings(sheet.Rows[0]))

	var cards []model.Card
	for _, row := range sheet.Rows[1:] {
		cards = append(cards, cardFromRow(idx, rowToStrings(row)))
	}
	return cards, nil
}

func pickSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("inventory: sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("inventory: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
