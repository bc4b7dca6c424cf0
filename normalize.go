package pdfxlsx

import "strings"

// Sheet names used when grids are combined rather than split per table.
const (
	combinedSheetName = "Data"
	textSheetName     = "Text"
)

// normalizeTables converts raw tables into rectangular grids. Ragged rows
// are padded with empty cells to the widest row of their own table; widths
// are never unified across tables. Tables that normalize to zero rows or
// zero columns are dropped.
//
// When combine is true every grid is tagged with one shared sheet name;
// otherwise each grid targets its own sheet derived from its origin.
func normalizeTables(tables []RawTable, combine bool) []Grid {
	grids := make([]Grid, 0, len(tables))
	for _, table := range tables {
		width := 0
		for _, row := range table.Rows {
			if len(row) > width {
				width = len(row)
			}
		}
		if len(table.Rows) == 0 || width == 0 {
			continue
		}

		rows := make([][]string, len(table.Rows))
		for i, row := range table.Rows {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}

		label := tableLabel(table.Page, table.Index)
		sheet := label
		if combine {
			sheet = combinedSheetName
		}
		grids = append(grids, Grid{Rows: rows, Label: label, Sheet: sheet})
	}
	return grids
}

// normalizeText converts text blocks into a single grid targeting the
// text sheet. With a separator each block splits into one row of columns;
// blocks with fewer separator occurrences yield shorter rows, which are
// padded to the sheet's width at write time. Without a separator each
// block becomes a single-column row.
func normalizeText(blocks []RawTextBlock, separator string) []Grid {
	if len(blocks) == 0 {
		return nil
	}

	sep := strings.ReplaceAll(separator, `\t`, "\t")

	rows := make([][]string, 0, len(blocks))
	for _, block := range blocks {
		if sep != "" {
			rows = append(rows, strings.Split(block.Text, sep))
		} else {
			rows = append(rows, []string{block.Text})
		}
	}

	return []Grid{{Rows: rows, Label: textSheetName, Sheet: textSheetName}}
}

// nonEmptyGrids filters out grids with no rows, keeping the engine's
// guarantee that zero-size grids never reach the assembler.
func nonEmptyGrids(grids []Grid) []Grid {
	kept := grids[:0:0]
	for _, g := range grids {
		if len(g.Rows) > 0 {
			kept = append(kept, g)
		}
	}
	return kept
}
