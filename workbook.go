package pdfxlsx

import (
	"fmt"
	"strings"
)

// maxSheetNameLen is the xlsx sheet name limit.
const maxSheetNameLen = 31

// Sheet is one output worksheet and the grids assigned to it, in order.
type Sheet struct {
	Name  string
	Grids []Grid
}

// Width returns the widest row across the sheet's grids. Rows shorter
// than this are padded with empty cells at write time so every sheet is
// strictly rectangular.
func (s Sheet) Width() int {
	width := 0
	for _, g := range s.Grids {
		for _, row := range g.Rows {
			if len(row) > width {
				width = len(row)
			}
		}
	}
	return width
}

// RowCount returns the total number of rows across the sheet's grids.
func (s Sheet) RowCount() int {
	n := 0
	for _, g := range s.Grids {
		n += g.RowCount()
	}
	return n
}

// SheetPlan maps sheet names to the grids they will contain, preserving
// first-seen order of the sheet tags.
type SheetPlan struct {
	Sheets []Sheet
}

// RowCount returns the total number of rows across all sheets.
func (p *SheetPlan) RowCount() int {
	n := 0
	for _, s := range p.Sheets {
		n += s.RowCount()
	}
	return n
}

// BuildSheetPlan groups grids by their target sheet tag. Sheet names are
// sanitized for xlsx and made unique: when two tags collide after
// sanitization the later one gets a numeric suffix.
func BuildSheetPlan(grids []Grid) *SheetPlan {
	plan := &SheetPlan{}
	index := make(map[string]int) // tag -> position in plan.Sheets
	taken := make(map[string]bool)

	for _, grid := range grids {
		if i, ok := index[grid.Sheet]; ok {
			plan.Sheets[i].Grids = append(plan.Sheets[i].Grids, grid)
			continue
		}

		name := uniqueSheetName(sanitizeSheetName(grid.Sheet), taken)
		taken[name] = true
		index[grid.Sheet] = len(plan.Sheets)
		plan.Sheets = append(plan.Sheets, Sheet{Name: name, Grids: []Grid{grid}})
	}

	return plan
}

// sanitizeSheetName strips characters xlsx forbids in sheet names and
// enforces the 31 character limit.
func sanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Sheet"
	}
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}
	return name
}

// uniqueSheetName disambiguates a sanitized name against already taken
// names by appending a numeric suffix, keeping the result within the
// length limit.
func uniqueSheetName(name string, taken map[string]bool) string {
	if !taken[name] {
		return name
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf("_%d", i)
		base := name
		if len(base)+len(suffix) > maxSheetNameLen {
			base = base[:maxSheetNameLen-len(suffix)]
		}
		candidate := base + suffix
		if !taken[candidate] {
			return candidate
		}
	}
}
