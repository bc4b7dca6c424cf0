package pdfxlsx

import (
	"github.com/klippa-app/go-pdfium"
)

// pdfiumTableDetector implements TableDetector on a pdfium instance using
// the edge-based table finder in table.go.
type pdfiumTableDetector struct {
	instance pdfium.Pdfium
}

func (d *pdfiumTableDetector) DetectTables(doc Document, pages PageSet, mode DetectionMode, multi bool) TableOutcome {
	pd, err := asPdfiumDocument(doc)
	if err != nil {
		return TableOutcome{Status: OutcomeFailed, Err: err}
	}

	var tables []RawTable
	for _, pageNum := range pages {
		page, err := loadPage(d.instance, pd.ref, pageNum-1)
		if err != nil {
			return TableOutcome{Status: OutcomeFailed, Err: err}
		}

		words, err := pageWords(d.instance, page)
		if err != nil {
			page.close(d.instance)
			return TableOutcome{Status: OutcomeFailed, Err: err}
		}

		var rulings []edge
		if mode == DetectLattice {
			rulings = rulingEdges(d.instance, page)
		}

		detected := detectPageTables(words, rulings, mode)
		page.close(d.instance)

		if !multi && len(detected) > 1 {
			detected = []detectedTable{largestTable(detected)}
		}

		for i, t := range detected {
			tables = append(tables, RawTable{
				Page:  pageNum,
				Index: i + 1,
				Rows:  t.rows,
			})
		}
	}

	if len(tables) == 0 {
		return TableOutcome{Status: OutcomeEmpty}
	}
	return TableOutcome{Status: OutcomeSuccess, Tables: tables}
}

// largestTable picks the page's best single table: the one covering the
// most cells.
func largestTable(tables []detectedTable) detectedTable {
	best := tables[0]
	bestCells := cellCount(best)
	for _, t := range tables[1:] {
		if n := cellCount(t); n > bestCells {
			best, bestCells = t, n
		}
	}
	return best
}

func cellCount(t detectedTable) int {
	n := 0
	for _, row := range t.rows {
		n += len(row)
	}
	return n
}
