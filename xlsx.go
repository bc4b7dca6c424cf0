package pdfxlsx

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Column width heuristics carried over from landscape-style reports:
// widths track the longest cell content, padded slightly and capped.
const (
	maxColumnWidth   = 55
	maxTextCellWidth = 50
	columnPadding    = 3
	dateColumnWidth  = 12
)

// excelizeWriter writes a SheetPlan as an xlsx workbook via excelize.
// The workbook is assembled fully in memory and saved once.
type excelizeWriter struct {
	// inferTypes converts numeric- and date-looking cells into typed
	// values with matching number formats.
	inferTypes bool
}

// cellStyles holds the style IDs registered for one workbook.
type cellStyles struct {
	header  int
	integer int
	decimal int
	date    int
}

func newCellStyles(f *excelize.File) (*cellStyles, error) {
	s := &cellStyles{}
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	intFmt := "#,##0"
	s.integer, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &intFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, err
	}

	decFmt := "#,##0.00"
	s.decimal, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &decFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, err
	}

	dateFmt := "DD/MM/YYYY"
	s.date, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &dateFmt,
		Alignment:    &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Write persists the plan to path. Every row is padded to its sheet's
// maximum width so sheets come out strictly rectangular.
func (w *excelizeWriter) Write(path string, plan *SheetPlan) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newCellStyles(f)
	if err != nil {
		return errors.Wrapf(ErrWriteFailed, "registering styles: %v", err)
	}

	for i, sheet := range plan.Sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return errors.Wrapf(ErrWriteFailed, "naming sheet %q: %v", sheet.Name, err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return errors.Wrapf(ErrWriteFailed, "creating sheet %q: %v", sheet.Name, err)
			}
		}
		if err := w.writeSheet(f, styles, sheet); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(ErrWriteFailed, "saving %s: %v", path, err)
	}
	return nil
}

func (w *excelizeWriter) writeSheet(f *excelize.File, styles *cellStyles, sheet Sheet) error {
	width := sheet.Width()
	colWidths := make([]float64, width)

	rowIdx := 0
	for _, grid := range sheet.Grids {
		for _, row := range grid.Rows {
			rowIdx++
			for col := 0; col < width; col++ {
				value := ""
				if col < len(row) {
					value = row[col]
				}
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
				if err != nil {
					return errors.Wrapf(ErrWriteFailed, "cell address: %v", err)
				}
				if err := w.writeCell(f, styles, sheet.Name, cell, value, rowIdx, col, colWidths); err != nil {
					return err
				}
			}
		}
	}

	// Header row styling, applied over any cell-level formats.
	if rowIdx > 0 && width > 0 {
		last, _ := excelize.CoordinatesToCellName(width, 1)
		if err := f.SetCellStyle(sheet.Name, "A1", last, styles.header); err != nil {
			return errors.Wrapf(ErrWriteFailed, "styling header: %v", err)
		}
	}

	for col, cw := range colWidths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			continue
		}
		clamped := min(cw+columnPadding, maxColumnWidth)
		if err := f.SetColWidth(sheet.Name, name, name, clamped); err != nil {
			return errors.Wrapf(ErrWriteFailed, "setting column width: %v", err)
		}
	}

	return nil
}

// writeCell writes one cell, converting to a typed value when inference
// is enabled, and accumulates the column's display width.
func (w *excelizeWriter) writeCell(f *excelize.File, styles *cellStyles, sheet, cell, value string, row, col int, colWidths []float64) error {
	// Header cells stay textual; inference applies to data rows only.
	if w.inferTypes && row > 1 {
		if date, ok := parseCellDate(value); ok {
			if err := f.SetCellValue(sheet, cell, date); err != nil {
				return errors.Wrapf(ErrWriteFailed, "writing cell %s: %v", cell, err)
			}
			if err := f.SetCellStyle(sheet, cell, cell, styles.date); err != nil {
				return errors.Wrapf(ErrWriteFailed, "styling cell %s: %v", cell, err)
			}
			colWidths[col] = max(colWidths[col], dateColumnWidth)
			return nil
		}
		if n, ok := parseCellNumber(value); ok {
			if err := f.SetCellValue(sheet, cell, n); err != nil {
				return errors.Wrapf(ErrWriteFailed, "writing cell %s: %v", cell, err)
			}
			style := styles.integer
			if n != float64(int64(n)) {
				style = styles.decimal
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return errors.Wrapf(ErrWriteFailed, "styling cell %s: %v", cell, err)
			}
			colWidths[col] = max(colWidths[col], float64(len(fmt.Sprintf("%.2f", n))+len(fmt.Sprint(int64(n)))/3))
			return nil
		}
	}

	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return errors.Wrapf(ErrWriteFailed, "writing cell %s: %v", cell, err)
	}
	colWidths[col] = max(colWidths[col], float64(min(len(value), maxTextCellWidth)))
	return nil
}
