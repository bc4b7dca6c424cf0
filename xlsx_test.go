package pdfxlsx

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelizeWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	plan := BuildSheetPlan([]Grid{
		{
			Rows:  [][]string{{"Name", "Qty"}, {"widget", "3"}},
			Sheet: "Data",
		},
		{
			Rows:  [][]string{{"only one cell"}},
			Sheet: "Extras",
		},
	})

	writer := &excelizeWriter{inferTypes: false}
	require.NoError(t, writer.Write(path, plan))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Data", "Extras"}, f.GetSheetList())

	got, err := f.GetCellValue("Data", "A2")
	require.NoError(t, err)
	require.Equal(t, "widget", got)

	got, err = f.GetCellValue("Data", "B1")
	require.NoError(t, err)
	require.Equal(t, "Qty", got)

	got, err = f.GetCellValue("Extras", "A1")
	require.NoError(t, err)
	require.Equal(t, "only one cell", got)
}

func TestExcelizeWriter_InfersTypedCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typed.xlsx")

	plan := BuildSheetPlan([]Grid{{
		Rows: [][]string{
			{"Amount", "When", "Note"},
			{"140,000", "25/12/2023", "plain text"},
		},
		Sheet: "Data",
	}})

	writer := &excelizeWriter{inferTypes: true}
	require.NoError(t, writer.Write(path, plan))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// Numeric cells are stored as real numbers.
	raw, err := f.GetCellValue("Data", "A2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	n, err := strconv.ParseFloat(raw, 64)
	require.NoError(t, err)
	require.InDelta(t, 140000, n, 1e-9)

	// Date cells become serial numbers rather than text.
	raw, err = f.GetCellValue("Data", "B2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	_, err = strconv.ParseFloat(raw, 64)
	require.NoError(t, err)

	// Header row stays textual even when it parses as nothing else.
	got, err := f.GetCellValue("Data", "A1")
	require.NoError(t, err)
	require.Equal(t, "Amount", got)

	got, err = f.GetCellValue("Data", "C2")
	require.NoError(t, err)
	require.Equal(t, "plain text", got)
}

func TestExcelizeWriter_PadsRaggedTextRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.xlsx")

	plan := BuildSheetPlan([]Grid{{
		Rows:  [][]string{{"a", "b", "c"}, {"d"}},
		Sheet: "Text",
	}})

	writer := &excelizeWriter{inferTypes: false}
	require.NoError(t, writer.Write(path, plan))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Text")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "d", rows[1][0])
}
