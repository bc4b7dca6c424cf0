package pdfxlsx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTables_PadsRaggedRows(t *testing.T) {
	tables := []RawTable{{
		Page:  1,
		Index: 1,
		Rows:  [][]string{{"a", "b"}, {"c"}},
	}}

	grids := normalizeTables(tables, true)
	require.Len(t, grids, 1)
	require.Equal(t, [][]string{{"a", "b"}, {"c", ""}}, grids[0].Rows)
}

func TestNormalizeTables_WidthNotUnifiedAcrossTables(t *testing.T) {
	tables := []RawTable{
		{Page: 1, Index: 1, Rows: [][]string{{"a", "b", "c"}}},
		{Page: 1, Index: 2, Rows: [][]string{{"x"}, {"y", "z"}}},
	}

	grids := normalizeTables(tables, true)
	require.Len(t, grids, 2)
	require.Len(t, grids[0].Rows[0], 3)
	require.Len(t, grids[1].Rows[0], 2)
	require.Equal(t, [][]string{{"x", ""}, {"y", "z"}}, grids[1].Rows)
}

func TestNormalizeTables_DropsZeroSizeTables(t *testing.T) {
	tables := []RawTable{
		{Page: 1, Index: 1, Rows: nil},
		{Page: 1, Index: 2, Rows: [][]string{{}, {}}},
		{Page: 2, Index: 1, Rows: [][]string{{"ok"}}},
	}

	grids := normalizeTables(tables, true)
	require.Len(t, grids, 1)
	require.Equal(t, "Page2_Table1", grids[0].Label)

	for _, g := range grids {
		require.Positive(t, len(g.Rows))
		require.Positive(t, len(g.Rows[0]))
	}
}

func TestNormalizeTables_SheetTagging(t *testing.T) {
	tables := []RawTable{
		{Page: 1, Index: 1, Rows: [][]string{{"a"}}},
		{Page: 3, Index: 2, Rows: [][]string{{"b"}}},
	}

	combined := normalizeTables(tables, true)
	require.Equal(t, "Data", combined[0].Sheet)
	require.Equal(t, "Data", combined[1].Sheet)

	separate := normalizeTables(tables, false)
	require.Equal(t, "Page1_Table1", separate[0].Sheet)
	require.Equal(t, "Page3_Table2", separate[1].Sheet)
}

func TestNormalizeText_NoSeparator(t *testing.T) {
	blocks := []RawTextBlock{
		{Page: 1, Line: 1, Text: "first line"},
		{Page: 1, Line: 2, Text: "second line"},
	}

	grids := normalizeText(blocks, "")
	require.Len(t, grids, 1)
	require.Equal(t, "Text", grids[0].Sheet)
	require.Equal(t, [][]string{{"first line"}, {"second line"}}, grids[0].Rows)
}

func TestNormalizeText_SeparatorSplitsPerBlock(t *testing.T) {
	blocks := []RawTextBlock{
		{Page: 1, Line: 1, Text: "a;b;c"},
		{Page: 1, Line: 2, Text: "d;e"},
		{Page: 1, Line: 3, Text: "f"},
	}

	grids := normalizeText(blocks, ";")
	require.Len(t, grids, 1)
	// Short rows stay short here; the sheet writer pads them.
	require.Equal(t, [][]string{{"a", "b", "c"}, {"d", "e"}, {"f"}}, grids[0].Rows)
}

func TestNormalizeText_TabEscape(t *testing.T) {
	blocks := []RawTextBlock{{Page: 1, Line: 1, Text: "a\tb"}}

	grids := normalizeText(blocks, `\t`)
	require.Equal(t, [][]string{{"a", "b"}}, grids[0].Rows)
}

func TestNormalizeText_EmptyInput(t *testing.T) {
	require.Empty(t, normalizeText(nil, ";"))
}

func TestNonEmptyGrids(t *testing.T) {
	grids := []Grid{
		{Rows: [][]string{{"a"}}, Sheet: "Data"},
		{Rows: nil, Sheet: "Data"},
	}
	kept := nonEmptyGrids(grids)
	require.Len(t, kept, 1)
	require.Equal(t, [][]string{{"a"}}, kept[0].Rows)
}
