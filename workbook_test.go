package pdfxlsx_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ivanvanderbyl/pdfxlsx"
)

func TestBuildSheetPlan_GroupsBySheetTag(t *testing.T) {
	grids := []pdfxlsx.Grid{
		{Rows: [][]string{{"a"}}, Label: "Page1_Table1", Sheet: "Data"},
		{Rows: [][]string{{"b"}}, Label: "Page2_Table1", Sheet: "Data"},
	}

	plan := pdfxlsx.BuildSheetPlan(grids)
	require.Len(t, plan.Sheets, 1)
	require.Equal(t, "Data", plan.Sheets[0].Name)
	require.Len(t, plan.Sheets[0].Grids, 2)
	require.Equal(t, 2, plan.RowCount())
}

func TestBuildSheetPlan_PreservesFirstSeenOrder(t *testing.T) {
	grids := []pdfxlsx.Grid{
		{Rows: [][]string{{"a"}}, Sheet: "Page2_Table1"},
		{Rows: [][]string{{"b"}}, Sheet: "Page1_Table1"},
	}

	plan := pdfxlsx.BuildSheetPlan(grids)
	require.Len(t, plan.Sheets, 2)
	require.Equal(t, "Page2_Table1", plan.Sheets[0].Name)
	require.Equal(t, "Page1_Table1", plan.Sheets[1].Name)
}

func TestBuildSheetPlan_CollidingNamesDisambiguated(t *testing.T) {
	// Two distinct tags that sanitize to the same sheet name.
	long := strings.Repeat("x", 30)
	grids := []pdfxlsx.Grid{
		{Rows: [][]string{{"a"}}, Sheet: long + "AB"},
		{Rows: [][]string{{"b"}}, Sheet: long + "AC"},
	}

	plan := pdfxlsx.BuildSheetPlan(grids)
	require.Len(t, plan.Sheets, 2)
	require.NotEmpty(t, plan.Sheets[0].Name)
	require.NotEmpty(t, plan.Sheets[1].Name)
	require.NotEqual(t, plan.Sheets[0].Name, plan.Sheets[1].Name)
	for _, s := range plan.Sheets {
		require.LessOrEqual(t, len(s.Name), 31)
	}
}

func TestBuildSheetPlan_SanitizesInvalidCharacters(t *testing.T) {
	grids := []pdfxlsx.Grid{
		{Rows: [][]string{{"a"}}, Sheet: "bad[name]/with:chars?"},
	}

	plan := pdfxlsx.BuildSheetPlan(grids)
	require.Len(t, plan.Sheets, 1)
	require.NotContainsf(t, plan.Sheets[0].Name, "[", "sheet name %q", plan.Sheets[0].Name)
	require.NotContains(t, plan.Sheets[0].Name, "/")
	require.NotContains(t, plan.Sheets[0].Name, ":")
}

func TestSheet_WidthIsMaxRowWidth(t *testing.T) {
	sheet := pdfxlsx.Sheet{
		Name: "Text",
		Grids: []pdfxlsx.Grid{
			{Rows: [][]string{{"a", "b", "c"}, {"d"}}},
			{Rows: [][]string{{"e", "f"}}},
		},
	}
	require.Equal(t, 3, sheet.Width())
	require.Equal(t, 3, sheet.RowCount())
	require.Equal(t, 2, sheet.Grids[0].RowCount())
}
