package pdfxlsx

import "fmt"

// RawTable is a table as emitted by the detection capability: a 2D grid
// of string cells, possibly ragged, tagged with its origin page and its
// detection order within that page. It exists only until normalization.
type RawTable struct {
	Page  int // 1-based origin page
	Index int // detection order within the page, 1-based
	Rows  [][]string
}

// RawTextBlock is one unit of extracted text: a single line when the
// granularity is GranularLine, or a whole page's text when GranularPage.
type RawTextBlock struct {
	Page int // 1-based origin page
	Line int // 1-based line number, 0 for page granularity
	Text string
}

// Grid is a normalized rectangular grid of string cells destined for one
// sheet of the output workbook.
type Grid struct {
	// Rows holds the cell data. For table grids every row has the same
	// length; text grids may carry ragged rows that are padded to the
	// sheet's width at write time.
	Rows [][]string

	// Label identifies the grid's origin, e.g. "Page3_Table2" or "Text".
	Label string

	// Sheet is the target sheet name assigned by the normalizer.
	Sheet string
}

// RowCount returns the number of rows in the grid.
func (g Grid) RowCount() int { return len(g.Rows) }

// tableLabel derives the origin label for a detected table.
func tableLabel(page, index int) string {
	return fmt.Sprintf("Page%d_Table%d", page, index)
}

// OutcomeStatus tags the result of one extraction attempt.
type OutcomeStatus int

const (
	// OutcomeSuccess means the attempt produced at least one result.
	OutcomeSuccess OutcomeStatus = iota

	// OutcomeEmpty means the attempt ran cleanly but found nothing.
	// Empty is a valid result, not an error.
	OutcomeEmpty

	// OutcomeFailed means the attempt failed at the capability level.
	OutcomeFailed
)

// TableOutcome is the tagged result of one table detection attempt.
// Exactly one of Tables or Err is meaningful, selected by Status.
type TableOutcome struct {
	Status OutcomeStatus
	Tables []RawTable
	Err    error
}

// TextOutcome is the tagged result of one text extraction attempt.
type TextOutcome struct {
	Status OutcomeStatus
	Blocks []RawTextBlock
	Err    error
}

// Source reports which extraction path produced a document's output.
type Source int

const (
	// SourceNone means the document yielded no extractable content.
	SourceNone Source = iota

	// SourceTables means the output came from table detection.
	SourceTables

	// SourceText means the output came from text extraction.
	SourceText
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceTables:
		return "tables"
	case SourceText:
		return "text"
	default:
		return "none"
	}
}

// ExtractionResult is the engine's final product for one document: the
// normalized grids and the path that produced them. A SourceNone result
// carries no grids and reports a valid zero-content document.
type ExtractionResult struct {
	Source Source
	Grids  []Grid
}
