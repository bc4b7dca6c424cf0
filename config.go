package pdfxlsx

// Mode selects which extraction path the engine runs.
type Mode int

const (
	// ModeAuto tries table detection first and falls back to text
	// extraction when no usable tables are found.
	ModeAuto Mode = iota

	// ModeTables forces table extraction. Without TableFallback the run
	// fails with ErrNoTablesFound when nothing is detected.
	ModeTables

	// ModeText forces text extraction; table detection never runs.
	ModeText
)

// DetectionMode selects the table detection strategy.
type DetectionMode int

const (
	// DetectLattice detects tables from explicit ruling lines and
	// rectangles drawn in the PDF.
	DetectLattice DetectionMode = iota

	// DetectStream infers table boundaries from word alignment, for
	// tables without visible borders.
	DetectStream
)

// Granularity selects how text extraction splits page content.
type Granularity int

const (
	// GranularLine emits one block per text line.
	GranularLine Granularity = iota

	// GranularPage emits one block per page containing its full text.
	GranularPage
)

// Config controls conversion behavior.
type Config struct {
	// Mode is the extraction mode (default: ModeAuto).
	Mode Mode

	// Pages selects which pages to process: "all", "3", "1,3,5-10"
	// (default: "all"). Page numbers are 1-based.
	Pages string

	// Detection is the table detection strategy (default: DetectLattice).
	Detection DetectionMode

	// MultiTable keeps every table detected on a page. When false only
	// the largest table per page is kept (default: true).
	MultiTable bool

	// TableFallback makes ModeTables fall back to text extraction when
	// no tables are found, like ModeAuto (default: false).
	TableFallback bool

	// SeparateSheets writes each table to its own sheet instead of
	// appending everything to one sheet (default: false).
	SeparateSheets bool

	// Separator splits text lines into columns (e.g. ";", ",", "|").
	// "\t" is interpreted as a tab. Empty disables splitting.
	Separator string

	// SkipBlankLines drops blank lines during text extraction, before
	// normalization (default: false).
	SkipBlankLines bool

	// TextBy is the text extraction granularity (default: GranularLine).
	TextBy Granularity

	// InferCellTypes converts cells that look like numbers or dates into
	// typed spreadsheet values with matching formats (default: true).
	InferCellTypes bool

	// Verbose enables progress logging during conversion (default: false).
	Verbose bool
}

// DefaultConfig returns the default conversion configuration.
func DefaultConfig() Config {
	return Config{
		Mode:           ModeAuto,
		Pages:          "all",
		Detection:      DetectLattice,
		MultiTable:     true,
		InferCellTypes: true,
		TextBy:         GranularLine,
	}
}
