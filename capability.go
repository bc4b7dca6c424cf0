package pdfxlsx

// The engine drives its collaborators through the narrow interfaces
// below. The pdfium-backed implementations live in pdfium.go,
// tabledetect.go and text.go; the excelize-backed writer in xlsx.go.
// Tests substitute fakes.

// Document is an open PDF document handle. It must be closed when the
// pipeline run that opened it ends.
type Document interface {
	// PageCount returns the total number of pages.
	PageCount() int

	// Close releases the underlying document resources.
	Close() error
}

// DocumentOpener opens PDF files.
type DocumentOpener interface {
	// Open opens the PDF at path. Corrupt, encrypted or non-PDF input
	// fails with an error wrapping ErrUnreadableDocument.
	Open(path string) (Document, error)
}

// TableDetector detects tables on the selected pages of a document.
//
// Finding no tables is OutcomeEmpty, never a failure; OutcomeFailed is
// reserved for capability-level errors. Tables are returned in page
// order, then within-page detection order.
type TableDetector interface {
	DetectTables(doc Document, pages PageSet, mode DetectionMode, multi bool) TableOutcome
}

// TextExtractor extracts plain text from the selected pages.
//
// Blank-line suppression is applied here, before normalization, so that
// it affects row counts. A document whose selected pages hold no text at
// all yields OutcomeEmpty.
type TextExtractor interface {
	ExtractText(doc Document, pages PageSet, by Granularity, skipBlank bool) TextOutcome
}

// SheetWriter persists a sheet plan as a spreadsheet file. The workbook
// is fully built in memory and written once; partial output is never
// observable.
type SheetWriter interface {
	Write(path string, plan *SheetPlan) error
}
