package pdfxlsx

import "errors"

// Sentinel errors returned by the library. Capability-level failures are
// always converted into one of these before reaching the caller; match
// with [errors.Is].
var (
	// ErrInvalidPageSpec is returned when a page specification is
	// malformed or requests a page beyond the document's page count.
	ErrInvalidPageSpec = errors.New("pdfxlsx: invalid page specification")

	// ErrUnreadableDocument is returned when the input cannot be opened
	// as a PDF (corrupt, encrypted, or not a PDF at all).
	ErrUnreadableDocument = errors.New("pdfxlsx: unreadable document")

	// ErrNoTablesFound is returned in forced table mode (without
	// fallback) when no tables were detected.
	ErrNoTablesFound = errors.New("pdfxlsx: no tables found")

	// ErrExtractionFailed is returned when every extraction path for a
	// document failed at the capability level.
	ErrExtractionFailed = errors.New("pdfxlsx: extraction failed")

	// ErrWriteFailed is returned when the output workbook could not be
	// persisted.
	ErrWriteFailed = errors.New("pdfxlsx: write failed")
)
