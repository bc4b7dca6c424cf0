package pdfxlsx

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klippa-app/go-pdfium"
	"github.com/pkg/errors"
)

// Converter converts PDF documents to xlsx workbooks. It wires the
// pdfium-backed extraction capabilities and the excelize writer together
// with the strategy engine. A Converter is stateless between
// conversions and may be reused across documents.
type Converter struct {
	opener DocumentOpener
	tables TableDetector
	text   TextExtractor
	writer SheetWriter
	config Config
}

// NewConverter creates a converter with the default configuration.
func NewConverter(instance pdfium.Pdfium) *Converter {
	return NewConverterWithConfig(instance, DefaultConfig())
}

// NewConverterWithConfig creates a converter with a custom configuration.
func NewConverterWithConfig(instance pdfium.Pdfium, config Config) *Converter {
	return &Converter{
		opener: &pdfiumOpener{instance: instance},
		tables: &pdfiumTableDetector{instance: instance},
		text:   &pdfiumTextExtractor{instance: instance},
		writer: &excelizeWriter{inferTypes: config.InferCellTypes},
		config: config,
	}
}

// Result summarizes one successful conversion. A zero-content document
// produces a Result with SourceNone and no output file.
type Result struct {
	OutputPath    string
	Source        Source
	SheetsWritten int
	RowsWritten   int
}

// FileResult is the per-file outcome of a batch run.
type FileResult struct {
	InputPath string
	Result    *Result
	Err       error
}

// ConvertFile converts a single PDF to an xlsx workbook. When outputPath
// is empty the input path with an .xlsx extension is used. The document
// handle is released whichever branch the run takes.
func (c *Converter) ConvertFile(inputPath, outputPath string) (*Result, error) {
	if outputPath == "" {
		outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".xlsx"
	}

	doc, err := c.opener.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pages, err := ParsePageSpec(c.config.Pages, doc.PageCount())
	if err != nil {
		return nil, err
	}

	eng := &engine{tables: c.tables, text: c.text, config: c.config}
	extraction, err := eng.run(doc, pages)
	if err != nil {
		return nil, err
	}

	if extraction.Source == SourceNone {
		if c.config.Verbose {
			log.Printf("%s: no extractable content", inputPath)
		}
		return &Result{Source: SourceNone}, nil
	}

	plan := BuildSheetPlan(extraction.Grids)
	if err := c.writer.Write(outputPath, plan); err != nil {
		return nil, err
	}

	result := &Result{
		OutputPath:    outputPath,
		Source:        extraction.Source,
		SheetsWritten: len(plan.Sheets),
		RowsWritten:   plan.RowCount(),
	}
	if c.config.Verbose {
		log.Printf("%s: %d sheet(s), %d row(s) from %s -> %s",
			inputPath, result.SheetsWritten, result.RowsWritten, result.Source, outputPath)
	}
	return result, nil
}

// ConvertBatch converts every PDF in dir, one at a time in sorted
// directory order. Each file runs as an independent pipeline; one file's
// failure is recorded in its FileResult and does not abort the batch.
// When outDir is empty, dir/excel_output is used and created.
func (c *Converter) ConvertBatch(dir, outDir string) ([]FileResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read directory %s", dir)
	}

	var pdfs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			pdfs = append(pdfs, entry.Name())
		}
	}
	if len(pdfs) == 0 {
		return nil, errors.Errorf("no PDF files found in %s", dir)
	}

	if outDir == "" {
		outDir = filepath.Join(dir, "excel_output")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", outDir)
	}

	results := make([]FileResult, 0, len(pdfs))
	for _, name := range pdfs {
		inputPath := filepath.Join(dir, name)
		outputPath := filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+".xlsx")

		result, err := c.ConvertFile(inputPath, outputPath)
		results = append(results, FileResult{
			InputPath: inputPath,
			Result:    result,
			Err:       err,
		})
	}
	return results, nil
}

// DocumentInfo contains basic information about a PDF document.
type DocumentInfo struct {
	PageCount int
}

// GetDocumentInfo returns basic information about a PDF without
// converting it.
func (c *Converter) GetDocumentInfo(path string) (*DocumentInfo, error) {
	doc, err := c.opener.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	return &DocumentInfo{PageCount: doc.PageCount()}, nil
}
