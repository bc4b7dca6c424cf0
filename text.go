package pdfxlsx

import (
	"strings"

	"github.com/klippa-app/go-pdfium"
)

// pdfiumTextExtractor implements TextExtractor on a pdfium instance.
type pdfiumTextExtractor struct {
	instance pdfium.Pdfium
}

func (e *pdfiumTextExtractor) ExtractText(doc Document, pages PageSet, by Granularity, skipBlank bool) TextOutcome {
	pd, err := asPdfiumDocument(doc)
	if err != nil {
		return TextOutcome{Status: OutcomeFailed, Err: err}
	}

	var blocks []RawTextBlock
	for _, pageNum := range pages {
		page, err := loadPage(e.instance, pd.ref, pageNum-1)
		if err != nil {
			return TextOutcome{Status: OutcomeFailed, Err: err}
		}

		text, err := pageText(e.instance, page)
		page.close(e.instance)
		if err != nil {
			return TextOutcome{Status: OutcomeFailed, Err: err}
		}

		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")

		// Pages with no text at all contribute nothing; a document
		// whose selected pages are all textless comes back Empty.
		if strings.TrimSpace(text) == "" {
			continue
		}

		blocks = append(blocks, pageBlocks(text, pageNum, by, skipBlank)...)
	}

	if len(blocks) == 0 {
		return TextOutcome{Status: OutcomeEmpty}
	}
	return TextOutcome{Status: OutcomeSuccess, Blocks: blocks}
}

// pageBlocks splits one page's text into raw blocks. Line numbers count
// the page's original lines, so suppressed blank lines leave gaps rather
// than renumbering. Blank-line suppression happens here, before the
// normalizer ever sees the data, so it affects row counts.
func pageBlocks(text string, page int, by Granularity, skipBlank bool) []RawTextBlock {
	if by == GranularPage {
		return []RawTextBlock{{Page: page, Text: text}}
	}

	var blocks []RawTextBlock
	for i, line := range strings.Split(text, "\n") {
		if skipBlank && strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, RawTextBlock{
			Page: page,
			Line: i + 1,
			Text: line,
		})
	}
	return blocks
}
