package pdfxlsx

import (
	"math"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// rect is a bounding box in top-left-origin page coordinates.
type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) centerX() float64 { return (r.x0 + r.x1) / 2 }
func (r rect) centerY() float64 { return (r.y0 + r.y1) / 2 }

// word is a positioned run of non-whitespace characters. Words are the
// unit table detection assigns to cells.
type word struct {
	text string
	box  rect
}

// pageHandle wraps a loaded pdfium page together with its dimensions.
type pageHandle struct {
	ref    references.FPDF_PAGE
	width  float64
	height float64
}

// loadPage loads one page of a document. The caller must invoke close.
func loadPage(instance pdfium.Pdfium, doc references.FPDF_DOCUMENT, pageIndex int) (*pageHandle, error) {
	pageResp, err := instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: doc,
		Index:    pageIndex,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load page %d", pageIndex+1)
	}

	width, err := instance.FPDF_GetPageWidthF(&requests.FPDF_GetPageWidthF{
		Page: requests.Page{ByReference: &pageResp.Page},
	})
	if err != nil {
		instance.FPDF_ClosePage(&requests.FPDF_ClosePage{Page: pageResp.Page})
		return nil, errors.Wrap(err, "failed to get page width")
	}
	height, err := instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
		Page: requests.Page{ByReference: &pageResp.Page},
	})
	if err != nil {
		instance.FPDF_ClosePage(&requests.FPDF_ClosePage{Page: pageResp.Page})
		return nil, errors.Wrap(err, "failed to get page height")
	}

	return &pageHandle{
		ref:    pageResp.Page,
		width:  float64(width.PageWidth),
		height: float64(height.PageHeight),
	}, nil
}

func (p *pageHandle) close(instance pdfium.Pdfium) {
	instance.FPDF_ClosePage(&requests.FPDF_ClosePage{Page: p.ref})
}

// pageText extracts the full text of a page in reading order.
func pageText(instance pdfium.Pdfium, page *pageHandle) (string, error) {
	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{ByReference: &page.ref},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	count, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to count characters")
	}
	if count.Count == 0 {
		return "", nil
	}

	text, err := instance.FPDFText_GetText(&requests.FPDFText_GetText{
		TextPage:   textPage.TextPage,
		StartIndex: 0,
		Count:      count.Count,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to read page text")
	}
	return text.Text, nil
}

// charInfo is one character with position, kept only during word grouping.
type charInfo struct {
	text     rune
	box      rect
	fontSize float64
}

// pageWords extracts all words from a page: every character's unicode
// value and box is read from the text page, then characters are grouped
// into words on whitespace and on horizontal gaps larger than a fraction
// of the font size.
func pageWords(instance pdfium.Pdfium, page *pageHandle) ([]word, error) {
	textPage, err := instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{ByReference: &page.ref},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	count, err := instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	chars := make([]charInfo, 0, count.Count)
	for i := 0; i < count.Count; i++ {
		unicode, err := instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil || unicode.Unicode == 0 {
			continue
		}

		charBox, err := instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		fontSize := 12.0
		if fs, err := instance.FPDFText_GetFontSize(&requests.FPDFText_GetFontSize{
			TextPage: textPage.TextPage,
			Index:    i,
		}); err == nil {
			fontSize = fs.FontSize
		}

		// pdfium reports bottom-left-origin coordinates; flip to
		// top-left origin so "top" sorts ascending down the page.
		chars = append(chars, charInfo{
			text: rune(unicode.Unicode),
			box: rect{
				x0: charBox.Left,
				y0: page.height - charBox.Top,
				x1: charBox.Right,
				y1: page.height - charBox.Bottom,
			},
			fontSize: fontSize,
		})
	}

	return groupWords(chars), nil
}

// groupWords merges consecutive characters into words. A word breaks on
// whitespace, on a horizontal gap wider than gapFactor of the font size,
// or on a vertical jump to another line.
func groupWords(chars []charInfo) []word {
	const gapFactor = 0.3

	var words []word
	var current []charInfo
	var box rect

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := make([]rune, 0, len(current))
		for _, c := range current {
			text = append(text, c.text)
		}
		words = append(words, word{text: string(text), box: box})
		current = nil
	}

	for _, c := range chars {
		if c.text == ' ' || c.text == '\t' || c.text == '\n' || c.text == '\r' {
			flush()
			continue
		}

		if len(current) > 0 {
			prev := current[len(current)-1]
			gap := c.box.x0 - prev.box.x1
			lineJump := math.Abs(c.box.y0-prev.box.y0) > prev.fontSize*0.5
			if gap > prev.fontSize*gapFactor || gap < -prev.fontSize || lineJump {
				flush()
			}
		}

		if len(current) == 0 {
			box = c.box
		} else {
			box.x0 = math.Min(box.x0, c.box.x0)
			box.y0 = math.Min(box.y0, c.box.y0)
			box.x1 = math.Max(box.x1, c.box.x1)
			box.y1 = math.Max(box.y1, c.box.y1)
		}
		current = append(current, c)
	}
	flush()

	return words
}
