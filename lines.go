package pdfxlsx

import (
	"math"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/enums"
	"github.com/klippa-app/go-pdfium/requests"
)

// edge is a horizontal or vertical line segment used for table detection,
// following pdfplumber's edge model.
type edge struct {
	x0, x1      float64
	top, bottom float64
	width       float64 // horizontal edges
	height      float64 // vertical edges
	orientation string  // "h" or "v"
}

// rulingEdges harvests explicit line and rectangle path objects from a
// page and converts them into table edges. Page borders and full-span
// rules are filtered out so a framed page is not mistaken for a table.
func rulingEdges(instance pdfium.Pdfium, page *pageHandle) []edge {
	countResp, err := instance.FPDFPage_CountObjects(&requests.FPDFPage_CountObjects{
		Page: requests.Page{ByReference: &page.ref},
	})
	if err != nil {
		return nil
	}

	var edges []edge
	for i := 0; i < countResp.Count; i++ {
		objResp, err := instance.FPDFPage_GetObject(&requests.FPDFPage_GetObject{
			Page:  requests.Page{ByReference: &page.ref},
			Index: i,
		})
		if err != nil {
			continue
		}

		typeResp, err := instance.FPDFPageObj_GetType(&requests.FPDFPageObj_GetType{
			PageObject: objResp.PageObject,
		})
		if err != nil || typeResp.Type != enums.FPDF_PAGEOBJ_PATH {
			continue
		}

		boundsResp, err := instance.FPDFPageObj_GetBounds(&requests.FPDFPageObj_GetBounds{
			PageObject: objResp.PageObject,
		})
		if err != nil {
			continue
		}

		segResp, err := instance.FPDFPath_CountSegments(&requests.FPDFPath_CountSegments{
			PageObject: objResp.PageObject,
		})
		if err != nil || segResp.Count < 2 {
			continue
		}

		// Flip to top-left-origin coordinates.
		x0 := float64(boundsResp.Left)
		y0 := page.height - float64(boundsResp.Top)
		x1 := float64(boundsResp.Right)
		y1 := page.height - float64(boundsResp.Bottom)

		var candidates []edge
		if segResp.Count == 2 {
			// A two-segment path is a single stroke.
			if e, ok := strokeToEdge(x0, y0, x1, y1); ok {
				candidates = append(candidates, e)
			}
		} else {
			// Rectangles and more complex paths contribute their
			// bounding box sides.
			candidates = boundsToEdges(x0, y0, x1, y1)
		}

		for _, e := range candidates {
			if !isPageBorder(e, page.width, page.height) {
				edges = append(edges, e)
			}
		}
	}

	return edges
}

// strokeToEdge classifies a single stroke as a horizontal or vertical
// edge. Diagonal strokes are not table rules and are discarded.
func strokeToEdge(x0, y0, x1, y1 float64) (edge, bool) {
	const flatTolerance = 2.0

	w := math.Abs(x1 - x0)
	h := math.Abs(y1 - y0)

	switch {
	case h <= flatTolerance && w > flatTolerance:
		top := (y0 + y1) / 2
		return edge{
			x0: math.Min(x0, x1), x1: math.Max(x0, x1),
			top: top, bottom: top,
			width:       w,
			orientation: "h",
		}, true
	case w <= flatTolerance && h > flatTolerance:
		x := (x0 + x1) / 2
		return edge{
			x0: x, x1: x,
			top: math.Min(y0, y1), bottom: math.Max(y0, y1),
			height:      h,
			orientation: "v",
		}, true
	default:
		return edge{}, false
	}
}

// boundsToEdges decomposes a rectangle into its four sides.
func boundsToEdges(x0, y0, x1, y1 float64) []edge {
	left := math.Min(x0, x1)
	right := math.Max(x0, x1)
	top := math.Min(y0, y1)
	bottom := math.Max(y0, y1)

	return []edge{
		{x0: left, x1: right, top: top, bottom: top, width: right - left, orientation: "h"},
		{x0: left, x1: right, top: bottom, bottom: bottom, width: right - left, orientation: "h"},
		{x0: left, x1: left, top: top, bottom: bottom, height: bottom - top, orientation: "v"},
		{x0: right, x1: right, top: top, bottom: bottom, height: bottom - top, orientation: "v"},
	}
}

// isPageBorder reports whether an edge sits at the page boundary or spans
// nearly the whole page, which marks it as a border or decorative rule
// rather than a table line.
func isPageBorder(e edge, pageWidth, pageHeight float64) bool {
	const borderTolerance = 20.0
	const fullSpanThreshold = 0.90

	if e.orientation == "h" {
		if e.top < borderTolerance || e.top > pageHeight-borderTolerance {
			return true
		}
		if e.width > pageWidth*fullSpanThreshold {
			return true
		}
	}
	if e.orientation == "v" {
		if e.x0 < borderTolerance || e.x0 > pageWidth-borderTolerance {
			return true
		}
		if e.height > pageHeight*fullSpanThreshold {
			return true
		}
	}
	return false
}
