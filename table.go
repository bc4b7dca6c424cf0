package pdfxlsx

import (
	"math"
	"sort"
	"strings"
)

// Detection tolerances, following pdfplumber's defaults.
const (
	snapTolerance         = 3.0
	joinTolerance         = 3.0
	edgeMinLength         = 3.0
	intersectionTolerance = 3.0
	minWordsVertical      = 3
	minWordsHorizontal    = 1
	rowGroupTolerance     = 1.0
)

// detectedTable is a table found on one page, with its grid content and
// vertical position for within-page ordering.
type detectedTable struct {
	rows [][]string
	top  float64
}

// detectPageTables finds tables on a page. Lattice mode consumes the
// page's explicit ruling edges; stream mode derives imaginary edges from
// word alignment. The returned tables are ordered top to bottom.
func detectPageTables(words []word, rulings []edge, mode DetectionMode) []detectedTable {
	if len(words) == 0 {
		return nil
	}

	var edges []edge
	switch mode {
	case DetectStream:
		edges = append(alignmentEdgesVertical(words, minWordsVertical),
			alignmentEdgesHorizontal(words, minWordsHorizontal)...)
	default:
		edges = rulings
	}
	if len(edges) == 0 {
		return nil
	}

	edges = joinEdges(snapEdges(edges))
	edges = filterShortEdges(edges, edgeMinLength)

	cells := cellsFromIntersections(findIntersections(edges))
	groups := groupCellsIntoTables(cells)

	tables := make([]detectedTable, 0, len(groups))
	for _, group := range groups {
		if t, ok := tableFromCells(group, words); ok {
			tables = append(tables, t)
		}
	}

	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].top < tables[j].top
	})
	return tables
}

// snapEdges clusters edges whose positions are within snapTolerance and
// moves each cluster to its running average position.
func snapEdges(edges []edge) []edge {
	snapped := make([]edge, len(edges))
	copy(snapped, edges)

	type cluster struct {
		value   float64
		members []int
	}

	snapDimension := func(indices []int, get func(edge) float64, set func(*edge, float64)) {
		var clusters []cluster
		for _, idx := range indices {
			v := get(snapped[idx])
			found := false
			for i := range clusters {
				if math.Abs(clusters[i].value-v) <= snapTolerance {
					clusters[i].members = append(clusters[i].members, idx)
					n := float64(len(clusters[i].members))
					clusters[i].value = (clusters[i].value*(n-1) + v) / n
					found = true
					break
				}
			}
			if !found {
				clusters = append(clusters, cluster{value: v, members: []int{idx}})
			}
		}
		for _, c := range clusters {
			for _, idx := range c.members {
				set(&snapped[idx], c.value)
			}
		}
	}

	var vIdx, hIdx []int
	for i, e := range snapped {
		if e.orientation == "v" {
			vIdx = append(vIdx, i)
		} else {
			hIdx = append(hIdx, i)
		}
	}

	snapDimension(vIdx,
		func(e edge) float64 { return e.x0 },
		func(e *edge, v float64) { e.x1 += v - e.x0; e.x0 = v })
	snapDimension(hIdx,
		func(e edge) float64 { return e.top },
		func(e *edge, v float64) { e.bottom += v - e.top; e.top = v })

	return snapped
}

// joinEdges merges edges that share an orientation and position and
// overlap, or nearly touch, along their length.
func joinEdges(edges []edge) []edge {
	type lineKey struct {
		orientation string
		position    float64
	}

	grouped := make(map[lineKey][]edge)
	for _, e := range edges {
		key := lineKey{orientation: e.orientation, position: e.x0}
		if e.orientation == "h" {
			key.position = e.top
		}
		grouped[key] = append(grouped[key], e)
	}

	var joined []edge
	for key, group := range grouped {
		lo := func(e edge) float64 {
			if key.orientation == "h" {
				return e.x0
			}
			return e.top
		}
		hi := func(e edge) float64 {
			if key.orientation == "h" {
				return e.x1
			}
			return e.bottom
		}

		sort.Slice(group, func(i, j int) bool { return lo(group[i]) < lo(group[j]) })

		merged := []edge{group[0]}
		for _, e := range group[1:] {
			last := &merged[len(merged)-1]
			if lo(e) <= hi(*last)+joinTolerance {
				if hi(e) > hi(*last) {
					if key.orientation == "h" {
						last.x1 = e.x1
						last.width = last.x1 - last.x0
					} else {
						last.bottom = e.bottom
						last.height = last.bottom - last.top
					}
				}
			} else {
				merged = append(merged, e)
			}
		}
		joined = append(joined, merged...)
	}

	return joined
}

func filterShortEdges(edges []edge, minLength float64) []edge {
	kept := edges[:0:0]
	for _, e := range edges {
		length := e.width
		if e.orientation == "v" {
			length = e.height
		}
		if length >= minLength {
			kept = append(kept, e)
		}
	}
	return kept
}

type point struct {
	x, y float64
}

// crossing records which edges meet at an intersection point.
type crossing struct {
	vertical   []edge
	horizontal []edge
}

// findIntersections computes every point where a vertical and a
// horizontal edge cross, within tolerance.
func findIntersections(edges []edge) map[point]crossing {
	var vEdges, hEdges []edge
	for _, e := range edges {
		if e.orientation == "v" {
			vEdges = append(vEdges, e)
		} else {
			hEdges = append(hEdges, e)
		}
	}

	intersections := make(map[point]crossing)
	for _, v := range vEdges {
		for _, h := range hEdges {
			if v.top <= h.top+intersectionTolerance &&
				v.bottom >= h.top-intersectionTolerance &&
				v.x0 >= h.x0-intersectionTolerance &&
				v.x0 <= h.x1+intersectionTolerance {

				p := point{x: v.x0, y: h.top}
				c := intersections[p]
				c.vertical = append(c.vertical, v)
				c.horizontal = append(c.horizontal, h)
				intersections[p] = c
			}
		}
	}
	return intersections
}

// cellBox is a detected table cell.
type cellBox struct {
	x0, top, x1, bottom float64
}

// cellsFromIntersections forms minimal rectangular cells: for each
// intersection point, the nearest connected points right and below must
// close a rectangle whose fourth corner is also an intersection.
func cellsFromIntersections(intersections map[point]crossing) []cellBox {
	if len(intersections) == 0 {
		return nil
	}

	points := make([]point, 0, len(intersections))
	for p := range intersections {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].y == points[j].y {
			return points[i].x < points[j].x
		}
		return points[i].y < points[j].y
	})

	sameV := func(a, b edge) bool { return a.x0 == b.x0 && a.top == b.top && a.bottom == b.bottom }
	sameH := func(a, b edge) bool { return a.top == b.top && a.x0 == b.x0 && a.x1 == b.x1 }

	connected := func(p1, p2 point) bool {
		if p1.x == p2.x {
			for _, e1 := range intersections[p1].vertical {
				for _, e2 := range intersections[p2].vertical {
					if sameV(e1, e2) {
						return true
					}
				}
			}
		}
		if p1.y == p2.y {
			for _, e1 := range intersections[p1].horizontal {
				for _, e2 := range intersections[p2].horizontal {
					if sameH(e1, e2) {
						return true
					}
				}
			}
		}
		return false
	}

	var cells []cellBox
	for i, pt := range points {
		var right, below *point
		for j := i + 1; j < len(points); j++ {
			p := points[j]
			if p.x == pt.x && p.y > pt.y && (below == nil || p.y < below.y) {
				below = &points[j]
			}
			if p.y == pt.y && p.x > pt.x && (right == nil || p.x < right.x) {
				right = &points[j]
			}
		}
		if right == nil || below == nil || !connected(pt, *below) || !connected(pt, *right) {
			continue
		}

		corner := point{x: right.x, y: below.y}
		if _, ok := intersections[corner]; !ok {
			continue
		}
		if connected(corner, *right) && connected(corner, *below) {
			cells = append(cells, cellBox{x0: pt.x, top: pt.y, x1: corner.x, bottom: corner.y})
		}
	}
	return cells
}

// groupCellsIntoTables clusters cells that share corner points into
// contiguous tables. Isolated single cells are discarded.
func groupCellsIntoTables(cells []cellBox) [][]cellBox {
	if len(cells) == 0 {
		return nil
	}

	remaining := make([]cellBox, len(cells))
	copy(remaining, cells)

	var tables [][]cellBox
	var current []cellBox
	corners := make(map[point]bool)

	cellCorners := func(c cellBox) [4]point {
		return [4]point{
			{c.x0, c.top}, {c.x0, c.bottom},
			{c.x1, c.top}, {c.x1, c.bottom},
		}
	}

	for len(remaining) > 0 {
		before := len(current)

		for i := 0; i < len(remaining); i++ {
			cell := remaining[i]
			cs := cellCorners(cell)

			adjacent := len(current) == 0
			if !adjacent {
				for _, c := range cs {
					if corners[c] {
						adjacent = true
						break
					}
				}
			}
			if !adjacent {
				continue
			}

			current = append(current, cell)
			for _, c := range cs {
				corners[c] = true
			}
			remaining = append(remaining[:i], remaining[i+1:]...)
			i--
		}

		if len(current) == before {
			if len(current) > 1 {
				tables = append(tables, current)
			}
			current = nil
			corners = make(map[point]bool)
		}
	}
	if len(current) > 1 {
		tables = append(tables, current)
	}

	return tables
}

// tableFromCells organizes a cell group into rows and fills each cell
// with the words whose centers fall inside it. Rows whose cells are all
// empty are dropped; a table with no remaining rows is discarded.
func tableFromCells(cells []cellBox, words []word) (detectedTable, bool) {
	if len(cells) == 0 {
		return detectedTable{}, false
	}

	type rowGroup struct {
		top   float64
		cells []cellBox
	}
	var groups []rowGroup
	for _, cell := range cells {
		found := false
		for i := range groups {
			if math.Abs(groups[i].top-cell.top) < rowGroupTolerance {
				groups[i].cells = append(groups[i].cells, cell)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, rowGroup{top: cell.top, cells: []cellBox{cell}})
		}
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].top < groups[j].top })
	for i := range groups {
		row := groups[i].cells
		sort.Slice(row, func(j, k int) bool { return row[j].x0 < row[k].x0 })
	}

	var rows [][]string
	for _, group := range groups {
		row := make([]string, len(group.cells))
		empty := true
		for i, cell := range group.cells {
			row[i] = cellContent(cell, words)
			if row[i] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return detectedTable{}, false
	}

	return detectedTable{rows: rows, top: groups[0].top}, true
}

// cellContent gathers the words whose centers lie inside the cell,
// ordered top to bottom then left to right; lines within a cell are
// joined with newlines.
func cellContent(cell cellBox, words []word) string {
	const boundaryTolerance = 1.0
	const lineGap = 2.0

	var inside []word
	for _, w := range words {
		cx, cy := w.box.centerX(), w.box.centerY()
		if cx >= cell.x0-boundaryTolerance && cx <= cell.x1+boundaryTolerance &&
			cy >= cell.top-boundaryTolerance && cy <= cell.bottom+boundaryTolerance {
			inside = append(inside, w)
		}
	}

	sort.Slice(inside, func(i, j int) bool {
		if math.Abs(inside[i].box.y0-inside[j].box.y0) < lineGap {
			return inside[i].box.x0 < inside[j].box.x0
		}
		return inside[i].box.y0 < inside[j].box.y0
	})

	var b strings.Builder
	for i, w := range inside {
		if i > 0 {
			if w.box.y0-inside[i-1].box.y1 > lineGap {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(w.text)
	}
	return b.String()
}

// alignmentEdgesHorizontal infers horizontal edges from rows of words
// that share a top position, the stream-mode analogue of ruling lines.
func alignmentEdgesHorizontal(words []word, minWords int) []edge {
	type cluster struct {
		top   float64
		words []word
	}

	var clusters []cluster
	for _, w := range words {
		found := false
		for i := range clusters {
			if math.Abs(clusters[i].top-w.box.y0) < rowGroupTolerance {
				clusters[i].words = append(clusters[i].words, w)
				found = true
				break
			}
		}
		if !found {
			clusters = append(clusters, cluster{top: w.box.y0, words: []word{w}})
		}
	}

	var large []cluster
	for _, c := range clusters {
		if len(c.words) >= minWords {
			large = append(large, c)
		}
	}
	if len(large) == 0 {
		return nil
	}

	minX0, maxX1 := math.MaxFloat64, -math.MaxFloat64
	for _, c := range large {
		for _, w := range c.words {
			minX0 = math.Min(minX0, w.box.x0)
			maxX1 = math.Max(maxX1, w.box.x1)
		}
	}

	var edges []edge
	for _, c := range large {
		bottom := c.top
		for _, w := range c.words {
			bottom = math.Max(bottom, w.box.y1)
		}
		for _, y := range []float64{c.top, bottom} {
			edges = append(edges, edge{
				x0: minX0, x1: maxX1,
				top: y, bottom: y,
				width:       maxX1 - minX0,
				orientation: "h",
			})
		}
	}
	return edges
}

// alignmentEdgesVertical infers vertical edges from columns of words that
// share a left, right, or center position.
func alignmentEdgesVertical(words []word, minWords int) []edge {
	type cluster struct {
		x     float64
		words []word
	}

	clusterBy := func(get func(word) float64) []cluster {
		var clusters []cluster
		for _, w := range words {
			x := get(w)
			found := false
			for i := range clusters {
				if math.Abs(clusters[i].x-x) < rowGroupTolerance {
					clusters[i].words = append(clusters[i].words, w)
					found = true
					break
				}
			}
			if !found {
				clusters = append(clusters, cluster{x: x, words: []word{w}})
			}
		}
		return clusters
	}

	all := clusterBy(func(w word) float64 { return w.box.x0 })
	all = append(all, clusterBy(func(w word) float64 { return w.box.x1 })...)
	all = append(all, clusterBy(func(w word) float64 { return w.box.centerX() })...)

	sort.SliceStable(all, func(i, j int) bool { return len(all[i].words) > len(all[j].words) })

	type bbox struct {
		x0, y0, x1, y1 float64
	}
	var boxes []bbox
	for _, c := range all {
		if len(c.words) < minWords {
			continue
		}
		bb := bbox{x0: math.MaxFloat64, y0: math.MaxFloat64, x1: -math.MaxFloat64, y1: -math.MaxFloat64}
		for _, w := range c.words {
			bb.x0 = math.Min(bb.x0, w.box.x0)
			bb.y0 = math.Min(bb.y0, w.box.y0)
			bb.x1 = math.Max(bb.x1, w.box.x1)
			bb.y1 = math.Max(bb.y1, w.box.y1)
		}
		boxes = append(boxes, bb)
	}

	// Keep only non-overlapping column candidates, largest first.
	var condensed []bbox
	for _, bb := range boxes {
		overlaps := false
		for _, kept := range condensed {
			if !(bb.x1 < kept.x0 || bb.x0 > kept.x1 || bb.y1 < kept.y0 || bb.y0 > kept.y1) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			condensed = append(condensed, bb)
		}
	}
	if len(condensed) == 0 {
		return nil
	}

	sort.Slice(condensed, func(i, j int) bool { return condensed[i].x0 < condensed[j].x0 })

	minTop, maxBottom, maxX1 := math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64
	for _, bb := range condensed {
		minTop = math.Min(minTop, bb.y0)
		maxBottom = math.Max(maxBottom, bb.y1)
		maxX1 = math.Max(maxX1, bb.x1)
	}

	var edges []edge
	for _, bb := range condensed {
		edges = append(edges, edge{
			x0: bb.x0, x1: bb.x0,
			top: minTop, bottom: maxBottom,
			height:      maxBottom - minTop,
			orientation: "v",
		})
	}
	edges = append(edges, edge{
		x0: maxX1, x1: maxX1,
		top: minTop, bottom: maxBottom,
		height:      maxBottom - minTop,
		orientation: "v",
	})
	return edges
}
