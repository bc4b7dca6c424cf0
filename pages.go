package pdfxlsx

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// PageSet is an ordered set of distinct 1-based page numbers, sorted
// ascending. It is built once per document and not modified afterwards.
type PageSet []int

// ParsePageSpec resolves a page specification against a document's page
// count. Accepted forms: "all", a single number ("3"), comma-separated
// numbers and hyphenated ranges ("1,3,5-10"). Numbers are 1-based and
// ranges are inclusive. Duplicates are removed and the result is sorted.
//
// Any malformed token, inverted range, or page beyond pageCount fails
// with ErrInvalidPageSpec; out-of-range pages are never silently dropped.
func ParsePageSpec(spec string, pageCount int) (PageSet, error) {
	if pageCount <= 0 {
		return nil, nil
	}

	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "all") {
		pages := make(PageSet, pageCount)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages, nil
	}

	seen := make(map[int]bool)
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)

		start, end, err := parsePageToken(token)
		if err != nil {
			return nil, err
		}
		if start < 1 || end > pageCount {
			return nil, errors.Wrapf(ErrInvalidPageSpec, "page %q out of range 1-%d", token, pageCount)
		}
		for p := start; p <= end; p++ {
			seen[p] = true
		}
	}

	pages := make(PageSet, 0, len(seen))
	for p := range seen {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// parsePageToken parses a single token into an inclusive page range. A
// plain number yields start == end.
func parsePageToken(token string) (start, end int, err error) {
	if lo, hi, ok := strings.Cut(token, "-"); ok {
		start, err = strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return 0, 0, errors.Wrapf(ErrInvalidPageSpec, "invalid range start %q", token)
		}
		end, err = strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return 0, 0, errors.Wrapf(ErrInvalidPageSpec, "invalid range end %q", token)
		}
		if start > end {
			return 0, 0, errors.Wrapf(ErrInvalidPageSpec, "range %q start exceeds end", token)
		}
		return start, end, nil
	}

	start, err = strconv.Atoi(token)
	if err != nil {
		return 0, 0, errors.Wrapf(ErrInvalidPageSpec, "invalid page number %q", token)
	}
	return start, start, nil
}
