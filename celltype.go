package pdfxlsx

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Cell type inference: string cells that look like numbers or dates are
// converted to typed spreadsheet values so the output gets real numeric
// and date cells instead of text.

var cellDatePattern = regexp.MustCompile(`^\d{1,4}[/\-]\d{1,2}[/\-]\d{2,4}$`)

// cellDateFormats are tried in order; the first successful parse wins.
var cellDateFormats = []string{
	"02/01/2006", "01/02/2006", "02-01-2006", "01-02-2006",
	"02/01/06", "01/02/06", "02-01-06", "01-02-06",
	"2006-01-02", "2006/01/02",
}

// parseCellDate interprets a cell as a calendar date. Day-first formats
// are preferred over month-first when both would parse.
func parseCellDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if !cellDatePattern.MatchString(value) {
		return time.Time{}, false
	}
	for _, format := range cellDateFormats {
		if t, err := time.Parse(format, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var (
	usNumberPattern       = regexp.MustCompile(`^-?[\d,]+\.\d+$`)
	thousandsIntPattern   = regexp.MustCompile(`^-?\d{1,3}(?:,\d{3})+$`)
	europeanNumberPattern = regexp.MustCompile(`^-?[\d.]+,\d+$`)
	plainNumberPattern    = regexp.MustCompile(`^-?\d+\.?\d*$`)
)

// parseCellNumber interprets a cell as a number. It understands US
// grouping (1,234.56), European grouping (1.234,56), comma-grouped
// integers (140,000) and plain numbers. Internal spaces are ignored.
func parseCellNumber(value string) (float64, bool) {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if value == "" {
		return 0, false
	}

	// Strict comma grouping must win over the European-decimal form:
	// "140,000" is one hundred forty thousand, not 140.0.
	switch {
	case usNumberPattern.MatchString(value):
		value = strings.ReplaceAll(value, ",", "")
	case thousandsIntPattern.MatchString(value):
		value = strings.ReplaceAll(value, ",", "")
	case europeanNumberPattern.MatchString(value):
		value = strings.ReplaceAll(value, ".", "")
		value = strings.ReplaceAll(value, ",", ".")
	case plainNumberPattern.MatchString(value):
		// Already parseable as-is.
	default:
		return 0, false
	}

	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
