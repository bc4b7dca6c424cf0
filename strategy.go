package pdfxlsx

import (
	"github.com/pkg/errors"
)

// attempt is one step of an extraction plan.
type attempt int

const (
	attemptTables attempt = iota
	attemptText
)

// engine orchestrates extraction for a single document. The three modes
// share one transition mechanism: an ordered attempt plan. The fallback
// direction is fixed tables→text and never reversed; table detection is
// the expensive, precise path and runs first when it runs at all.
type engine struct {
	tables TableDetector
	text   TextExtractor
	config Config
}

// plan returns the ordered extraction attempts for the configured mode.
func (e *engine) plan() []attempt {
	switch e.config.Mode {
	case ModeText:
		return []attempt{attemptText}
	case ModeTables:
		if e.config.TableFallback {
			return []attempt{attemptTables, attemptText}
		}
		return []attempt{attemptTables}
	default:
		return []attempt{attemptTables, attemptText}
	}
}

// run executes the plan against one document. Capability-level failures
// never escape raw: a failed attempt either falls through to the next one
// or terminates with a taxonomy error. Exactly one outcome is consumed
// per attempt; partial results from different attempts are never mixed.
func (e *engine) run(doc Document, pages PageSet) (*ExtractionResult, error) {
	plan := e.plan()

	for i, step := range plan {
		last := i == len(plan)-1

		switch step {
		case attemptTables:
			out := e.tables.DetectTables(doc, pages, e.config.Detection, e.config.MultiTable)

			switch out.Status {
			case OutcomeSuccess:
				grids := nonEmptyGrids(normalizeTables(out.Tables, !e.config.SeparateSheets))
				if len(grids) > 0 {
					return &ExtractionResult{Source: SourceTables, Grids: grids}, nil
				}
				// Detected tables normalized to nothing; same as empty.
			case OutcomeFailed:
				if last {
					return nil, errors.Wrapf(ErrNoTablesFound, "table detection failed: %v", out.Err)
				}
			}
			if last {
				return nil, ErrNoTablesFound
			}
			// Tables exhausted; fall through to the text attempt.

		case attemptText:
			out := e.text.ExtractText(doc, pages, e.config.TextBy, e.config.SkipBlankLines)

			switch out.Status {
			case OutcomeFailed:
				return nil, errors.Wrapf(ErrExtractionFailed, "text extraction failed: %v", out.Err)
			case OutcomeEmpty:
				return &ExtractionResult{Source: SourceNone}, nil
			}

			grids := nonEmptyGrids(normalizeText(out.Blocks, e.config.Separator))
			if len(grids) == 0 {
				return &ExtractionResult{Source: SourceNone}, nil
			}
			return &ExtractionResult{Source: SourceText, Grids: grids}, nil
		}
	}

	return &ExtractionResult{Source: SourceNone}, nil
}
