package pdfxlsx

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// fakeDocument stands in for a pdfium handle in engine tests.
type fakeDocument struct {
	pages  int
	closed bool
}

func (d *fakeDocument) PageCount() int { return d.pages }
func (d *fakeDocument) Close() error   { d.closed = true; return nil }

// fakeDetector returns a scripted outcome and counts invocations.
type fakeDetector struct {
	outcome TableOutcome
	calls   int
}

func (f *fakeDetector) DetectTables(Document, PageSet, DetectionMode, bool) TableOutcome {
	f.calls++
	return f.outcome
}

// fakeText returns a scripted outcome and counts invocations.
type fakeText struct {
	outcome TextOutcome
	calls   int
}

func (f *fakeText) ExtractText(Document, PageSet, Granularity, bool) TextOutcome {
	f.calls++
	return f.outcome
}

func tableSuccess() TableOutcome {
	return TableOutcome{
		Status: OutcomeSuccess,
		Tables: []RawTable{{Page: 1, Index: 1, Rows: [][]string{{"a", "b"}}}},
	}
}

func textSuccess() TextOutcome {
	return TextOutcome{
		Status: OutcomeSuccess,
		Blocks: []RawTextBlock{{Page: 1, Line: 1, Text: "hello"}},
	}
}

func newEngine(tables *fakeDetector, text *fakeText, config Config) *engine {
	return &engine{tables: tables, text: text, config: config}
}

func TestEngine_AutoUsesTablesWhenDetected(t *testing.T) {
	tables := &fakeDetector{outcome: tableSuccess()}
	text := &fakeText{outcome: textSuccess()}
	eng := newEngine(tables, text, DefaultConfig())

	result, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.NoError(t, err)
	require.Equal(t, SourceTables, result.Source)
	require.NotEmpty(t, result.Grids)

	// Text extraction must never run when tables were found.
	require.Equal(t, 1, tables.calls)
	require.Zero(t, text.calls)
}

func TestEngine_AutoFallsBackOnEmptyTables(t *testing.T) {
	tables := &fakeDetector{outcome: TableOutcome{Status: OutcomeEmpty}}
	text := &fakeText{outcome: textSuccess()}
	eng := newEngine(tables, text, DefaultConfig())

	result, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.NoError(t, err)
	require.Equal(t, SourceText, result.Source)
	require.Equal(t, 1, text.calls)
}

func TestEngine_AutoFallsBackOnFailedTables(t *testing.T) {
	tables := &fakeDetector{outcome: TableOutcome{
		Status: OutcomeFailed,
		Err:    errors.New("detector dependency unavailable"),
	}}
	text := &fakeText{outcome: textSuccess()}
	eng := newEngine(tables, text, DefaultConfig())

	result, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.NoError(t, err)
	require.Equal(t, SourceText, result.Source)
}

func TestEngine_AutoTablesNormalizingToNothingFallsBack(t *testing.T) {
	// Detection reported success but every table was zero-size.
	tables := &fakeDetector{outcome: TableOutcome{
		Status: OutcomeSuccess,
		Tables: []RawTable{{Page: 1, Index: 1, Rows: [][]string{{}}}},
	}}
	text := &fakeText{outcome: textSuccess()}
	eng := newEngine(tables, text, DefaultConfig())

	result, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.NoError(t, err)
	require.Equal(t, SourceText, result.Source)
	require.Equal(t, 1, text.calls)
}

func TestEngine_AutoEmptyTextIsZeroContent(t *testing.T) {
	tables := &fakeDetector{outcome: TableOutcome{Status: OutcomeEmpty}}
	text := &fakeText{outcome: TextOutcome{Status: OutcomeEmpty}}
	eng := newEngine(tables, text, DefaultConfig())

	result, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.NoError(t, err)
	require.Equal(t, SourceNone, result.Source)
	require.Empty(t, result.Grids)
	require.Equal(t, 1, text.calls)
}

func TestEngine_AutoBothFailed(t *testing.T) {
	tables := &fakeDetector{outcome: TableOutcome{Status: OutcomeFailed, Err: errors.New("boom")}}
	text := &fakeText{outcome: TextOutcome{Status: OutcomeFailed, Err: errors.New("crash")}}
	eng := newEngine(tables, text, DefaultConfig())

	_, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestEngine_TablesModeNoFallback(t *testing.T) {
	tables := &fakeDetector{outcome: TableOutcome{Status: OutcomeEmpty}}
	text := &fakeText{outcome: textSuccess()}

	config := DefaultConfig()
	config.Mode = ModeTables
	eng := newEngine(tables, text, config)

	_, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.ErrorIs(t, err, ErrNoTablesFound)
	require.Zero(t, text.calls)
}

func TestEngine_TablesModeWithFallbackBehavesLikeAuto(t *testing.T) {
	tables := &fakeDetector{outcome: TableOutcome{Status: OutcomeEmpty}}
	text := &fakeText{outcome: textSuccess()}

	config := DefaultConfig()
	config.Mode = ModeTables
	config.TableFallback = true
	eng := newEngine(tables, text, config)

	result, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.NoError(t, err)
	require.Equal(t, SourceText, result.Source)
	require.Equal(t, 1, text.calls)
}

func TestEngine_TextModeNeverDetectsTables(t *testing.T) {
	tables := &fakeDetector{outcome: tableSuccess()}
	text := &fakeText{outcome: textSuccess()}

	config := DefaultConfig()
	config.Mode = ModeText
	eng := newEngine(tables, text, config)

	result, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.NoError(t, err)
	require.Equal(t, SourceText, result.Source)
	require.Zero(t, tables.calls)
}

func TestEngine_TextModeFailure(t *testing.T) {
	tables := &fakeDetector{}
	text := &fakeText{outcome: TextOutcome{Status: OutcomeFailed, Err: errors.New("crash")}}

	config := DefaultConfig()
	config.Mode = ModeText
	eng := newEngine(tables, text, config)

	_, err := eng.run(&fakeDocument{pages: 1}, PageSet{1})
	require.ErrorIs(t, err, ErrExtractionFailed)
}

func TestEngine_SeparateSheetsTagging(t *testing.T) {
	tables := &fakeDetector{outcome: TableOutcome{
		Status: OutcomeSuccess,
		Tables: []RawTable{
			{Page: 1, Index: 1, Rows: [][]string{{"a"}}},
			{Page: 2, Index: 1, Rows: [][]string{{"b"}}},
		},
	}}
	text := &fakeText{}

	config := DefaultConfig()
	config.SeparateSheets = true
	eng := newEngine(tables, text, config)

	result, err := eng.run(&fakeDocument{pages: 2}, PageSet{1, 2})
	require.NoError(t, err)
	require.Len(t, result.Grids, 2)
	require.NotEqual(t, result.Grids[0].Sheet, result.Grids[1].Sheet)
}

func TestPageBlocks_BlankSuppressionNeverIncreasesRows(t *testing.T) {
	texts := []string{
		"a\n\nb\n \nc",
		"\n\n\n",
		"no blanks here",
		"",
	}
	for _, text := range texts {
		with := pageBlocks(text, 1, GranularLine, true)
		without := pageBlocks(text, 1, GranularLine, false)
		require.LessOrEqual(t, len(with), len(without), "text %q", text)
	}
}

func TestPageBlocks_LineNumbersCountOriginalLines(t *testing.T) {
	blocks := pageBlocks("a\n\nb", 3, GranularLine, true)
	require.Len(t, blocks, 2)
	require.Equal(t, 1, blocks[0].Line)
	require.Equal(t, 3, blocks[1].Line)
	require.Equal(t, 3, blocks[0].Page)
}

func TestPageBlocks_PageGranularity(t *testing.T) {
	blocks := pageBlocks("a\nb\nc", 2, GranularPage, false)
	require.Len(t, blocks, 1)
	require.Equal(t, "a\nb\nc", blocks[0].Text)
	require.Zero(t, blocks[0].Line)
}
