package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalint/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimitAndDropped(t *testing.T) {
	b := NewBag(2)
	require.True(t, b.Add(New(SevWarning, LocSpecifyFormatProvider, span(0, 0, 1), "a")))
	require.True(t, b.Add(New(SevWarning, LocSpecifyFormatProvider, span(0, 1, 2), "b")))
	assert.False(t, b.Add(New(SevWarning, LocSpecifyFormatProvider, span(0, 2, 3), "c")))
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, b.Dropped())
	assert.False(t, b.HasErrors())
	assert.Equal(t, map[Severity]int{SevWarning: 2}, b.Counts())

	assert.Zero(t, NewBag(-5).Add(New(SevInfo, LocInfo, span(0, 0, 0), "x")), "negative limit keeps nothing")
}

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, LocUseOrdinalComparison, span(1, 5, 9), "z"))
	b.Add(New(SevWarning, LocSpecifyFormatProvider, span(0, 5, 9), "y"))
	b.Add(New(SevError, LocSpecifyStringComparison, span(0, 5, 9), "x"))
	b.Add(New(SevWarning, LocSpecifyFormatProvider, span(0, 1, 2), "w"))
	b.Sort()

	var got []string
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	assert.Equal(t, []string{"w", "x", "y", "z"}, got)
}

func TestBagDedupCollapsesDefaultArgumentRepeats(t *testing.T) {
	decl := span(3, 40, 73)
	b := NewBag(10)
	for range 3 {
		b.Add(New(SevWarning, LocUseOrdinalComparison, decl, "default is invariant"))
	}
	b.Add(New(SevWarning, LocUseOrdinalComparison, span(3, 100, 120), "call site"))
	b.Dedup()
	assert.Equal(t, 2, b.Len())
}

func TestBagFilterTruncate(t *testing.T) {
	a := NewBag(3)
	a.Add(New(SevInfo, ObsTimings, span(0, 0, 0), "timings"))
	a.Add(New(SevError, IOLoadFileError, span(1, 0, 0), "io"))
	a.Add(New(SevWarning, LocSpecifyFormatProvider, span(1, 0, 1), "r1"))
	assert.True(t, a.HasErrors())

	a.Filter(func(d Diagnostic) bool { return d.Code != ObsTimings })
	assert.Equal(t, 2, a.Len())

	a.Truncate(1)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, a.Dropped())

	a.Transform(func(d Diagnostic) Diagnostic {
		d.Severity = SevWarning
		return d
	})
	assert.False(t, a.HasErrors())
}

func TestCodes(t *testing.T) {
	assert.Equal(t, "LOC1004", LocUseOrdinalComparison.ID())
	assert.Equal(t, "R3-use-ordinal-comparison", LocUseOrdinalComparison.Name())
	assert.Equal(t, "IO4001", IOLoadFileError.Name())
	assert.Equal(t, "[CFG5001]: Invalid configuration", CfgInvalid.String())
	assert.Equal(t, "E0000", Code(9999).ID())

	for _, code := range RuleCodes() {
		back, ok := CodeForRule(code.Rule())
		require.True(t, ok)
		assert.Equal(t, code, back)
	}
	_, ok := CodeForRule("R9")
	assert.False(t, ok)
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]Severity{"error": SevError, "Warning": SevWarning, "warn": SevWarning, " info ": SevInfo} {
		got, err := ParseSeverity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestDedupReporterAndBuilder(t *testing.T) {
	bag := NewBag(10)
	rep := NewDedupReporter(BagReporter{Bag: bag})

	NewReportBuilder(rep, SevWarning, LocSpecifyStringComparison, span(0, 1, 2), "msg").WithNote(span(0, 3, 4), "use X").Emit()
	b := NewReportBuilder(rep, SevWarning, LocSpecifyStringComparison, span(0, 1, 2), "msg")
	assert.Equal(t, "msg", b.Diagnostic().Message)
	b.Emit()
	b.Emit()
	NewReportBuilder(rep, SevError, LocSpecifyStringComparison, span(0, 1, 2), "msg").Emit()

	require.Equal(t, 1, bag.Len(), "same code+span+message is reported once")
	assert.Len(t, bag.Items()[0].Notes, 1)
	assert.Equal(t, 2, rep.Suppressed())

	var nilBuilder *ReportBuilder
	assert.Nil(t, nilBuilder.WithNote(span(0, 0, 0), "x"))
	nilBuilder.Emit()
	NopReporter{}.Report(UnknownCode, SevInfo, span(0, 0, 0), "", nil)

	var got []Code
	fn := ReporterFunc(func(code Code, _ Severity, _ source.Span, _ string, _ []Note) { got = append(got, code) })
	NewReportBuilder(fn, SevInfo, LocInfo, span(0, 0, 1), "x").Emit()
	assert.Equal(t, []Code{LocInfo}, got)
}
