package diag

import (
	"slices"
	"strings"
	"testing"

	"globalint/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/src/Program.cs", []byte("a\nb\n"), 0)
	generated := fs.Add("/workspace/obj/Debug/Program.g.cs", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     LocUseOrdinalComparison,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: userFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: generated, Start: 0, End: 0}, Msg: "skip me"},
				{Span: source.Span{File: userFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     LocSpecifyFormatProvider,
			Message:  "another",
			Primary:  source.Span{File: userFile, Start: 2, End: 3},
		},
		{
			Severity: SevWarning,
			Code:     LocSpecifyFormatProvider,
			Message:  "generated",
			Primary:  source.Span{File: generated, Start: 0, End: 1},
		},
	}

	expected := "error R3-use-ordinal-comparison src/Program.cs:1:1 first line second\n" +
		"note R3-use-ordinal-comparison src/Program.cs:2:1 note line\n" +
		"warning R1-specify-IFormatProvider src/Program.cs:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	short := FormatShortDiagnostics(diags, fs, false)
	if want := "warning R1-specify-IFormatProvider obj/Debug/Program.g.cs:1:1 generated"; !slices.Contains(strings.Split(short, "\n"), want) {
		t.Fatalf("short output must keep generated files, got:\n%s", short)
	}
}
