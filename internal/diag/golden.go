package diag

import (
	"cmp"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"globalint/internal/source"
)

// textLine is one rendered entry: a diagnostic or one of its notes.
type textLine struct {
	kind string
	code string
	loc  location
	msg  string
}

type location struct {
	path string
	line uint32
	col  uint32
}

// FormatGoldenDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set) in a stable order. Entries located in generated C#
// (obj/, bin/, *.g.cs, *.Designer.cs) are left out.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return renderLines(diags, fs, includeNotes, true)
}

// FormatShortDiagnostics is the CLI variant of FormatGoldenDiagnostics that
// keeps generated sources.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	return renderLines(diags, fs, includeNotes, false)
}

func renderLines(diags []Diagnostic, fs *source.FileSet, includeNotes, dropGenerated bool) string {
	if fs == nil {
		return ""
	}
	var lines []textLine
	add := func(kind string, c Code, sp source.Span, msg string) {
		loc, ok := locate(fs, sp)
		if !ok || (dropGenerated && generatedSource(loc.path)) {
			return
		}
		lines = append(lines, textLine{kind: kind, code: c.Name(), loc: loc, msg: oneLine(msg)})
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}

	slices.SortStableFunc(lines, func(a, b textLine) int {
		return cmp.Or(
			cmp.Compare(a.loc.path, b.loc.path),
			cmp.Compare(a.loc.line, b.loc.line),
			cmp.Compare(a.loc.col, b.loc.col),
			cmp.Compare(a.kind, b.kind),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.msg, b.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.kind, l.code, l.loc.path, l.loc.line, l.loc.col, l.msg)
	}
	return strings.Join(out, "\n")
}

func locate(fs *source.FileSet, sp source.Span) (location, bool) {
	if !fs.Has(sp.File) {
		return location{}, false
	}
	f := fs.Get(sp.File)
	if int(sp.Start) > len(f.Content) {
		return location{}, false
	}
	start, _ := fs.Resolve(sp)
	p := filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return location{path: p, line: start.Line, col: start.Col}, true
}

var generatedPatterns = []string{"*.g.cs", "*.Designer.cs"}

// generatedSource: build output directories or designer/source-generator files.
func generatedSource(p string) bool {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for _, dir := range parts[:len(parts)-1] {
		if dir == "obj" || dir == "bin" {
			return true
		}
	}
	base := parts[len(parts)-1]
	for _, pat := range generatedPatterns {
		if ok, _ := path.Match(pat, base); ok {
			return true
		}
	}
	return false
}

func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
