package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"globalint/internal/diag"
	"globalint/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgMagenta, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fileOf(fs, d.Primary)
		if f == nil {
			fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.Name()), d.Message)
			continue
		}
		start, end := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(fs, f, opts.PathMode), start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.Name()), d.Message)
		if len(f.Content) > 0 {
			excerpt(w, f, start, end, int(opts.Context), tab, pal)
		}

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fileOf(fs, n.Span)
			if nf == nil {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
				continue
			}
			ns, ne := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), formatPath(fs, nf, opts.PathMode), ns.Line, ns.Col, n.Msg)
			if len(nf.Content) > 0 && (nf.ID != f.ID || ns.Line != start.Line) {
				excerpt(w, nf, ns, ne, 0, tab, pal)
			}
		}
	}
}

func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || !fs.Has(sp.File) {
		return nil
	}
	return fs.Get(sp.File)
}

// excerpt prints the lines of the span plus context, underlining the span.
// Multi-line spans are underlined on their first line only.
func excerpt(w io.Writer, f *source.File, start, end source.LineCol, context, tab int, pal palette) {
	first := max(int(start.Line)-context, 1)
	last := int(start.Line) + context
	gutter := len(fmt.Sprint(last))
	fmt.Fprintf(w, "%s\n", pal.gutter.Sprint(strings.Repeat(" ", gutter+1)+"|"))
	for ln := first; ln <= last; ln++ {
		line := f.Line(uint32(ln))
		if ln > int(start.Line) && line == "" {
			break
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutter, ln), expandTabs(line, tab))
		if ln != int(start.Line) {
			continue
		}
		from := int(start.Col) - 1
		to := len(line)
		if end.Line == start.Line {
			to = int(end.Col) - 1
		}
		from = min(max(from, 0), len(line))
		to = min(max(to, from), len(line))
		pad := runewidth.StringWidth(expandTabs(line[:from], tab))
		width := max(runewidth.StringWidth(expandTabs(line[from:to], tab)), 1)
		marks := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprint(strings.Repeat(" ", gutter+1)+"|"), strings.Repeat(" ", pad), pal.caret.Sprint(marks))
	}
}

func expandTabs(s string, tab int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tab - col%tab
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return sb.String()
}
