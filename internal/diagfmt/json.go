package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"globalint/internal/diag"
	"globalint/internal/source"
)

// maxSnippet bounds the source text copied into a location.
const maxSnippet = 200

// Position is a 1-based line and byte column.
type Position struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// LocationJSON points at a span; positions and text come with IncludePositions.
type LocationJSON struct {
	File  string    `json:"file"`
	Bytes [2]uint32 `json:"bytes"`
	Start *Position `json:"start,omitempty"`
	End   *Position `json:"end,omitempty"`
	Text  string    `json:"text,omitempty"`
}

// NoteJSON is a secondary location: the suggested overload or a caller.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Rule     string       `json:"rule,omitempty"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written by JSON.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
	// ByRule counts the written diagnostics per locale rule.
	ByRule map[string]int `json:"by_rule,omitempty"`
}

type locator struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (l locator) at(sp source.Span) LocationJSON {
	loc := LocationJSON{Bytes: [2]uint32{sp.Start, sp.End}}
	f := fileOf(l.fs, sp)
	if f == nil {
		return loc
	}
	loc.File = formatPath(l.fs, f, l.mode)
	if l.positions {
		start, end := l.fs.Resolve(sp)
		loc.Start = &Position{Line: start.Line, Col: start.Col}
		loc.End = &Position{Line: end.Line, Col: end.Col}
		if sp.Len() <= maxSnippet {
			loc.Text = l.fs.Text(sp)
		}
	}
	return loc
}

// BuildDiagnosticsOutput assembles the JSON document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	keep := len(items)
	if opts.Max > 0 {
		keep = min(keep, opts.Max)
	}
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}

	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, keep),
		Dropped:     bag.Dropped() + len(items) - keep,
	}
	for _, d := range items[:keep] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Rule:     d.Code.Rule(),
			Message:  d.Message,
			Location: loc.at(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: loc.at(n.Span)})
			}
		}
		if dj.Rule != "" {
			if out.ByRule == nil {
				out.ByRule = make(map[string]int)
			}
			out.ByRule[dj.Rule]++
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics as one indented document. Extra keys are
// merged at the top level unless they collide with the document's own.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	var doc any = BuildDiagnosticsOutput(bag, fs, opts)
	if len(opts.Extra) > 0 {
		merged, err := mergeExtra(doc, opts.Extra)
		if err != nil {
			return err
		}
		doc = merged
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func mergeExtra(doc any, extra map[string]any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, taken := root[k]; taken {
			continue
		}
		if root[k], err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("extra %q: %w", k, err)
		}
	}
	return root, nil
}
