package snapshot

import (
	"globalint/internal/source"
	"globalint/internal/symbols"
)

// Export captures every resolvable call of unit, the overload families of
// their targets and the constants their arguments fold to.
// files fixes the snapshot file order; withContent embeds file text.
func Export(fs *source.FileSet, files []source.FileID, unit symbols.Unit, withContent bool) *Snapshot {
	x := exporter{
		unit:   unit,
		snap:   &Snapshot{Version: CurrentVersion},
		fileIx: make(map[source.FileID]int, len(files)),
		sigIx:  make(map[*symbols.MethodSignature]int),
	}
	for i, id := range files {
		f := fs.Get(id)
		file := File{Path: f.Path}
		if withContent {
			content := string(f.Content)
			file.Content = &content
		}
		x.snap.Files = append(x.snap.Files, file)
		x.fileIx[id] = i
	}
	for _, call := range unit.Calls() {
		site, ok := unit.Resolve(call)
		if !ok || site.Method == nil {
			continue
		}
		if _, known := x.fileIx[site.Span.File]; !known {
			continue
		}
		method := x.signature(site.Method)
		for _, sib := range unit.SiblingsOf(site.Method) {
			x.signature(sib)
		}
		c := Call{Method: method, Caller: site.Caller, Span: x.span(site.Span)}
		for i := range site.Method.Params {
			arg := site.Arg(i)
			if arg.Omitted() {
				c.Args = append(c.Args, nil)
				continue
			}
			c.Args = append(c.Args, x.expr(arg.Expr))
		}
		x.snap.Calls = append(x.snap.Calls, c)
	}
	return x.snap
}

type exporter struct {
	unit   symbols.Unit
	snap   *Snapshot
	fileIx map[source.FileID]int
	sigIx  map[*symbols.MethodSignature]int
}

func (x *exporter) span(sp source.Span) Span {
	return Span{File: x.fileIx[sp.File], Start: sp.Start, End: sp.End}
}

func (x *exporter) expr(e symbols.Expr) *Expr {
	out := &Expr{Text: e.Text(), Span: x.span(e.Span())}
	if v, ok := x.unit.ConstantValueOf(e); ok {
		out.Value = memberOf(v)
	}
	return out
}

func memberOf(m symbols.WellKnownMember) *Member {
	out := &Member{Type: m.Type, Name: m.Name, Static: m.IsStatic}
	if m.HasLiteral {
		lit := m.Literal
		out.Literal = &lit
	}
	if m.Arg != nil {
		out.Arg = memberOf(*m.Arg)
	}
	return out
}

func (x *exporter) signature(sig *symbols.MethodSignature) int {
	if i, ok := x.sigIx[sig]; ok {
		return i
	}
	out := Signature{
		ContainingType: sig.ContainingType,
		Family:         sig.Family,
		Name:           sig.Name,
		ReturnType:     sig.ReturnType,
		Static:         sig.IsStatic,
		Constructor:    sig.IsConstructor,
	}
	if _, known := x.fileIx[sig.Decl.File]; known && !sig.Decl.Empty() {
		decl := x.span(sig.Decl)
		out.Decl = &decl
	}
	for _, p := range sig.Params {
		param := Param{Name: p.Name, Type: p.Type, Optional: p.Optional, Params: p.IsParams}
		if p.Default != nil {
			param.Default = x.expr(p.Default)
		}
		out.Params = append(out.Params, param)
	}
	x.sigIx[sig] = len(x.snap.Signatures)
	x.snap.Signatures = append(x.snap.Signatures, out)
	return x.sigIx[sig]
}
