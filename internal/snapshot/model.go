package snapshot

import (
	"globalint/internal/source"
	"globalint/internal/symbols"
)

// Model serves a snapshot through the symbol model contract.
type Model struct {
	files    []source.FileID
	sigs     []*symbols.MethodSignature
	siblings map[string]symbols.SiblingSet
	calls    []*callRef
	snap     *Snapshot
}

type callRef struct {
	index int
	span  source.Span
}

func (c *callRef) Span() source.Span { return c.span }

// expr carries its folded value so ConstantValueOf is a lookup.
type expr struct {
	text  string
	span  source.Span
	value *symbols.WellKnownMember
}

func (e expr) Text() string      { return e.text }
func (e expr) Span() source.Span { return e.span }

// NewModel binds a validated snapshot to the file ids its files were loaded
// under; files[i] is the id of Snapshot.Files[i].
func NewModel(s *Snapshot, files []source.FileID) *Model {
	m := &Model{
		files:    files,
		sigs:     make([]*symbols.MethodSignature, len(s.Signatures)),
		siblings: make(map[string]symbols.SiblingSet),
		snap:     s,
	}
	for i, sig := range s.Signatures {
		ms := &symbols.MethodSignature{
			ContainingType: sig.ContainingType,
			Family:         sig.Family,
			Name:           sig.Name,
			ReturnType:     sig.ReturnType,
			IsStatic:       sig.Static,
			IsConstructor:  sig.Constructor,
		}
		if sig.Decl != nil {
			ms.Decl = m.span(*sig.Decl)
		}
		for _, p := range sig.Params {
			param := symbols.NewParameter(p.Name, p.Type)
			param.Optional = p.Optional
			param.IsParams = p.Params
			if p.Default != nil {
				param.Default = m.expr(p.Default)
			}
			ms.Params = append(ms.Params, param)
		}
		m.sigs[i] = ms
		key := ms.SiblingKey()
		m.siblings[key] = append(m.siblings[key], ms)
	}
	for i, c := range s.Calls {
		m.calls = append(m.calls, &callRef{index: i, span: m.span(c.Span)})
	}
	return m
}

func (m *Model) span(sp Span) source.Span {
	id := source.FileID(0)
	if sp.File < len(m.files) {
		id = m.files[sp.File]
	}
	return source.Span{File: id, Start: sp.Start, End: sp.End}
}

func (m *Model) expr(e *Expr) symbols.Expr {
	out := expr{text: e.Text, span: m.span(e.Span)}
	if e.Value != nil {
		v := e.Value.member()
		out.value = &v
	}
	return out
}

func (mb *Member) member() symbols.WellKnownMember {
	out := symbols.WellKnownMember{Type: mb.Type, Name: mb.Name, IsStatic: mb.Static}
	if mb.Literal != nil {
		out.Literal, out.HasLiteral = *mb.Literal, true
	}
	if mb.Arg != nil {
		arg := mb.Arg.member()
		out.Arg = &arg
	}
	return out
}

// Calls lists the call sites in snapshot order.
func (m *Model) Calls() []symbols.CallExpr {
	out := make([]symbols.CallExpr, len(m.calls))
	for i, c := range m.calls {
		out[i] = c
	}
	return out
}

// CallsIn lists the call sites whose span lies in file.
func (m *Model) CallsIn(file source.FileID) []symbols.CallExpr {
	var out []symbols.CallExpr
	for _, c := range m.calls {
		if c.span.File == file {
			out = append(out, c)
		}
	}
	return out
}

// Resolve returns the recorded target of call.
func (m *Model) Resolve(call symbols.CallExpr) (symbols.CallSite, bool) {
	ref, ok := call.(*callRef)
	if !ok || ref.index >= len(m.snap.Calls) {
		return symbols.CallSite{}, false
	}
	c := m.snap.Calls[ref.index]
	site := symbols.CallSite{
		Method: m.sigs[c.Method],
		Caller: c.Caller,
		Span:   ref.span,
		Args:   make([]symbols.Argument, len(c.Args)),
	}
	for i, a := range c.Args {
		if a == nil {
			site.Args[i] = symbols.OmittedArg
			continue
		}
		site.Args[i] = symbols.Explicit(m.expr(a))
	}
	return site, true
}

// SiblingsOf returns the recorded overloads sharing sig's family and name.
func (m *Model) SiblingsOf(sig *symbols.MethodSignature) symbols.SiblingSet {
	if sig == nil {
		return nil
	}
	return m.siblings[sig.SiblingKey()]
}

// ConstantValueOf returns the value folded by the exporting host.
func (m *Model) ConstantValueOf(e symbols.Expr) (symbols.WellKnownMember, bool) {
	se, ok := e.(expr)
	if !ok || se.value == nil {
		return symbols.WellKnownMember{}, false
	}
	return *se.value, true
}

var _ symbols.Unit = (*Model)(nil)
