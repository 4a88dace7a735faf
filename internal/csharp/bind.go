package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"globalint/internal/symbols"
)

type binding struct {
	sig      *symbols.MethodSignature
	slots    []symbols.Argument
	score    int
	expanded bool
	omitted  int
}

// better implements the tie-breaks of overload resolution this model needs:
// higher score, then the normal form of a params method, then fewer
// defaulted parameters.
func (b binding) better(o binding) bool {
	if b.score != o.score {
		return b.score > o.score
	}
	if b.expanded != o.expanded {
		return !b.expanded
	}
	return b.omitted < o.omitted
}

func (b binding) tied(o binding) bool {
	return b.score == o.score && b.expanded == o.expanded && b.omitted == o.omitted
}

// choose picks the single best candidate; ties leave the call unresolved.
func (p *Program) choose(sc *scope, cands []*symbols.MethodSignature, args []callArg) (*symbols.MethodSignature, []symbols.Argument, bool) {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = p.typeOf(sc, a.node)
	}
	var best binding
	found, ambiguous := false, false
	for _, sig := range cands {
		for _, expand := range []bool{false, true} {
			b, ok := p.bind(sc, sig, args, types, expand)
			if !ok {
				continue
			}
			switch {
			case !found || b.better(best):
				best, found, ambiguous = b, true, false
			case b.tied(best) && b.sig != best.sig:
				ambiguous = true
			}
		}
	}
	if !found || ambiguous {
		return nil, nil, false
	}
	return best.sig, best.slots, true
}

func (p *Program) bind(sc *scope, sig *symbols.MethodSignature, args []callArg, types []string, expand bool) (binding, bool) {
	params := sig.Params
	last := len(params) - 1
	if expand && (last < 0 || !params[last].IsParams) {
		return binding{}, false
	}
	b := binding{sig: sig, slots: make([]symbols.Argument, len(params)), expanded: expand}
	filled := make([]bool, len(params))
	var extra []*sitter.Node
	pos := 0
	for i, a := range args {
		idx := pos
		if a.name != "" {
			idx = paramIndex(params, a.name)
			if idx < 0 || filled[idx] {
				return binding{}, false
			}
		} else {
			pos++
		}
		if idx >= len(params) && !(expand && last >= 0) {
			return binding{}, false
		}
		if expand && idx >= last && a.name == "" {
			elem := strings.TrimSuffix(params[last].Type, "[]")
			score := p.fit(types[i], elem)
			if score == 0 {
				return binding{}, false
			}
			b.score += score
			extra = append(extra, a.node)
			filled[last] = true
			continue
		}
		score := p.fit(types[i], params[idx].Type)
		if score == 0 {
			return binding{}, false
		}
		b.score += score
		b.slots[idx] = symbols.Explicit(p.expr(sc.file, a.node, sc))
		filled[idx] = true
	}
	for i, prm := range params {
		if filled[i] {
			continue
		}
		switch {
		case prm.Optional:
			b.slots[i] = symbols.OmittedArg
			b.omitted++
		case expand && i == last:
			// empty params array
			b.slots[i] = symbols.OmittedArg
		default:
			return binding{}, false
		}
	}
	if len(extra) > 0 {
		b.slots[last] = symbols.Explicit(p.cover(sc, extra))
	}
	return b, true
}

// cover builds one expression spanning the arguments of an expanded params array.
func (p *Program) cover(sc *scope, nodes []*sitter.Node) symbols.Expr {
	if len(nodes) == 1 {
		return p.expr(sc.file, nodes[0], sc)
	}
	first, lastNode := nodes[0], nodes[len(nodes)-1]
	span := spanOf(sc.file, first).Cover(spanOf(sc.file, lastNode))
	return nodeExpr{scope: sc, covers: span, text: string(sc.file.src[span.Start:span.End])}
}

func paramIndex(params []symbols.Parameter, name string) int {
	for i, prm := range params {
		if prm.Name == name {
			return i
		}
	}
	return -1
}

// typeOf infers the static type of an expression; "" when unknown.
func (p *Program) typeOf(sc *scope, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	src := sc.file.src
	switch n.Type() {
	case "cast_expression":
		return p.resolveTypeNode(sc.owner, sc.file, field(n, "type"))
	case "parenthesized_expression":
		return p.typeOf(sc, unwrap(n))
	case "string_literal", "verbatim_string_literal", "raw_string_literal", "interpolated_string_expression":
		return symbols.TypeString
	case "character_literal":
		return "System.Char"
	case "boolean_literal":
		return symbols.TypeBool
	case "null_literal":
		return nullType
	case "integer_literal":
		text := strings.ToLower(n.Content(src))
		switch {
		case strings.HasSuffix(text, "ul") || strings.HasSuffix(text, "lu"):
			return "System.UInt64"
		case strings.HasSuffix(text, "l"):
			return "System.Int64"
		case strings.HasSuffix(text, "u"):
			return "System.UInt32"
		}
		return "System.Int32"
	case "real_literal":
		text := strings.ToLower(n.Content(src))
		switch {
		case strings.HasSuffix(text, "m"):
			return "System.Decimal"
		case strings.HasSuffix(text, "f"):
			return "System.Single"
		}
		return "System.Double"
	case "this_expression", "this":
		if sc.owner != nil {
			return sc.owner.name
		}
	case "identifier":
		name := n.Content(src)
		if l, ok := sc.lookup(name); ok {
			return p.localType(sc, l)
		}
		if prm, ok := sc.param(name); ok {
			return prm.Type
		}
		if fd, ok := p.fieldInScope(sc.owner, name); ok {
			return fd.typ
		}
	case "member_access_expression":
		return p.memberType(sc, n)
	case "invocation_expression", "object_creation_expression":
		if n.Type() == "object_creation_expression" {
			return p.resolveTypeNode(sc.owner, sc.file, field(n, "type"))
		}
		if sig, _, ok := p.resolveNode(sc, n); ok {
			return sig.ReturnType
		}
	case "conditional_expression":
		return p.typeOf(sc, field(n, "consequence"))
	case "binary_expression":
		left, right := p.typeOf(sc, field(n, "left")), p.typeOf(sc, field(n, "right"))
		op := textOf(field(n, "operator"), src)
		switch {
		case op == "+" && (left == symbols.TypeString || right == symbols.TypeString):
			return symbols.TypeString
		case op == "==" || op == "!=" || op == "<" || op == ">" || op == "<=" || op == ">=" || op == "&&" || op == "||":
			return symbols.TypeBool
		case op == "??":
			return left
		case left == right:
			return left
		}
	case "element_access_expression":
		if t := p.typeOf(sc, field(n, "expression")); strings.HasSuffix(t, "[]") {
			return strings.TrimSuffix(t, "[]")
		}
	case "array_creation_expression":
		return p.resolveTypeNode(sc.owner, sc.file, field(n, "type"))
	}
	return ""
}

// memberType types X.Name: properties, fields and enum members.
func (p *Program) memberType(sc *scope, n *sitter.Node) string {
	name := simpleName(field(n, "name"), sc.file.src)
	recv := field(n, "expression")
	typ, static := p.receiver(sc, recv)
	if typ == "" || name == "" {
		return ""
	}
	if fd, ok := p.fieldOf(typ, name, 0); ok {
		return fd.typ
	}
	if ut, ok := p.types[typ]; ok && ut.members[name] {
		return typ
	}
	ct, ok := p.cat.Lookup(strings.TrimSuffix(typ, "?"))
	if !ok {
		return ""
	}
	if static {
		if t, ok := ct.StaticProperties[name]; ok {
			return t
		}
		if ct.IsEnumMember(name) {
			return ct.Name
		}
		return ""
	}
	return ct.Properties[name]
}
