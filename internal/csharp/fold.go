package csharp

import (
	sitter "github.com/smacker/go-tree-sitter"

	"globalint/internal/symbols"
)

// maxFoldDepth bounds chains of locals and readonly fields.
const maxFoldDepth = 8

// ConstantValueOf folds an argument or default value to a well-known member.
func (p *Program) ConstantValueOf(expr symbols.Expr) (symbols.WellKnownMember, bool) {
	e, ok := expr.(nodeExpr)
	if !ok || e.node == nil || e.scope == nil {
		return symbols.WellKnownMember{}, false
	}
	return p.fold(e.scope, e.node, 0)
}

func (p *Program) fold(sc *scope, n *sitter.Node, depth int) (symbols.WellKnownMember, bool) {
	n = unwrap(n)
	if n == nil || depth > maxFoldDepth {
		return symbols.WellKnownMember{}, false
	}
	src := sc.file.src
	switch n.Type() {
	case "string_literal", "verbatim_string_literal", "raw_string_literal":
		if v, ok := stringLiteralValue(n, src); ok {
			return symbols.StringLiteral(v), true
		}
	case "identifier":
		name := n.Content(src)
		if l, ok := sc.lookup(name); ok {
			if l.foldable() {
				return p.fold(sc, l.init, depth+1)
			}
			return symbols.WellKnownMember{}, false
		}
		if _, ok := sc.param(name); ok {
			return symbols.WellKnownMember{}, false
		}
		if fd, ok := p.fieldInScope(sc.owner, name); ok {
			return p.foldField(sc, fd, depth)
		}
	case "member_access_expression":
		return p.foldMember(sc, n, depth)
	case "object_creation_expression":
		typ := p.resolveTypeNode(sc.owner, sc.file, field(n, "type"))
		if typ == "" {
			return symbols.WellKnownMember{}, false
		}
		return p.withFirstArg(sc, symbols.Construction(typ, nil), n, depth), true
	case "invocation_expression":
		// factories such as CultureInfo.GetCultureInfo("") and StringComparer.Create(culture, true)
		fn := field(n, "function")
		if fn == nil || fn.Type() != "member_access_expression" {
			return symbols.WellKnownMember{}, false
		}
		typ, static := p.receiver(sc, field(fn, "expression"))
		name := simpleName(field(fn, "name"), src)
		if !static || typ == "" || name == "" {
			return symbols.WellKnownMember{}, false
		}
		return p.withFirstArg(sc, symbols.Member(typ, name), n, depth), true
	}
	return symbols.WellKnownMember{}, false
}

func (p *Program) foldMember(sc *scope, n *sitter.Node, depth int) (symbols.WellKnownMember, bool) {
	name := simpleName(field(n, "name"), sc.file.src)
	typ, static := p.receiver(sc, field(n, "expression"))
	if typ == "" || name == "" {
		return symbols.WellKnownMember{}, false
	}
	if static {
		if fd, ok := p.fieldOf(typ, name, 0); ok && fd.immutable && fd.init != nil {
			return p.foldField(sc, fd, depth)
		}
		return symbols.Member(typ, name), true
	}
	// instance members such as Thread.CurrentThread.CurrentCulture
	return symbols.WellKnownMember{Type: typ, Name: name}, true
}

// foldField follows const, static readonly and get-only static property
// initializers in the scope of their declaring type.
func (p *Program) foldField(sc *scope, fd *fieldDecl, depth int) (symbols.WellKnownMember, bool) {
	if !fd.immutable || fd.init == nil {
		return symbols.WellKnownMember{}, false
	}
	owner := sc.owner
	if decl := p.declaringType(sc.owner, fd); decl != nil {
		owner = decl
	}
	return p.fold(newScope(owner, fd.file, nil, sc.caller), fd.init, depth+1)
}

func (p *Program) declaringType(from *userType, fd *fieldDecl) *userType {
	for _, t := range p.types {
		if t.fields[fd.name] == fd {
			return t
		}
	}
	return from
}

// withFirstArg attaches the folded first argument of a construction or factory.
func (p *Program) withFirstArg(sc *scope, m symbols.WellKnownMember, call *sitter.Node, depth int) symbols.WellKnownMember {
	list := field(call, "arguments")
	if list == nil {
		list = childOfType(call, "argument_list")
	}
	args := childrenOfType(list, "argument")
	if len(args) == 0 {
		return m
	}
	first := unwrap(argumentValue(args[0]))
	if v, ok := stringLiteralValue(first, sc.file.src); ok {
		return m.WithLiteral(v)
	}
	if arg, ok := p.fold(sc, first, depth+1); ok {
		m.Arg = &arg
	}
	return m
}
