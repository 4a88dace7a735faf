package csharp

import (
	sitter "github.com/smacker/go-tree-sitter"

	"globalint/internal/source"
	"globalint/internal/symbols"
)

// Call is an invocation or object creation found in a member body.
type Call struct {
	node  *sitter.Node
	scope *scope
}

// Span covers the whole call expression.
func (c *Call) Span() source.Span {
	return spanOf(c.scope.file, c.node)
}

// Text returns the call source.
func (c *Call) Text() string {
	return c.node.Content(c.scope.file.src)
}

// Caller is the display name of the enclosing member.
func (c *Call) Caller() string {
	return c.scope.caller
}

// topLevelCaller names the synthesized entry point of top-level statements.
const topLevelCaller = "Program.<Main>$(string[])"

func (p *Program) collectCalls(f *fileUnit) {
	root := f.tree.RootNode()
	top := newScope(nil, f, nil, topLevelCaller)
	for _, c := range namedChildren(root) {
		if c.Type() == "global_statement" {
			top.scan(c)
		}
	}
	for _, c := range namedChildren(root) {
		if c.Type() == "global_statement" {
			p.visit(f, c, nil, top)
			continue
		}
		p.visit(f, c, nil, nil)
	}
}

func (p *Program) visit(f *fileUnit, n *sitter.Node, owner *userType, sc *scope) {
	if n == nil {
		return
	}
	if t, ok := p.typeDecl[keyOf(f, n)]; ok && typeDeclarations[n.Type()] != "" {
		owner, sc = t, nil
	}
	switch n.Type() {
	case "method_declaration", "constructor_declaration", "operator_declaration", "conversion_operator_declaration", "destructor_declaration":
		if owner == nil {
			break
		}
		sig := p.decls[keyOf(f, n)]
		caller := symbols.DisplayType(owner.name) + "." + textOf(field(n, "name"), f.src)
		if sig != nil {
			caller = sig.String()
		}
		sc = newScope(owner, f, sig, caller)
		// parameter defaults are not part of the body
		parts := distinct(
			childOfType(n, "constructor_initializer"),
			childOfType(n, "arrow_expression_clause"),
			field(n, "body"),
		)
		for _, part := range parts {
			sc.scan(part)
		}
		for _, part := range parts {
			p.visit(f, part, owner, sc)
		}
		return
	case "field_declaration", "property_declaration", "event_field_declaration", "indexer_declaration", "event_declaration":
		if owner == nil {
			break
		}
		name := textOf(field(n, "name"), f.src)
		if name == "" {
			if decl := childOfType(n, "variable_declaration"); decl != nil {
				if vs := childrenOfType(decl, "variable_declarator"); len(vs) > 0 {
					name = declaratorName(vs[0], f.src)
				}
			}
		}
		sc = newScope(owner, f, nil, symbols.DisplayType(owner.name)+"."+name)
		sc.scan(n)
	case "invocation_expression", "object_creation_expression":
		if sc != nil {
			f.calls = append(f.calls, &Call{node: n, scope: sc})
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		p.visit(f, n.NamedChild(i), owner, sc)
	}
}

// distinct drops nil nodes and nodes reachable under two names.
func distinct(nodes ...*sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		dup := false
		for _, seen := range out {
			if seen.StartByte() == n.StartByte() && seen.Type() == n.Type() {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, n)
		}
	}
	return out
}
