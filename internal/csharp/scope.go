package csharp

import (
	sitter "github.com/smacker/go-tree-sitter"

	"globalint/internal/symbols"
)

// scope is the body of one member: its parameters and locals.
type scope struct {
	owner  *userType
	file   *fileUnit
	method *symbols.MethodSignature
	caller string
	locals map[string]*local
}

type local struct {
	typ      string
	typeNode *sitter.Node
	init     *sitter.Node
	assigns  int
	// opaque locals come from patterns, lambdas and out arguments and never fold.
	opaque    bool
	inferring bool
	inferred  bool
}

func newScope(owner *userType, f *fileUnit, method *symbols.MethodSignature, caller string) *scope {
	return &scope{owner: owner, file: f, method: method, caller: caller, locals: make(map[string]*local)}
}

func (s *scope) param(name string) (symbols.Parameter, bool) {
	if s == nil || s.method == nil {
		return symbols.Parameter{}, false
	}
	for _, prm := range s.method.Params {
		if prm.Name == name {
			return prm, true
		}
	}
	return symbols.Parameter{}, false
}

func (s *scope) lookup(name string) (*local, bool) {
	if s == nil || s.locals == nil {
		return nil, false
	}
	l, ok := s.locals[name]
	return l, ok
}

func (s *scope) declare(name string, l *local) {
	if prev, dup := s.locals[name]; dup {
		// shadowed or redeclared in sibling blocks: keep the name but stop folding
		prev.opaque = true
		if prev.typeNode == nil && prev.typ == "" {
			prev.typeNode = l.typeNode
		}
		return
	}
	s.locals[name] = l
}

// scan records locals and writes to them.
func (s *scope) scan(n *sitter.Node) {
	if n == nil {
		return
	}
	src := s.file.src
	switch n.Type() {
	case "variable_declaration":
		typeNode := field(n, "type")
		for _, v := range childrenOfType(n, "variable_declarator") {
			if name := declaratorName(v, src); name != "" {
				s.declare(name, &local{typeNode: typeNode, init: initializerOf(v)})
			}
		}
	case "declaration_expression":
		if name := textOf(field(n, "name"), src); name != "" {
			s.declare(name, &local{typeNode: field(n, "type"), opaque: true})
		}
	case "foreach_statement":
		if name := field(n, "left"); name != nil && name.Type() == "identifier" {
			s.declare(name.Content(src), &local{typeNode: field(n, "type"), opaque: true})
		}
	case "catch_declaration":
		if name := field(n, "name"); name != nil {
			s.declare(name.Content(src), &local{typeNode: field(n, "type"), opaque: true})
		}
	case "parameter":
		// lambda and local function parameters
		if name := textOf(field(n, "name"), src); name != "" {
			s.declare(name, &local{typeNode: field(n, "type"), opaque: true})
		}
	case "lambda_expression":
		if params := field(n, "parameters"); params != nil && params.Type() == "identifier" {
			s.declare(params.Content(src), &local{opaque: true})
		}
	case "assignment_expression":
		s.written(field(n, "left"))
	case "prefix_unary_expression", "postfix_unary_expression":
		if text := n.Content(src); len(text) > 2 && (hasIncDec(text)) {
			for _, c := range namedChildren(n) {
				s.written(c)
			}
		}
	case "argument":
		// ref and out arguments may be written by the callee
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil && (c.Type() == "ref" || c.Type() == "out") {
				s.written(argumentValue(n))
			}
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		s.scan(n.NamedChild(i))
	}
}

func hasIncDec(text string) bool {
	return len(text) >= 2 && (text[:2] == "++" || text[:2] == "--" ||
		text[len(text)-2:] == "++" || text[len(text)-2:] == "--")
}

func (s *scope) written(target *sitter.Node) {
	target = unwrap(target)
	if target == nil || target.Type() != "identifier" {
		return
	}
	if l, ok := s.locals[target.Content(s.file.src)]; ok {
		l.assigns++
	}
}

// localType returns the declared or inferred type of a local.
func (p *Program) localType(s *scope, l *local) string {
	if l.inferred || l.inferring {
		return l.typ
	}
	l.inferring = true
	defer func() { l.inferring = false }()
	typ := p.resolveTypeNode(s.owner, s.file, l.typeNode)
	if typ == "" && l.init != nil {
		typ = p.typeOf(s, l.init)
	}
	l.typ = typ
	l.inferred = true
	return typ
}

// foldable reports whether a local is assigned exactly once, at its declaration.
func (l *local) foldable() bool {
	return !l.opaque && l.init != nil && l.assigns == 0
}
