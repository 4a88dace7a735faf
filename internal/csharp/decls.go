package csharp

import (
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"globalint/internal/source"
	"globalint/internal/symbols"
)

// userType is a class, struct, interface, record or enum declared in the
// analysed sources.
type userType struct {
	name     string // canonical: namespace and enclosing types included
	simple   string
	ns       string
	outer    *userType
	kind     string
	bases    []typeRef // resolved lazily, base types may be declared later
	file     *fileUnit
	methods  map[string][]*symbols.MethodSignature
	ctors    []*symbols.MethodSignature
	fields   map[string]*fieldDecl
	members  map[string]bool // enum members
	isStatic bool
}

type typeRef struct {
	node *sitter.Node
	file *fileUnit
}

// fieldDecl covers fields, constants and properties.
type fieldDecl struct {
	name     string
	typ      string
	init     *sitter.Node
	file     *fileUnit
	isStatic bool
	// immutable marks const, static readonly and get-only auto properties.
	immutable bool
}

func newUserType(name, simple, ns string, outer *userType, f *fileUnit) *userType {
	return &userType{
		name:    name,
		simple:  simple,
		ns:      ns,
		outer:   outer,
		file:    f,
		methods: make(map[string][]*symbols.MethodSignature),
		fields:  make(map[string]*fieldDecl),
		members: make(map[string]bool),
	}
}

var typeDeclarations = map[string]string{
	"class_declaration":         "class",
	"struct_declaration":        "struct",
	"interface_declaration":     "interface",
	"record_declaration":        "record",
	"record_struct_declaration": "record",
	"enum_declaration":          "enum",
}

// pending members are parsed after every type name is known.
type pendingMember struct {
	owner *userType
	file  *fileUnit
	node  *sitter.Node
}

// collectDecls registers the types of f and returns its members, which
// are declared once every file has contributed its type names.
func (p *Program) collectDecls(f *fileUnit) []pendingMember {
	var pending []pendingMember
	p.walkDecls(f, f.tree.RootNode(), "", nil, &pending)
	return pending
}

func (p *Program) walkDecls(f *fileUnit, n *sitter.Node, ns string, outer *userType, pending *[]pendingMember) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		switch typ := c.Type(); typ {
		case "using_directive":
			if name := usingTarget(c, f.src); name != "" {
				f.usings = append(f.usings, name)
			}
		case "namespace_declaration":
			name := qualify(ns, textOf(field(c, "name"), f.src))
			p.walkDecls(f, bodyOf(c), name, outer, pending)
		case "file_scoped_namespace_declaration":
			// declarations either nest inside the node or follow it
			ns = qualify(ns, textOf(field(c, "name"), f.src))
			p.walkDecls(f, c, ns, outer, pending)
		case "declaration_list":
			p.walkDecls(f, c, ns, outer, pending)
		default:
			kind, ok := typeDeclarations[typ]
			if !ok {
				if outer != nil {
					*pending = append(*pending, pendingMember{owner: outer, file: f, node: c})
				}
				continue
			}
			simple := textOf(field(c, "name"), f.src)
			if simple == "" {
				continue
			}
			canonical := qualify(ns, simple)
			if outer != nil {
				canonical = outer.name + "." + simple
			}
			t, seen := p.types[canonical]
			if !seen {
				// partial declarations merge into one type
				t = newUserType(canonical, simple, ns, outer, f)
				t.kind = kind
				p.types[canonical] = t
				p.simple[simple] = append(p.simple[simple], canonical)
			}
			p.typeDecl[keyOf(f, c)] = t
			t.isStatic = t.isStatic || hasModifier(c, f.src, "static")
			if bl := childOfType(c, "base_list"); bl != nil {
				for _, b := range namedChildren(bl) {
					t.bases = append(t.bases, typeRef{node: b, file: f})
				}
			}
			if kind == "enum" {
				p.declareEnumMembers(t, c)
				continue
			}
			// primary constructors
			if params := field(c, "parameters"); params != nil {
				*pending = append(*pending, pendingMember{owner: t, file: f, node: c})
			}
			if body := bodyOf(c); body != nil {
				p.walkDecls(f, body, ns, t, pending)
			}
		}
	}
}

func bodyOf(n *sitter.Node) *sitter.Node {
	if b := field(n, "body"); b != nil {
		return b
	}
	return childOfType(n, "declaration_list", "enum_member_declaration_list")
}

func usingTarget(n *sitter.Node, src []byte) string {
	// aliases (using X = Y;) are not namespace imports
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.Type() == "=" {
			return ""
		}
	}
	named := namedChildren(n)
	for i := len(named) - 1; i >= 0; i-- {
		switch named[i].Type() {
		case "identifier", "qualified_name":
			return named[i].Content(src)
		}
	}
	return ""
}

func qualify(ns, name string) string {
	switch {
	case ns == "":
		return name
	case name == "":
		return ns
	default:
		return ns + "." + name
	}
}

func textOf(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

func spanOf(f *fileUnit, n *sitter.Node) source.Span {
	return source.Span{File: f.id, Start: n.StartByte(), End: n.EndByte()}
}

func (p *Program) declareEnumMembers(t *userType, n *sitter.Node) {
	body := bodyOf(n)
	for _, m := range childrenOfType(body, "enum_member_declaration") {
		name := field(m, "name")
		if name == nil {
			name = childOfType(m, "identifier")
		}
		if name != nil {
			t.members[name.Content(t.file.src)] = true
		}
	}
}

func (p *Program) declareMember(t *userType, f *fileUnit, n *sitter.Node) {
	if _, ok := typeDeclarations[n.Type()]; ok {
		p.declareMethod(t, f, n, true)
		return
	}
	switch n.Type() {
	case "method_declaration":
		p.declareMethod(t, f, n, false)
	case "constructor_declaration":
		p.declareMethod(t, f, n, true)
	case "field_declaration":
		decl := childOfType(n, "variable_declaration")
		if decl == nil {
			return
		}
		typ := p.resolveTypeNode(t, f, field(decl, "type"))
		static := hasModifier(n, f.src, "static") || hasModifier(n, f.src, "const")
		immutable := hasModifier(n, f.src, "const") || (static && hasModifier(n, f.src, "readonly"))
		for _, v := range childrenOfType(decl, "variable_declarator") {
			name := declaratorName(v, f.src)
			if name == "" {
				continue
			}
			t.fields[name] = &fieldDecl{
				name: name, typ: typ, init: initializerOf(v), file: f,
				isStatic: static, immutable: immutable,
			}
		}
	case "property_declaration":
		name := textOf(field(n, "name"), f.src)
		if name == "" {
			return
		}
		static := hasModifier(n, f.src, "static")
		fd := &fieldDecl{
			name:     name,
			typ:      p.resolveTypeNode(t, f, field(n, "type")),
			file:     f,
			isStatic: static,
		}
		if arrow := childOfType(n, "arrow_expression_clause"); arrow != nil {
			if named := namedChildren(arrow); len(named) > 0 {
				fd.init = named[0]
				fd.immutable = static
			}
		} else if v := field(n, "value"); v != nil {
			fd.init = v
			fd.immutable = static && !hasSetter(n, f.src)
		}
		t.fields[name] = fd
	}
}

func hasSetter(n *sitter.Node, src []byte) bool {
	list := childOfType(n, "accessor_list")
	for _, acc := range childrenOfType(list, "accessor_declaration") {
		text := acc.Content(src)
		if strings.Contains(text, "set") || strings.Contains(text, "init") {
			return true
		}
	}
	return false
}

func declaratorName(v *sitter.Node, src []byte) string {
	if name := field(v, "name"); name != nil {
		return name.Content(src)
	}
	if id := childOfType(v, "identifier"); id != nil {
		return id.Content(src)
	}
	return ""
}

func (p *Program) declareMethod(t *userType, f *fileUnit, n *sitter.Node, ctor bool) {
	sig := &symbols.MethodSignature{
		ContainingType: t.name,
		IsStatic:       hasModifier(n, f.src, "static") || t.isStatic,
		IsConstructor:  ctor,
		Decl:           spanOf(f, n),
	}
	if ctor {
		sig.Name = symbols.CtorName
	} else {
		sig.Name = textOf(field(n, "name"), f.src)
		sig.ReturnType = p.resolveTypeNode(t, f, field(n, "returns", "type"))
	}
	if sig.Name == "" {
		return
	}
	params := field(n, "parameters")
	if params == nil {
		params = childOfType(n, "parameter_list")
	}
	for i, pn := range parameterNodes(params) {
		param := p.declareParam(t, f, pn)
		if i == 0 && hasModifier(pn, f.src, "this") {
			// extension methods group by the extended type
			sig.Family = "this " + param.Type
		}
		sig.Params = append(sig.Params, param)
	}
	p.decls[keyOf(f, n)] = sig
	if ctor {
		t.ctors = append(t.ctors, sig)
		return
	}
	t.methods[sig.Name] = append(t.methods[sig.Name], sig)
}

func parameterNodes(list *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range namedChildren(list) {
		switch c.Type() {
		case "parameter", "parameter_array":
			out = append(out, c)
		}
	}
	return out
}

func (p *Program) declareParam(t *userType, f *fileUnit, n *sitter.Node) symbols.Parameter {
	typeNode := field(n, "type")
	if typeNode == nil {
		// parameter_array in older grammars: params T[] name
		for _, c := range namedChildren(n) {
			if c.Type() != "identifier" {
				typeNode = c
				break
			}
		}
	}
	name := textOf(field(n, "name"), f.src)
	if name == "" {
		ids := childrenOfType(n, "identifier")
		if len(ids) > 0 {
			name = ids[len(ids)-1].Content(f.src)
		}
	}
	param := symbols.NewParameter(name, p.resolveTypeNode(t, f, typeNode))
	param.IsParams = n.Type() == "parameter_array" || hasModifier(n, f.src, "params")
	if def := initializerOf(n); def != nil {
		param.Optional = true
		param.Default = p.expr(f, def, &scope{owner: t})
	}
	return param
}

func (p *Program) indexFamilies() {
	names := make([]string, 0, len(p.types))
	for name := range p.types {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		t := p.types[name]
		methods := make([]string, 0, len(t.methods))
		for m := range t.methods {
			methods = append(methods, m)
		}
		slices.Sort(methods)
		for _, m := range methods {
			for _, sig := range t.methods[m] {
				key := sig.SiblingKey()
				p.families[key] = append(p.families[key], sig)
			}
		}
		for _, sig := range t.ctors {
			key := sig.SiblingKey()
			p.families[key] = append(p.families[key], sig)
		}
	}
}
