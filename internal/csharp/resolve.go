package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"globalint/internal/source"
	"globalint/internal/symbols"
)

// nodeExpr is the Expr handed to the rules; it keeps the syntax node and
// the scope so ConstantValueOf can fold it later.
type nodeExpr struct {
	node  *sitter.Node
	scope *scope
	// covers is set for expanded params arrays.
	covers source.Span
	text   string
}

func (e nodeExpr) Text() string {
	if e.text != "" || e.node == nil {
		return e.text
	}
	return unparen(e.node).Content(e.scope.file.src)
}

func (e nodeExpr) Span() source.Span {
	if e.node == nil {
		return e.covers
	}
	return spanOf(e.scope.file, e.node)
}

func (p *Program) expr(f *fileUnit, n *sitter.Node, sc *scope) symbols.Expr {
	if sc.file == nil {
		sc.file = f
	}
	return nodeExpr{node: n, scope: sc}
}

type callArg struct {
	name string
	node *sitter.Node
}

func argumentValue(arg *sitter.Node) *sitter.Node {
	named := namedChildren(arg)
	if len(named) == 0 {
		return nil
	}
	return named[len(named)-1]
}

func argumentName(arg *sitter.Node, src []byte) string {
	if nc := childOfType(arg, "name_colon"); nc != nil {
		return textOf(childOfType(nc, "identifier"), src)
	}
	// name: value in newer grammars
	if name := field(arg, "name"); name != nil {
		return name.Content(src)
	}
	return ""
}

func (p *Program) arguments(sc *scope, list *sitter.Node) []callArg {
	var out []callArg
	for _, a := range childrenOfType(list, "argument") {
		out = append(out, callArg{name: argumentName(a, sc.file.src), node: argumentValue(a)})
	}
	return out
}

// simpleName returns the identifier of an identifier or generic_name node.
func simpleName(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "identifier":
		return n.Content(src)
	case "generic_name":
		return textOf(childOfType(n, "identifier"), src)
	}
	return ""
}

// Resolve maps a call to its single target.
func (p *Program) Resolve(call symbols.CallExpr) (symbols.CallSite, bool) {
	c, ok := call.(*Call)
	if !ok || c == nil {
		return symbols.CallSite{}, false
	}
	sig, args, ok := p.resolveNode(c.scope, c.node)
	if !ok {
		return symbols.CallSite{}, false
	}
	return symbols.CallSite{Method: sig, Args: args, Caller: c.scope.caller, Span: c.Span()}, true
}

// target is a method group: candidates plus the receiver an extension call
// passes as its first argument.
type target struct {
	candidates []*symbols.MethodSignature
	receiver   *sitter.Node
}

func (p *Program) resolveNode(sc *scope, n *sitter.Node) (*symbols.MethodSignature, []symbols.Argument, bool) {
	var groups []target
	var list *sitter.Node
	switch n.Type() {
	case "object_creation_expression":
		typ := p.resolveTypeNode(sc.owner, sc.file, field(n, "type"))
		groups = append(groups, target{candidates: p.constructors(typ)})
		list = field(n, "arguments")
		if list == nil {
			list = childOfType(n, "argument_list")
		}
	case "invocation_expression":
		fn := field(n, "function")
		if fn == nil {
			if named := namedChildren(n); len(named) > 0 {
				fn = named[0]
			}
		}
		list = field(n, "arguments")
		if list == nil {
			list = childOfType(n, "argument_list")
		}
		groups = p.methodGroups(sc, fn)
	default:
		return nil, nil, false
	}
	if len(groups) == 0 {
		return nil, nil, false
	}
	args := p.arguments(sc, list)
	for _, g := range groups {
		if len(g.candidates) == 0 {
			continue
		}
		all := args
		if g.receiver != nil {
			all = append([]callArg{{node: g.receiver}}, args...)
		}
		if sig, slots, ok := p.choose(sc, g.candidates, all); ok {
			return sig, slots, true
		}
	}
	return nil, nil, false
}

// methodGroups lists candidate sets in lookup order: instance or static
// methods first, extension methods after.
func (p *Program) methodGroups(sc *scope, fn *sitter.Node) []target {
	if fn == nil {
		return nil
	}
	src := sc.file.src
	switch fn.Type() {
	case "identifier", "generic_name":
		name := simpleName(fn, src)
		for o := sc.owner; o != nil; o = o.outer {
			if cands := p.userMethods(o.name, name, 0); len(cands) > 0 {
				return []target{{candidates: cands}}
			}
		}
		return nil
	case "member_access_expression":
		name := simpleName(field(fn, "name"), src)
		recv := field(fn, "expression")
		typ, static := p.receiver(sc, recv)
		if typ == "" || name == "" {
			return nil
		}
		var groups []target
		var own []*symbols.MethodSignature
		for _, sig := range p.methodsOn(typ, name) {
			if sig.IsStatic == static {
				own = append(own, sig)
			}
		}
		if len(own) > 0 {
			groups = append(groups, target{candidates: own})
		}
		if !static {
			if ext := p.extensions(typ, name); len(ext) > 0 {
				groups = append(groups, target{candidates: ext, receiver: recv})
			}
		}
		return groups
	}
	return nil
}

// receiver classifies the left side of a member access: a type name for
// static access or an expression of some type.
func (p *Program) receiver(sc *scope, recv *sitter.Node) (typ string, static bool) {
	if recv == nil {
		return "", false
	}
	src := sc.file.src
	switch recv.Type() {
	case "predefined_type":
		return p.resolveTypeNode(sc.owner, sc.file, recv), true
	case "identifier":
		name := recv.Content(src)
		if p.isValueName(sc, name) {
			return p.typeOf(sc, recv), false
		}
		if typ, ok := p.knownType(sc, name); ok {
			return typ, true
		}
		return "", false
	case "generic_name":
		if _, ok := p.knownType(sc, simpleName(recv, src)); ok {
			return p.resolveTypeNode(sc.owner, sc.file, recv), true
		}
		return "", false
	case "member_access_expression", "qualified_name":
		if typ := p.typeOf(sc, recv); typ != "" {
			return typ, false
		}
		if typ, ok := p.knownType(sc, recv.Content(src)); ok {
			return typ, true
		}
		return "", false
	}
	return p.typeOf(sc, recv), false
}

// isValueName reports whether name denotes a local, parameter or field in sc.
func (p *Program) isValueName(sc *scope, name string) bool {
	if _, ok := sc.lookup(name); ok {
		return true
	}
	if _, ok := sc.param(name); ok {
		return true
	}
	_, ok := p.fieldInScope(sc.owner, name)
	return ok
}

// knownType resolves name as a user or catalog type.
func (p *Program) knownType(sc *scope, name string) (string, bool) {
	canon := p.resolveTypeName(sc.owner, sc.file, name)
	if _, ok := p.types[canon]; ok {
		return canon, true
	}
	if ct, ok := p.cat.Lookup(canon); ok {
		return ct.Name, true
	}
	return "", false
}

func (p *Program) fieldInScope(owner *userType, name string) (*fieldDecl, bool) {
	for o := owner; o != nil; o = o.outer {
		if fd, ok := p.fieldOf(o.name, name, 0); ok {
			return fd, true
		}
	}
	return nil, false
}

func (p *Program) fieldOf(typ, name string, depth int) (*fieldDecl, bool) {
	ut, ok := p.types[typ]
	if !ok || depth > 16 {
		return nil, false
	}
	if fd, ok := ut.fields[name]; ok {
		return fd, true
	}
	for _, base := range p.baseTypes(ut) {
		if fd, ok := p.fieldOf(base, name, depth+1); ok {
			return fd, true
		}
	}
	return nil, false
}

// userMethods collects overloads declared on typ and its user base types.
func (p *Program) userMethods(typ, name string, depth int) []*symbols.MethodSignature {
	ut, ok := p.types[typ]
	if !ok || depth > 16 {
		return nil
	}
	out := append([]*symbols.MethodSignature(nil), ut.methods[name]...)
	for _, base := range p.baseTypes(ut) {
		if _, user := p.types[base]; user {
			out = append(out, p.userMethods(base, name, depth+1)...)
			continue
		}
		out = append(out, p.catalogMethods(base, name)...)
	}
	return out
}

func (p *Program) catalogMethods(typ, name string) []*symbols.MethodSignature {
	if ct, ok := p.cat.Lookup(typ); ok {
		return ct.Methods(name)
	}
	return nil
}

// methodsOn returns the methods visible on typ, falling back to System.Object.
func (p *Program) methodsOn(typ, name string) []*symbols.MethodSignature {
	typ = strings.TrimSuffix(typ, "?")
	out := p.userMethods(typ, name, 0)
	if len(out) == 0 {
		out = p.catalogMethods(typ, name)
	}
	if len(out) == 0 && !strings.HasSuffix(typ, "[]") {
		if ut, ok := p.types[typ]; !ok || ut.kind != "interface" {
			out = p.catalogMethods(symbols.TypeObject, name)
		}
	}
	return out
}

func (p *Program) extensions(typ, name string) []*symbols.MethodSignature {
	out := append([]*symbols.MethodSignature(nil), p.families["this "+typ+"::"+name]...)
	if typ != symbols.TypeObject {
		out = append(out, p.families["this "+symbols.TypeObject+"::"+name]...)
	}
	return out
}

func (p *Program) constructors(typ string) []*symbols.MethodSignature {
	if ut, ok := p.types[typ]; ok {
		return ut.ctors
	}
	if ct, ok := p.cat.Lookup(typ); ok {
		return ct.ConstructorsOf(typ)
	}
	return nil
}

// SiblingsOf returns all overloads sharing the name and family of sig.
func (p *Program) SiblingsOf(sig *symbols.MethodSignature) symbols.SiblingSet {
	if sig == nil {
		return nil
	}
	if set, ok := p.families[sig.SiblingKey()]; ok {
		return set
	}
	ct, ok := p.cat.Lookup(sig.ContainingType)
	if !ok {
		return nil
	}
	if sig.IsConstructor {
		return ct.ConstructorsOf(sig.ContainingType)
	}
	return ct.Methods(sig.Name)
}
