package csharp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"globalint/internal/catalog"
	"globalint/internal/symbols"
)

// resolveTypeNode maps a type syntax node to a canonical type name.
// Unknown names are kept as written; `var` yields "".
func (p *Program) resolveTypeNode(t *userType, f *fileUnit, n *sitter.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type() {
	case "predefined_type":
		kw := n.Content(f.src)
		if canon, ok := symbols.KeywordCanonical(kw); ok {
			return canon
		}
		return kw
	case "implicit_type":
		return ""
	case "identifier", "qualified_name", "alias_qualified_name":
		name := n.Content(f.src)
		if name == "var" {
			return ""
		}
		return p.resolveTypeName(t, f, name)
	case "generic_name":
		base := p.resolveTypeName(t, f, textOf(childOfType(n, "identifier"), f.src))
		if i := strings.IndexByte(base, '<'); i >= 0 {
			base = base[:i]
		}
		var args []string
		for _, a := range namedChildren(childOfType(n, "type_argument_list")) {
			args = append(args, p.resolveTypeNode(t, f, a))
		}
		return base + "<" + strings.Join(args, ", ") + ">"
	case "array_type":
		elem := field(n, "type")
		if elem == nil {
			if named := namedChildren(n); len(named) > 0 {
				elem = named[0]
			}
		}
		return p.resolveTypeNode(t, f, elem) + "[]"
	case "nullable_type":
		inner := field(n, "type")
		if inner == nil {
			if named := namedChildren(n); len(named) > 0 {
				inner = named[0]
			}
		}
		canon := p.resolveTypeNode(t, f, inner)
		if p.isValueType(canon) {
			return canon + "?"
		}
		// nullable reference annotations do not change the type
		return canon
	default:
		return n.Content(f.src)
	}
}

// resolveTypeName looks a written type name up in nested scopes, the
// enclosing namespaces, using directives, the other user types and the catalog.
func (p *Program) resolveTypeName(t *userType, f *fileUnit, name string) string {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if name == "" {
		return ""
	}
	if canon, ok := symbols.KeywordCanonical(name); ok {
		return canon
	}
	if _, ok := p.types[name]; ok {
		return name
	}
	for o := t; o != nil; o = o.outer {
		if _, ok := p.types[o.name+"."+name]; ok {
			return o.name + "." + name
		}
	}
	if t != nil {
		for ns := t.ns; ns != ""; ns = parentNamespace(ns) {
			if _, ok := p.types[ns+"."+name]; ok {
				return ns + "." + name
			}
		}
	}
	var usings []string
	if f != nil {
		usings = f.usings
	}
	for _, u := range usings {
		if _, ok := p.types[u+"."+name]; ok {
			return u + "." + name
		}
		if ct, ok := p.cat.Lookup(u + "." + name); ok {
			return ct.Name
		}
	}
	if !strings.Contains(name, ".") {
		if cands := p.simple[name]; len(cands) == 1 {
			return cands[0]
		}
	}
	if ct, ok := p.cat.Lookup(name); ok {
		return ct.Name
	}
	return name
}

func parentNamespace(ns string) string {
	if i := strings.LastIndexByte(ns, '.'); i >= 0 {
		return ns[:i]
	}
	return ""
}

var valueKeywords = map[string]bool{
	"System.Boolean": true, "System.Char": true, "System.SByte": true, "System.Byte": true,
	"System.Int16": true, "System.UInt16": true, "System.Int32": true, "System.UInt32": true,
	"System.Int64": true, "System.UInt64": true, "System.Single": true, "System.Double": true,
	"System.Decimal": true,
}

func (p *Program) isValueType(canon string) bool {
	if valueKeywords[canon] {
		return true
	}
	if ut, ok := p.types[canon]; ok {
		return ut.kind == "struct" || ut.kind == "enum"
	}
	if ct, ok := p.cat.Lookup(canon); ok {
		return ct.Kind == catalog.KindStruct || ct.Kind == catalog.KindEnum
	}
	return false
}

// numericWidening lists the implicit numeric conversions overload
// resolution accepts.
var numericWidening = map[string][]string{
	"System.Char":   {"System.Int32", "System.Int64", "System.Single", "System.Double", "System.Decimal"},
	"System.Byte":   {"System.Int16", "System.Int32", "System.Int64", "System.Single", "System.Double", "System.Decimal"},
	"System.Int16":  {"System.Int32", "System.Int64", "System.Single", "System.Double", "System.Decimal"},
	"System.Int32":  {"System.Int64", "System.Single", "System.Double", "System.Decimal"},
	"System.Int64":  {"System.Single", "System.Double", "System.Decimal"},
	"System.Single": {"System.Double"},
}

const nullType = "null"

// fit scores how well an argument of type arg binds to a parameter of type
// param: 3 exact, 2 convertible, 1 unknown argument type, 0 inapplicable.
func (p *Program) fit(arg, param string) int {
	switch {
	case arg == "":
		return 1
	case arg == param:
		return 3
	case arg == nullType:
		if p.isValueType(param) {
			return 0
		}
		return 2
	case param == symbols.TypeObject, isTypeParameter(param):
		return 2
	case strings.HasSuffix(param, "?") && strings.TrimSuffix(param, "?") == arg:
		return 2
	}
	for _, wide := range numericWidening[arg] {
		if wide == param {
			return 2
		}
	}
	if p.derivesFrom(arg, param, 0) || p.cat.AssignableTo(arg, param) {
		return 2
	}
	return 0
}

// isTypeParameter recognizes open generic parameters such as T or TKey.
func isTypeParameter(name string) bool {
	if name == "" || strings.ContainsAny(name, ".<[?") {
		return false
	}
	_, keyword := symbols.KeywordCanonical(name)
	return !keyword && name[0] == 'T'
}

func (p *Program) derivesFrom(from, to string, depth int) bool {
	ut, ok := p.types[from]
	if !ok || depth > 16 {
		return false
	}
	for _, b := range ut.bases {
		base := p.resolveTypeNode(ut, b.file, b.node)
		if base == to || p.derivesFrom(base, to, depth+1) || p.cat.AssignableTo(base, to) {
			return true
		}
	}
	return false
}

// baseTypes returns the resolved base list of a user type.
func (p *Program) baseTypes(ut *userType) []string {
	out := make([]string, 0, len(ut.bases))
	for _, b := range ut.bases {
		out = append(out, p.resolveTypeNode(ut, b.file, b.node))
	}
	return out
}
