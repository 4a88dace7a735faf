package csharp

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// field returns the first child found under any of the field names; grammar
// revisions renamed a few fields (type -> returns on methods).
func field(n *sitter.Node, names ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for _, name := range names {
		if c := n.ChildByFieldName(name); c != nil {
			return c
		}
	}
	return nil
}

func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

func childrenOfType(n *sitter.Node, typ string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.Type() == typ {
			out = append(out, c)
		}
	}
	return out
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// hasModifier checks direct modifier tokens and `modifier` wrapper nodes.
func hasModifier(n *sitter.Node, src []byte, mod string) bool {
	if n == nil {
		return false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch {
		case c.Type() == mod:
			return true
		case c.Type() == "modifier" || c.Type() == "parameter_modifier":
			if strings.TrimSpace(c.Content(src)) == mod {
				return true
			}
		}
	}
	return false
}

// initializerOf finds `= expr` on declarators and parameters in both the
// equals_value_clause and the flat grammar shapes.
func initializerOf(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if clause := childOfType(n, "equals_value_clause"); clause != nil {
		if named := namedChildren(clause); len(named) > 0 {
			return named[len(named)-1]
		}
		return nil
	}
	if v := field(n, "value"); v != nil {
		return v
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && !c.IsNamed() && c.Type() == "=" {
			for j := i + 1; j < int(n.ChildCount()); j++ {
				if next := n.Child(j); next != nil && next.IsNamed() {
					return next
				}
			}
		}
	}
	return nil
}

// unparen drops redundant parentheses around n.
func unparen(n *sitter.Node) *sitter.Node {
	for n.Type() == "parenthesized_expression" {
		named := namedChildren(n)
		if len(named) != 1 {
			break
		}
		n = named[0]
	}
	return n
}

// unwrap drops parentheses and casts.
func unwrap(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "parenthesized_expression":
			named := namedChildren(n)
			if len(named) != 1 {
				return n
			}
			n = named[0]
		case "cast_expression":
			v := field(n, "value")
			if v == nil {
				return n
			}
			n = v
		default:
			return n
		}
	}
	return n
}

// stringLiteralValue decodes a regular or verbatim string literal.
func stringLiteralValue(n *sitter.Node, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	text := n.Content(src)
	switch n.Type() {
	case "string_literal":
		if v, err := strconv.Unquote(text); err == nil {
			return v, true
		}
		if len(text) >= 2 {
			return text[1 : len(text)-1], true
		}
	case "verbatim_string_literal":
		if len(text) >= 3 && text[0] == '@' {
			return strings.ReplaceAll(text[2:len(text)-1], `""`, `"`), true
		}
	case "raw_string_literal":
		trimmed := strings.Trim(text, `"`)
		return trimmed, true
	}
	return "", false
}

func isStringLiteral(n *sitter.Node) bool {
	switch n.Type() {
	case "string_literal", "verbatim_string_literal", "raw_string_literal", "interpolated_string_expression":
		return true
	}
	return false
}
