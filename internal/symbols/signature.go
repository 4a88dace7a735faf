package symbols

import (
	"errors"
	"fmt"
	"strings"

	"globalint/internal/source"
)

// Parameter is one declared parameter of a MethodSignature.
type Parameter struct {
	Name     string
	Type     string // canonical name
	Category TypeCategory
	Optional bool
	Default  Expr // set when Optional
	IsParams bool
}

// Display renders the parameter type as C# messages show it.
func (p Parameter) Display() string {
	if p.IsParams {
		return "params " + DisplayType(p.Type)
	}
	return DisplayType(p.Type)
}

// MethodSignature is a read-only view of a resolved method or constructor.
type MethodSignature struct {
	ContainingType string // canonical
	// Family groups overloads spread over static utility or extension classes.
	// Empty means ContainingType.
	Family        string
	Name          string
	Params        []Parameter
	ReturnType    string // canonical; empty for constructors
	IsConstructor bool
	IsStatic      bool
	Decl          source.Span
}

// NewParameter builds a Parameter and derives its category from the type.
func NewParameter(name, typ string) Parameter {
	return Parameter{Name: name, Type: typ, Category: CategoryOf(typ)}
}

// OverloadFamily is the key siblings are grouped by.
func (m *MethodSignature) OverloadFamily() string {
	if m.Family != "" {
		return m.Family
	}
	return m.ContainingType
}

// SiblingKey identifies the sibling set of m.
func (m *MethodSignature) SiblingKey() string {
	return m.OverloadFamily() + "::" + m.Name
}

// Arity returns the number of declared parameters.
func (m *MethodSignature) Arity() int { return len(m.Params) }

// ReturnsString reports whether the method returns System.String.
func (m *MethodSignature) ReturnsString() bool {
	return !m.IsConstructor && m.ReturnType == TypeString
}

// ContextIndex returns the position of the first context parameter or -1.
func (m *MethodSignature) ContextIndex() int {
	for i, p := range m.Params {
		if p.Category.IsContext() {
			return i
		}
	}
	return -1
}

// HasContextParam reports whether any parameter selects a culture or comparison.
func (m *MethodSignature) HasContextParam() bool {
	return m.ContextIndex() >= 0
}

// Qualifier renders the declaring type part of the display name.
func (m *MethodSignature) Qualifier() string {
	return DisplayType(m.ContainingType)
}

// String renders the signature in C# diagnostic form, e.g.
// "string.Format(System.IFormatProvider, string, params object[])".
// Constructors render as Type.SimpleName(...).
func (m *MethodSignature) String() string {
	if m == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(m.Qualifier())
	sb.WriteByte('.')
	if m.IsConstructor {
		sb.WriteString(SimpleName(m.ContainingType))
	} else {
		sb.WriteString(m.Name)
	}
	sb.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Display())
	}
	sb.WriteByte(')')
	return sb.String()
}

// ErrMalformedSignature marks a signature that violates the model contract.
var ErrMalformedSignature = errors.New("malformed signature")

// Validate checks the structural contract every adapter must honour.
func (m *MethodSignature) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil signature", ErrMalformedSignature)
	}
	if m.Name == "" {
		return fmt.Errorf("%w: empty method name", ErrMalformedSignature)
	}
	if m.ContainingType == "" {
		return fmt.Errorf("%w: %s has no containing type", ErrMalformedSignature, m.Name)
	}
	for i, p := range m.Params {
		if p.Type == "" {
			return fmt.Errorf("%w: %s parameter %d has no type", ErrMalformedSignature, m.Name, i)
		}
		if p.Category != CategoryOf(p.Type) {
			return fmt.Errorf("%w: %s parameter %d category %s disagrees with type %s",
				ErrMalformedSignature, m.Name, i, p.Category, p.Type)
		}
		if p.IsParams && i != len(m.Params)-1 {
			return fmt.Errorf("%w: %s params array is not the last parameter", ErrMalformedSignature, m.Name)
		}
		if p.Optional && p.Default == nil {
			return fmt.Errorf("%w: %s optional parameter %d has no default", ErrMalformedSignature, m.Name, i)
		}
	}
	return nil
}

// SameParamTypes reports whether a and b have pairwise identical parameter types.
func SameParamTypes(a, b []Parameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].IsParams != b[i].IsParams {
			return false
		}
	}
	return true
}

// SiblingSet holds every signature of one overload family and name,
// including the resolved one.
type SiblingSet []*MethodSignature

// WithArity returns the members that declare exactly n parameters.
func (s SiblingSet) WithArity(n int) SiblingSet {
	var out SiblingSet
	for _, sig := range s {
		if sig != nil && len(sig.Params) == n {
			out = append(out, sig)
		}
	}
	return out
}
