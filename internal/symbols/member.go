package symbols

import "strconv"

// CtorName is the member name used for object creations.
const CtorName = ".ctor"

// WellKnownMember is the canonical identity an expression folds to.
type WellKnownMember struct {
	Type string // canonical declaring type
	Name string // member name, CtorName for constructions
	// Arg is the folded first argument of a construction or factory call.
	Arg *WellKnownMember
	// Literal is a folded string literal argument, valid when HasLiteral.
	Literal    string
	HasLiteral bool
	IsStatic   bool
}

// Member builds a static member identity.
func Member(typ, name string) WellKnownMember {
	return WellKnownMember{Type: typ, Name: name, IsStatic: true}
}

// Construction builds a `new T(arg)` identity.
func Construction(typ string, arg *WellKnownMember) WellKnownMember {
	return WellKnownMember{Type: typ, Name: CtorName, Arg: arg}
}

// StringLiteral builds the identity of a string literal.
func StringLiteral(value string) WellKnownMember {
	return WellKnownMember{Type: TypeString, Literal: value, HasLiteral: true}
}

// WithLiteral returns m carrying a folded string literal argument.
func (m WellKnownMember) WithLiteral(value string) WellKnownMember {
	m.Literal = value
	m.HasLiteral = true
	return m
}

// IsConstruction reports whether m is an object creation.
func (m WellKnownMember) IsConstruction() bool { return m.Name == CtorName }

// IsStaticComparer reports whether m is a static member of a comparer type,
// e.g. StringComparer.InvariantCulture.
func (m WellKnownMember) IsStaticComparer() bool {
	return m.IsStatic && !m.IsConstruction() && CategoryOf(m.Type) == CategoryComparer
}

func (m WellKnownMember) String() string {
	base := SimpleName(m.Type)
	switch {
	case m.Name == "" && m.HasLiteral:
		return strconv.Quote(m.Literal)
	case m.IsConstruction():
		base = "new " + base
	default:
		base += "." + m.Name
	}
	if m.Arg != nil {
		return base + "(" + m.Arg.String() + ")"
	}
	if m.HasLiteral && m.Name != "" {
		return base + "(" + strconv.Quote(m.Literal) + ")"
	}
	return base
}
