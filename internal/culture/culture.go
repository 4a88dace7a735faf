// Package culture classifies culture and comparison values by how they behave
// across user locales.
package culture

import (
	"globalint/internal/symbols"
)

// Sensitivity is the locale behaviour of a culture or comparison value.
type Sensitivity uint8

const (
	// Unknown values never trigger a diagnostic on their own.
	Unknown Sensitivity = iota
	OrdinalSafe
	CurrentCulture
	CurrentUICulture
	InvariantCulture
)

func (s Sensitivity) String() string {
	switch s {
	case OrdinalSafe:
		return "ordinal"
	case CurrentCulture:
		return "current-culture"
	case CurrentUICulture:
		return "current-ui-culture"
	case InvariantCulture:
		return "invariant-culture"
	default:
		return "unknown"
	}
}

// Unsafe reports whether a value of this sensitivity can be reported.
func (s Sensitivity) Unsafe() bool {
	return s == CurrentUICulture || s == InvariantCulture
}

type memberKey struct {
	typ  string
	name string
}

// table is keyed by canonical (declaring type, member) and never mutated after init.
var table = map[memberKey]Sensitivity{}

func register(s Sensitivity, typ string, names ...string) {
	for _, name := range names {
		table[memberKey{typ: typ, name: name}] = s
	}
}

func init() {
	register(OrdinalSafe, symbols.TypeStringComparison, "Ordinal", "OrdinalIgnoreCase")
	register(OrdinalSafe, symbols.TypeStringComparer, "Ordinal", "OrdinalIgnoreCase")

	register(CurrentCulture, symbols.TypeStringComparison, "CurrentCulture", "CurrentCultureIgnoreCase")
	register(CurrentCulture, symbols.TypeStringComparer, "CurrentCulture", "CurrentCultureIgnoreCase")
	register(CurrentCulture, symbols.TypeCultureInfo, "CurrentCulture")
	register(CurrentCulture, symbols.TypeThread, "CurrentCulture")
	register(CurrentCulture, symbols.TypeComparer, "Default")
	register(CurrentCulture, symbols.TypeCaseInsensitiveComparer, "Default")

	register(InvariantCulture, symbols.TypeStringComparison, "InvariantCulture", "InvariantCultureIgnoreCase")
	register(InvariantCulture, symbols.TypeStringComparer, "InvariantCulture", "InvariantCultureIgnoreCase")
	register(InvariantCulture, symbols.TypeCultureInfo, "InvariantCulture")
	register(InvariantCulture, symbols.TypeComparer, "DefaultInvariant")
	register(InvariantCulture, symbols.TypeCaseInsensitiveComparer, "DefaultInvariant")

	register(CurrentUICulture, symbols.TypeThread, "CurrentUICulture")
	register(CurrentUICulture, symbols.TypeCultureInfo, "CurrentUICulture", "InstalledUICulture")
}

// Lookup classifies an already folded member.
func Lookup(m symbols.WellKnownMember) Sensitivity {
	switch {
	case m.IsConstruction():
		return classifyConstruction(m)
	case m.Type == symbols.TypeCultureInfo && (m.Name == "GetCultureInfo" || m.Name == "CreateSpecificCulture"):
		// culture by name; only the empty name is known statically
		if m.HasLiteral && m.Literal == "" {
			return InvariantCulture
		}
		return Unknown
	}
	return table[memberKey{typ: m.Type, name: m.Name}]
}

func classifyConstruction(m symbols.WellKnownMember) Sensitivity {
	switch m.Type {
	case symbols.TypeCultureInfo:
		if m.HasLiteral && m.Literal == "" {
			return InvariantCulture
		}
		if m.Arg != nil && m.Arg.HasLiteral && m.Arg.Name == "" && m.Arg.Literal == "" {
			return InvariantCulture
		}
	case symbols.TypeComparer, symbols.TypeCaseInsensitiveComparer:
		// new Comparer(culture) compares like the culture it was built from
		if m.Arg != nil {
			switch Lookup(*m.Arg) {
			case InvariantCulture:
				return InvariantCulture
			case CurrentCulture:
				return CurrentCulture
			case CurrentUICulture:
				return CurrentUICulture
			}
		}
	}
	return Unknown
}

// Folder is the part of the symbol model the classifier needs.
type Folder interface {
	ConstantValueOf(expr symbols.Expr) (symbols.WellKnownMember, bool)
}

// Classify folds expr through the model and classifies the result.
// Expressions the model cannot fold are Unknown.
func Classify(model Folder, expr symbols.Expr) Sensitivity {
	if model == nil || expr == nil {
		return Unknown
	}
	m, ok := model.ConstantValueOf(expr)
	if !ok {
		return Unknown
	}
	return Lookup(m)
}
