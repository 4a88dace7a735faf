package symbols

import "globalint/internal/source"

// CallExpr is an opaque handle of a call or object creation in the host model.
type CallExpr interface {
	Span() source.Span
}

// CallSite is a resolved call: target, arguments aligned to its parameters,
// enclosing member and the span diagnostics point at.
type CallSite struct {
	Method *MethodSignature
	Args   []Argument
	// Caller is the display name of the enclosing member, e.g. "Program.Main()".
	Caller string
	Span   source.Span
}

// Arg returns the argument slot for parameter i; out of range counts as omitted.
func (c CallSite) Arg(i int) Argument {
	if i < 0 || i >= len(c.Args) {
		return OmittedArg
	}
	return c.Args[i]
}

// Model is the symbol model contract.
type Model interface {
	// Resolve maps a call to its single target; false means unresolved.
	Resolve(call CallExpr) (CallSite, bool)
	// SiblingsOf returns all methods sharing the name and overload family of sig.
	SiblingsOf(sig *MethodSignature) SiblingSet
	// ConstantValueOf folds an expression to a well-known member, following
	// single-assignment locals and static member access.
	ConstantValueOf(expr Expr) (WellKnownMember, bool)
}

// Unit is a Model that can also enumerate its call expressions.
type Unit interface {
	Model
	Calls() []CallExpr
}
