package symbols

import "globalint/internal/source"

// Expr is an argument or default-value expression as the host sees it.
type Expr interface {
	// Text is the literal source text, used verbatim in messages.
	Text() string
	Span() source.Span
}

// SourceExpr is the plain Expr implementation shared by the adapters.
type SourceExpr struct {
	Src string
	At  source.Span
}

func (e SourceExpr) Text() string      { return e.Src }
func (e SourceExpr) Span() source.Span { return e.At }

// Argument is one argument slot of a call, aligned to a parameter.
// A nil Expr means the caller omitted it and the declared default applies.
// Arguments of an expanded params array share one slot whose Expr covers them all.
type Argument struct {
	Expr Expr
}

// Omitted reports whether the argument was left to its declared default.
func (a Argument) Omitted() bool { return a.Expr == nil }

// Explicit wraps an expression as a supplied argument.
func Explicit(e Expr) Argument { return Argument{Expr: e} }

// OmittedArg is the argument slot for a parameter the caller did not pass.
var OmittedArg = Argument{}
