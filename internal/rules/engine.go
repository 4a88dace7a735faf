package rules

import (
	"fmt"

	"globalint/internal/culture"
	"globalint/internal/overload"
	"globalint/internal/symbols"
)

// compareToSuggestion replaces the matcher for string.CompareTo, which has no
// StringComparison sibling of its own.
const compareToSuggestion = "string.Compare(string, string, StringComparison)"

// Engine evaluates call sites against one symbol model.
// It holds no mutable state and may be shared between goroutines.
type Engine struct {
	model symbols.Model
}

// New returns an engine bound to model.
func New(model symbols.Model) *Engine {
	return &Engine{model: model}
}

// Evaluate is a shorthand for New(model).Evaluate(call).
func Evaluate(model symbols.Model, call symbols.CallSite) (Record, bool) {
	return New(model).Evaluate(call)
}

// Evaluate returns the diagnostic for call, if any. The first applicable step wins.
func (e *Engine) Evaluate(call symbols.CallSite) (Record, bool) {
	if e == nil || e.model == nil || call.Method == nil {
		return Record{}, false
	}
	if err := checkCall(call); err != nil {
		malformed(err)
		return Record{}, false
	}
	if rec, ok := e.explicitValue(call); ok {
		return rec, true
	}
	if rec, ok := e.unsafeDefault(call); ok {
		return rec, true
	}
	return e.missingContext(call)
}

func checkCall(call symbols.CallSite) error {
	if err := call.Method.Validate(); err != nil {
		return err
	}
	if len(call.Args) != len(call.Method.Params) {
		return fmt.Errorf("%w: %s called with %d argument slots for %d parameters",
			symbols.ErrMalformedSignature, call.Method, len(call.Args), len(call.Method.Params))
	}
	return nil
}

// malformed signatures are host defects: loud in debug builds, skipped otherwise.
func malformed(err error) {
	if debugChecks {
		panic(err)
	}
}

// comparisonContext: StringComparison, comparers and a CultureInfo right after a bool.
func comparisonContext(params []symbols.Parameter, i int) bool {
	switch params[i].Category {
	case symbols.CategoryStringComparison, symbols.CategoryComparer:
		return true
	case symbols.CategoryCultureInfo:
		return i > 0 && params[i-1].Category == symbols.CategoryBool
	default:
		return false
	}
}

func formatContext(params []symbols.Parameter, i int) bool {
	switch params[i].Category {
	case symbols.CategoryFormatProvider, symbols.CategoryCultureInfo:
		return true
	default:
		return false
	}
}

// leadingParam mirrors the matcher: a lone parameter counts as trailing.
func leadingParam(params []symbols.Parameter, i int) bool {
	return i == 0 && len(params) > 1
}

func (e *Engine) explicitValue(call symbols.CallSite) (Record, bool) {
	method := call.Method
	for i, p := range method.Params {
		if !p.Category.IsContext() {
			continue
		}
		arg := call.Arg(i)
		if arg.Omitted() {
			continue
		}
		folded, ok := e.model.ConstantValueOf(arg.Expr)
		if !ok {
			continue
		}
		switch culture.Lookup(folded) {
		case culture.InvariantCulture:
			if !comparisonContext(method.Params, i) {
				continue
			}
			tpl := TplUseOrdinalStringComparison
			if folded.IsStaticComparer() {
				tpl = TplUseOrdinalStringComparer
			}
			return Record{
				Rule:     RuleUseOrdinalComparison,
				Template: tpl,
				Span:     call.Span,
				Args:     []string{call.Caller, arg.Expr.Text(), method.String()},
			}, true
		case culture.CurrentUICulture:
			if !formatContext(method.Params, i) {
				continue
			}
			return Record{
				Rule:     RuleFormatProviderUICulture,
				Template: uiCultureTemplate(method.ReturnsString(), leadingParam(method.Params, i)),
				Span:     call.Span,
				Args:     []string{call.Caller, arg.Expr.Text(), method.String()},
			}, true
		}
	}
	return Record{}, false
}

func (e *Engine) unsafeDefault(call symbols.CallSite) (Record, bool) {
	method := call.Method
	for i, p := range method.Params {
		if !p.Category.IsContext() || !p.Optional || !call.Arg(i).Omitted() {
			continue
		}
		switch culture.Classify(e.model, p.Default) {
		case culture.InvariantCulture:
			if !comparisonContext(method.Params, i) {
				continue
			}
			return defaultRecord(RuleUseOrdinalComparison, TplUseOrdinalDefault, method, p), true
		case culture.CurrentUICulture:
			if !formatContext(method.Params, i) {
				continue
			}
			return defaultRecord(RuleFormatProviderUICulture, TplUICultureDefault, method, p), true
		}
	}
	return Record{}, false
}

func defaultRecord(rule ID, tpl Template, method *symbols.MethodSignature, p symbols.Parameter) Record {
	return Record{
		Rule:     rule,
		Template: tpl,
		Span:     p.Default.Span(),
		Args:     []string{method.String(), p.Default.Text()},
	}
}

func (e *Engine) missingContext(call symbols.CallSite) (Record, bool) {
	method := call.Method
	if method.HasContextParam() {
		return Record{}, false
	}
	if isStringCompareTo(method) {
		return Record{
			Rule:     RuleSpecifyStringComparison,
			Template: stringComparisonTemplate(false, false),
			Span:     call.Span,
			Args:     []string{method.String(), call.Caller, compareToSuggestion},
		}, true
	}

	match, ok := overload.FindExplicitOverload(method, e.siblings(method))
	if !ok {
		return e.formatFallback(call)
	}
	leading := match.Position == overload.Leading
	rec := Record{
		Span: call.Span,
		Args: []string{method.String(), call.Caller, match.Sibling.String()},
	}
	if match.Inserted.FormatRelated() {
		rec.Rule = RuleSpecifyFormatProvider
		rec.Template = formatProviderTemplate(method.ReturnsString(), leading)
		return rec, true
	}
	if ordinalByDefault(method) {
		return Record{}, false
	}
	rec.Rule = RuleSpecifyStringComparison
	rec.Template = stringComparisonTemplate(method.ReturnsString(), leading)
	return rec, true
}

// siblings drops malformed overloads so one bad declaration cannot mask the rest.
func (e *Engine) siblings(method *symbols.MethodSignature) symbols.SiblingSet {
	all := e.model.SiblingsOf(method)
	out := make(symbols.SiblingSet, 0, len(all))
	for _, sib := range all {
		if err := sib.Validate(); err != nil {
			malformed(err)
			continue
		}
		out = append(out, sib)
	}
	return out
}

// formatFallback handles string.Format(string, object...) on runtimes whose
// only provider overload is Format(IFormatProvider, string, params object[]).
func (e *Engine) formatFallback(call symbols.CallSite) (Record, bool) {
	method := call.Method
	if method.ContainingType != symbols.TypeString || method.Name != "Format" || !method.IsStatic {
		return Record{}, false
	}
	var target *symbols.MethodSignature
	for _, sib := range e.siblings(method) {
		if len(sib.Params) != 3 || sib.Params[0].Category != symbols.CategoryFormatProvider ||
			sib.Params[1].Type != symbols.TypeString || !sib.Params[2].IsParams {
			continue
		}
		if target != nil {
			return Record{}, false
		}
		target = sib
	}
	if target == nil {
		return Record{}, false
	}
	return Record{
		Rule:     RuleSpecifyFormatProvider,
		Template: formatProviderTemplate(true, true),
		Span:     call.Span,
		Args:     []string{method.String(), call.Caller, target.String()},
	}, true
}

func isStringCompareTo(m *symbols.MethodSignature) bool {
	return m.ContainingType == symbols.TypeString && m.Name == "CompareTo" && !m.IsStatic
}

// ordinalByDefault lists string methods that already compare ordinally.
func ordinalByDefault(m *symbols.MethodSignature) bool {
	if m.ContainingType != symbols.TypeString {
		return false
	}
	switch m.Name {
	case "Equals", "Contains", "Replace":
		return true
	default:
		return false
	}
}

func formatProviderTemplate(returnsString, leading bool) Template {
	switch {
	case returnsString && leading:
		return TplFormatProviderLeadingString
	case returnsString:
		return TplFormatProviderTrailingString
	case leading:
		return TplFormatProviderLeading
	default:
		return TplFormatProviderTrailing
	}
}

func uiCultureTemplate(returnsString, leading bool) Template {
	switch {
	case returnsString && leading:
		return TplUICultureLeadingString
	case returnsString:
		return TplUICultureTrailingString
	case leading:
		return TplUICultureLeading
	default:
		return TplUICultureTrailing
	}
}

func stringComparisonTemplate(returnsString, leading bool) Template {
	switch {
	case returnsString && leading:
		return TplStringComparisonLeadingString
	case returnsString:
		return TplStringComparisonTrailingString
	case leading:
		return TplStringComparisonLeading
	default:
		return TplStringComparisonTrailing
	}
}
