package catalog

import (
	"fmt"
	"strings"

	"globalint/internal/symbols"
)

// ParseSignature reads one C#-style declaration such as
//
//	static string Format(System.IFormatProvider provider, string format, params object[] args)
//	.ctor(System.Collections.IComparer comparer)
//
// "Self" in type positions stands for declaringType.
func ParseSignature(line, declaringType string) (*symbols.MethodSignature, error) {
	line = strings.TrimSpace(line)
	open := strings.IndexByte(line, '(')
	if open < 0 || !strings.HasSuffix(line, ")") {
		return nil, fmt.Errorf("bad signature %q: missing parameter list", line)
	}
	head := strings.Fields(line[:open])
	if len(head) == 0 {
		return nil, fmt.Errorf("bad signature %q: missing name", line)
	}
	sig := &symbols.MethodSignature{ContainingType: declaringType}
	if head[0] == "static" {
		sig.IsStatic = true
		head = head[1:]
	}
	switch {
	case len(head) == 1 && head[0] == symbols.CtorName:
		sig.Name = symbols.CtorName
		sig.IsConstructor = true
	case len(head) >= 2:
		sig.Name = head[len(head)-1]
		sig.ReturnType = CanonicalType(strings.Join(head[:len(head)-1], " "), declaringType)
	default:
		return nil, fmt.Errorf("bad signature %q: missing return type", line)
	}

	list := strings.TrimSpace(line[open+1 : len(line)-1])
	if list == "" {
		return sig, nil
	}
	for _, raw := range symbols.SplitTypeArgs(list) {
		p, err := parseParam(raw, declaringType)
		if err != nil {
			return nil, fmt.Errorf("bad signature %q: %w", line, err)
		}
		sig.Params = append(sig.Params, p)
	}
	if err := sig.Validate(); err != nil {
		return nil, fmt.Errorf("bad signature %q: %w", line, err)
	}
	return sig, nil
}

func parseParam(raw, self string) (symbols.Parameter, error) {
	raw = strings.TrimSpace(raw)
	isParams := false
	if rest, ok := strings.CutPrefix(raw, "params "); ok {
		isParams = true
		raw = strings.TrimSpace(rest)
	}
	sp := strings.LastIndexByte(raw, ' ')
	if sp < 0 {
		return symbols.Parameter{}, fmt.Errorf("parameter %q needs a type and a name", raw)
	}
	p := symbols.NewParameter(strings.TrimSpace(raw[sp+1:]), CanonicalType(raw[:sp], self))
	p.IsParams = isParams
	return p, nil
}

// CanonicalType maps C# spellings to canonical names: keywords, arrays,
// nullable suffixes and the "Self" placeholder.
func CanonicalType(t, self string) string {
	t = strings.TrimSpace(t)
	switch {
	case t == "Self":
		return self
	case strings.HasSuffix(t, "[]"):
		return CanonicalType(strings.TrimSuffix(t, "[]"), self) + "[]"
	case strings.HasSuffix(t, "?"):
		return CanonicalType(strings.TrimSuffix(t, "?"), self) + "?"
	}
	if canon, ok := symbols.KeywordCanonical(t); ok {
		return canon
	}
	open := strings.IndexByte(t, '<')
	if open < 0 || !strings.HasSuffix(t, ">") {
		return t
	}
	args := symbols.SplitTypeArgs(t[open+1 : len(t)-1])
	for i, a := range args {
		args[i] = CanonicalType(a, self)
	}
	return t[:open] + "<" + strings.Join(args, ", ") + ">"
}
