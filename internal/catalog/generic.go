package catalog

import (
	"strings"

	"globalint/internal/symbols"
)

// ConstructorsOf returns the constructors of a constructed type such as
// System.Collections.Generic.Dictionary<System.String, System.Int32>, with the
// type parameters of t replaced by its arguments. Open names and names whose
// arity differs from t get the declared constructors.
func (t *Type) ConstructorsOf(name string) []*symbols.MethodSignature {
	args := typeArgs(name)
	if name == t.Name || len(args) == 0 || len(args) != len(t.typeParams) {
		return t.ctors
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	// повторный вызов отдаёт те же сигнатуры
	if ctors, ok := t.constructed[name]; ok {
		return ctors
	}
	subst := make(map[string]string, len(args))
	for i, p := range t.typeParams {
		subst[p] = args[i]
	}
	ctors := make([]*symbols.MethodSignature, len(t.ctors))
	for i, c := range t.ctors {
		ctors[i] = substitute(c, name, subst)
	}
	if t.constructed == nil {
		t.constructed = make(map[string][]*symbols.MethodSignature)
	}
	t.constructed[name] = ctors
	return ctors
}

func substitute(sig *symbols.MethodSignature, owner string, subst map[string]string) *symbols.MethodSignature {
	out := *sig
	out.ContainingType = owner
	out.Params = make([]symbols.Parameter, len(sig.Params))
	for i, p := range sig.Params {
		p.Type = substType(p.Type, subst)
		p.Category = symbols.CategoryOf(p.Type)
		out.Params[i] = p
	}
	return &out
}

func substType(t string, subst map[string]string) string {
	if v, ok := subst[t]; ok {
		return v
	}
	switch {
	case strings.HasSuffix(t, "[]"):
		return substType(strings.TrimSuffix(t, "[]"), subst) + "[]"
	case strings.HasSuffix(t, "?"):
		return substType(strings.TrimSuffix(t, "?"), subst) + "?"
	}
	args := typeArgs(t)
	if len(args) == 0 {
		return t
	}
	for i, a := range args {
		args[i] = substType(a, subst)
	}
	return baseName(t) + "<" + strings.Join(args, ", ") + ">"
}

// typeArgs splits the generic argument list of a type name; nil when the name
// is not generic.
func typeArgs(name string) []string {
	open := strings.IndexByte(name, '<')
	if open < 0 || !strings.HasSuffix(name, ">") {
		return nil
	}
	return symbols.SplitTypeArgs(name[open+1 : len(name)-1])
}
