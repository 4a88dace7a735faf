package symbols

import (
	"strings"
)

// Canonical names of the library types the rules care about.
const (
	TypeString                  = "System.String"
	TypeObject                  = "System.Object"
	TypeBool                    = "System.Boolean"
	TypeVoid                    = "System.Void"
	TypeFormatProvider          = "System.IFormatProvider"
	TypeStringComparison        = "System.StringComparison"
	TypeCultureInfo             = "System.Globalization.CultureInfo"
	TypeStringComparer          = "System.StringComparer"
	TypeComparer                = "System.Collections.Comparer"
	TypeCaseInsensitiveComparer = "System.Collections.CaseInsensitiveComparer"
	TypeIComparer               = "System.Collections.IComparer"
	TypeIEqualityComparer       = "System.Collections.IEqualityComparer"
	TypeThread                  = "System.Threading.Thread"
)

// TypeCategory buckets a parameter type by its role in locale-sensitive APIs.
type TypeCategory uint8

const (
	CategoryOther TypeCategory = iota
	CategoryString
	CategoryFormatProvider
	CategoryStringComparison
	CategoryCultureInfo
	CategoryBool
	// CategoryComparer covers StringComparer and the IComparer/IEqualityComparer family.
	CategoryComparer
)

func (c TypeCategory) String() string {
	switch c {
	case CategoryString:
		return "string"
	case CategoryFormatProvider:
		return "IFormatProvider"
	case CategoryStringComparison:
		return "StringComparison"
	case CategoryCultureInfo:
		return "CultureInfo"
	case CategoryBool:
		return "bool"
	case CategoryComparer:
		return "StringComparer"
	default:
		return "other"
	}
}

// IsContext reports whether values of this category select a culture or a
// comparison mode.
func (c TypeCategory) IsContext() bool {
	switch c {
	case CategoryFormatProvider, CategoryStringComparison, CategoryCultureInfo, CategoryComparer:
		return true
	default:
		return false
	}
}

// CategoryOf classifies a canonical type name.
func CategoryOf(canonical string) TypeCategory {
	switch canonical {
	case TypeString:
		return CategoryString
	case TypeFormatProvider:
		return CategoryFormatProvider
	case TypeStringComparison:
		return CategoryStringComparison
	case TypeCultureInfo:
		return CategoryCultureInfo
	case TypeBool:
		return CategoryBool
	case TypeStringComparer, TypeComparer, TypeCaseInsensitiveComparer, TypeIComparer, TypeIEqualityComparer:
		return CategoryComparer
	}
	if strings.HasPrefix(canonical, "System.Collections.Generic.IComparer<") ||
		strings.HasPrefix(canonical, "System.Collections.Generic.IEqualityComparer<") {
		return CategoryComparer
	}
	return CategoryOther
}

var keywordTypes = map[string]string{
	"System.String":  "string",
	"System.Object":  "object",
	"System.Boolean": "bool",
	"System.Char":    "char",
	"System.SByte":   "sbyte",
	"System.Byte":    "byte",
	"System.Int16":   "short",
	"System.UInt16":  "ushort",
	"System.Int32":   "int",
	"System.UInt32":  "uint",
	"System.Int64":   "long",
	"System.UInt64":  "ulong",
	"System.Single":  "float",
	"System.Double":  "double",
	"System.Decimal": "decimal",
	"System.Void":    "void",
}

var canonicalKeywords = func() map[string]string {
	out := make(map[string]string, len(keywordTypes))
	for canon, kw := range keywordTypes {
		out[kw] = canon
	}
	return out
}()

// KeywordCanonical maps a C# keyword type (int, string...) to its canonical name.
func KeywordCanonical(keyword string) (string, bool) {
	canon, ok := canonicalKeywords[keyword]
	return canon, ok
}

// DisplayType renders a canonical type name the way C# compiler messages do:
// keywords for primitive types, full names for everything else.
func DisplayType(canonical string) string {
	if canonical == "" {
		return ""
	}
	if strings.HasSuffix(canonical, "[]") {
		return DisplayType(strings.TrimSuffix(canonical, "[]")) + "[]"
	}
	if strings.HasSuffix(canonical, "?") {
		return DisplayType(strings.TrimSuffix(canonical, "?")) + "?"
	}
	if kw, ok := keywordTypes[canonical]; ok {
		return kw
	}
	open := strings.IndexByte(canonical, '<')
	if open < 0 || !strings.HasSuffix(canonical, ">") {
		return canonical
	}
	args := SplitTypeArgs(canonical[open+1 : len(canonical)-1])
	for i, arg := range args {
		args[i] = DisplayType(arg)
	}
	return canonical[:open] + "<" + strings.Join(args, ", ") + ">"
}

// SplitTypeArgs splits a generic argument list on top-level commas.
func SplitTypeArgs(list string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '<', '[', '(':
			depth++
		case '>', ']', ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(list[start:]); tail != "" || len(out) > 0 {
		out = append(out, tail)
	}
	return out
}

// SimpleName returns the last dotted segment of a canonical type name without
// generic arguments: System.Collections.Generic.Dictionary<K, V> -> Dictionary.
func SimpleName(canonical string) string {
	if open := strings.IndexByte(canonical, '<'); open >= 0 {
		canonical = canonical[:open]
	}
	if dot := strings.LastIndexByte(canonical, '.'); dot >= 0 {
		return canonical[dot+1:]
	}
	return canonical
}
