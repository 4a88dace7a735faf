// Package overload finds the culture-explicit sibling of a resolved method.
package overload

import (
	"globalint/internal/symbols"
)

// Position tells where the context parameter sits in the explicit overload.
type Position uint8

const (
	Trailing Position = iota
	Leading
)

func (p Position) String() string {
	if p == Leading {
		return "leading"
	}
	return "trailing"
}

// Inserted names the kind of context parameter the sibling adds.
type Inserted uint8

const (
	InsertedFormatProvider Inserted = iota + 1
	InsertedStringComparison
	InsertedCultureInfo
	// InsertedBoolCulture is the (bool ignoreCase, CultureInfo) pair.
	InsertedBoolCulture
)

func (k Inserted) String() string {
	switch k {
	case InsertedFormatProvider:
		return "IFormatProvider"
	case InsertedStringComparison:
		return "StringComparison"
	case InsertedCultureInfo:
		return "CultureInfo"
	case InsertedBoolCulture:
		return "bool, CultureInfo"
	default:
		return "none"
	}
}

// FormatRelated reports whether the insertion is a formatting context (R1)
// rather than a comparison context (R2).
func (k Inserted) FormatRelated() bool {
	return k == InsertedFormatProvider || k == InsertedCultureInfo
}

// Match is the unique explicit overload found for a resolved method.
type Match struct {
	Sibling  *symbols.MethodSignature
	Position Position
	Inserted Inserted
}

// FindExplicitOverload looks for the single sibling whose parameters equal the
// resolved ones plus exactly one context parameter (or the bool/CultureInfo
// pair) at the front or at the end. Any ambiguity yields no match.
func FindExplicitOverload(resolved *symbols.MethodSignature, siblings symbols.SiblingSet) (Match, bool) {
	if resolved == nil {
		return Match{}, false
	}
	match, found, ambiguous := searchTier(resolved, siblings, 1)
	if ambiguous {
		return Match{}, false
	}
	if found {
		return match, true
	}
	match, found, ambiguous = searchTier(resolved, siblings, 2)
	if ambiguous || !found {
		return Match{}, false
	}
	return match, true
}

// searchTier checks siblings that are `width` parameters longer than resolved.
func searchTier(resolved *symbols.MethodSignature, siblings symbols.SiblingSet, width int) (match Match, found, ambiguous bool) {
	count := len(resolved.Params)
	for _, sib := range siblings.WithArity(count + width) {
		if sib == resolved {
			continue
		}
		var (
			hits int
			hit  Match
		)
		for k := 0; k <= count; k++ {
			kind, ok := insertedAt(sib.Params, k, width)
			if !ok {
				continue
			}
			pos, ok := positionOf(k, count)
			if !ok {
				continue
			}
			if !symbols.SameParamTypes(without(sib.Params, k, width), resolved.Params) {
				continue
			}
			hits++
			hit = Match{Sibling: sib, Position: pos, Inserted: kind}
		}
		switch {
		case hits > 1:
			return Match{}, false, true
		case hits == 1 && found:
			return Match{}, false, true
		case hits == 1:
			match, found = hit, true
		}
	}
	return match, found, false
}

func positionOf(k, count int) (Position, bool) {
	switch {
	case k == count:
		// count == 0 lands here, so a lone context parameter is trailing
		return Trailing, true
	case k == 0:
		return Leading, true
	default:
		return 0, false
	}
}

func insertedAt(params []symbols.Parameter, k, width int) (Inserted, bool) {
	if width == 1 {
		switch params[k].Category {
		case symbols.CategoryFormatProvider:
			return InsertedFormatProvider, true
		case symbols.CategoryStringComparison:
			return InsertedStringComparison, true
		case symbols.CategoryCultureInfo:
			return InsertedCultureInfo, true
		}
		return 0, false
	}
	if params[k].Category == symbols.CategoryBool && params[k+1].Category == symbols.CategoryCultureInfo {
		return InsertedBoolCulture, true
	}
	return 0, false
}

func without(params []symbols.Parameter, k, width int) []symbols.Parameter {
	out := make([]symbols.Parameter, 0, len(params)-width)
	out = append(out, params[:k]...)
	return append(out, params[k+width:]...)
}
