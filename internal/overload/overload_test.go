package overload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalint/internal/symbols"
)

const numberStyles = "System.Globalization.NumberStyles"

func sig(typ, name, ret string, params ...string) *symbols.MethodSignature {
	s := &symbols.MethodSignature{ContainingType: typ, Name: name, ReturnType: ret, IsStatic: true}
	for i, p := range params {
		s.Params = append(s.Params, symbols.NewParameter(string(rune('a'+i)), p))
	}
	return s
}

func TestFindExplicitOverloadLeading(t *testing.T) {
	resolved := sig(symbols.TypeString, "Format", symbols.TypeString, symbols.TypeString, symbols.TypeObject)
	explicit := sig(symbols.TypeString, "Format", symbols.TypeString, symbols.TypeFormatProvider, symbols.TypeString, symbols.TypeObject)
	other := sig(symbols.TypeString, "Format", symbols.TypeString, symbols.TypeString, symbols.TypeObject, symbols.TypeObject)

	m, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, explicit, other})
	require.True(t, ok)
	assert.Same(t, explicit, m.Sibling)
	assert.Equal(t, Leading, m.Position)
	assert.Equal(t, InsertedFormatProvider, m.Inserted)
}

func TestFindExplicitOverloadTrailing(t *testing.T) {
	resolved := sig("System.Int32", "Parse", "System.Int32", symbols.TypeString, numberStyles)
	explicit := sig("System.Int32", "Parse", "System.Int32", symbols.TypeString, numberStyles, symbols.TypeFormatProvider)

	m, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, explicit})
	require.True(t, ok)
	assert.Equal(t, Trailing, m.Position)
	assert.Equal(t, "int.Parse(string, System.Globalization.NumberStyles, System.IFormatProvider)", m.Sibling.String())
}

func TestFindExplicitOverloadZeroParamsIsTrailing(t *testing.T) {
	resolved := sig("System.Int32", "ToString", symbols.TypeString)
	resolved.IsStatic = false
	explicit := sig("System.Int32", "ToString", symbols.TypeString, symbols.TypeFormatProvider)

	m, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, explicit})
	require.True(t, ok)
	assert.Equal(t, Trailing, m.Position)
}

func TestFindExplicitOverloadRejectsMiddleInsertion(t *testing.T) {
	resolved := sig("App.U", "M", "", symbols.TypeString, symbols.TypeObject)
	middle := sig("App.U", "M", "", symbols.TypeString, symbols.TypeFormatProvider, symbols.TypeObject)

	_, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, middle})
	assert.False(t, ok)
}

func TestFindExplicitOverloadAmbiguousSiblings(t *testing.T) {
	resolved := sig("App.U", "M", "", symbols.TypeString)
	leading := sig("App.U", "M", "", symbols.TypeFormatProvider, symbols.TypeString)
	trailing := sig("App.U", "M", "", symbols.TypeString, symbols.TypeFormatProvider)

	_, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, leading, trailing})
	assert.False(t, ok, "two qualifying siblings must abandon the search")
}

func TestFindExplicitOverloadAmbiguousPosition(t *testing.T) {
	// M(IFormatProvider) vs M(IFormatProvider, IFormatProvider): removal at 0 and at 1 both work
	resolved := sig("App.U", "M", "", symbols.TypeFormatProvider)
	doubled := sig("App.U", "M", "", symbols.TypeFormatProvider, symbols.TypeFormatProvider)

	_, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, doubled})
	assert.False(t, ok)
}

func TestFindExplicitOverloadIgnoresReturnType(t *testing.T) {
	resolved := sig("App.U", "M", symbols.TypeString, symbols.TypeString)
	explicit := sig("App.U", "M", symbols.TypeObject, symbols.TypeString, symbols.TypeStringComparison)

	m, ok := FindExplicitOverload(resolved, symbols.SiblingSet{explicit, resolved})
	require.True(t, ok)
	assert.Equal(t, InsertedStringComparison, m.Inserted)
	assert.False(t, m.Inserted.FormatRelated())
}

func TestFindExplicitOverloadRequiresIdenticalTypes(t *testing.T) {
	resolved := sig("App.U", "M", "", symbols.TypeString, symbols.TypeObject)
	explicit := sig("App.U", "M", "", symbols.TypeString, symbols.TypeString, symbols.TypeFormatProvider)

	_, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, explicit})
	assert.False(t, ok)
}

func TestFindExplicitOverloadCompoundPair(t *testing.T) {
	resolved := sig(symbols.TypeString, "Compare", "System.Int32", symbols.TypeString, symbols.TypeString)
	pair := sig(symbols.TypeString, "Compare", "System.Int32", symbols.TypeString, symbols.TypeString, symbols.TypeBool, symbols.TypeCultureInfo)

	m, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, pair})
	require.True(t, ok)
	assert.Equal(t, InsertedBoolCulture, m.Inserted)
	assert.Equal(t, Trailing, m.Position)
}

func TestFindExplicitOverloadSingleTierWins(t *testing.T) {
	resolved := sig(symbols.TypeString, "Compare", "System.Int32", symbols.TypeString, symbols.TypeString)
	single := sig(symbols.TypeString, "Compare", "System.Int32", symbols.TypeString, symbols.TypeString, symbols.TypeStringComparison)
	pair := sig(symbols.TypeString, "Compare", "System.Int32", symbols.TypeString, symbols.TypeString, symbols.TypeBool, symbols.TypeCultureInfo)

	m, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved, pair, single})
	require.True(t, ok)
	assert.Same(t, single, m.Sibling)
}

func TestFindExplicitOverloadNoSiblings(t *testing.T) {
	resolved := sig("App.U", "M", "", symbols.TypeString)
	_, ok := FindExplicitOverload(resolved, symbols.SiblingSet{resolved})
	assert.False(t, ok)
	_, ok = FindExplicitOverload(nil, nil)
	assert.False(t, ok)
}
