package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalint/internal/symbols"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := Default()

	str, ok := c.Lookup("string")
	require.True(t, ok)
	assert.Equal(t, symbols.TypeString, str.Name)
	assert.Len(t, str.Methods("Format"), 8)

	i32, ok := c.Lookup("int")
	require.True(t, ok)
	parse := i32.Methods("Parse")
	require.Len(t, parse, 4)
	assert.Equal(t, "System.Int32", parse[0].ReturnType, "Self is replaced by the declaring type")
	assert.Equal(t, "int.Parse(string, System.Globalization.NumberStyles, System.IFormatProvider)", parse[3].String())
}

func TestLookupByQualifiedAndGenericName(t *testing.T) {
	c := Default()
	for _, name := range []string{
		"System.Globalization.CultureInfo",
		"CultureInfo",
		"Dictionary<string, int>",
		"System.Collections.Generic.Dictionary<System.String, System.Int32>",
	} {
		_, ok := c.Lookup(name)
		assert.True(t, ok, name)
	}
	_, ok := c.Lookup("App.Unknown")
	assert.False(t, ok)
}

func TestPropertiesAndEnums(t *testing.T) {
	c := Default()

	ci, _ := c.Lookup("CultureInfo")
	assert.Equal(t, symbols.TypeCultureInfo, ci.StaticProperties["InvariantCulture"])

	th, _ := c.Lookup("Thread")
	assert.Equal(t, symbols.TypeThread, th.StaticProperties["CurrentThread"])
	assert.Equal(t, symbols.TypeCultureInfo, th.Properties["CurrentUICulture"])

	sc, _ := c.Lookup("StringComparison")
	assert.Equal(t, KindEnum, sc.Kind)
	assert.True(t, sc.IsEnumMember("OrdinalIgnoreCase"))
	assert.False(t, sc.IsEnumMember("Bogus"))
}

func TestConstructors(t *testing.T) {
	c := Default()
	sl, _ := c.Lookup("SortedList")
	ctors := sl.Constructors()
	require.Len(t, ctors, 4)
	assert.Equal(t, "System.Collections.SortedList.SortedList(System.Collections.IComparer)", ctors[1].String())
	assert.True(t, ctors[1].HasContextParam())

	dict, _ := c.Lookup("Dictionary")
	assert.Equal(t, symbols.CategoryComparer, dict.Constructors()[2].Params[0].Category)
}

func TestAssignableTo(t *testing.T) {
	c := Default()
	assert.True(t, c.AssignableTo(symbols.TypeCultureInfo, symbols.TypeFormatProvider))
	assert.True(t, c.AssignableTo(symbols.TypeStringComparer, "System.Collections.Generic.IEqualityComparer<TKey>"))
	assert.True(t, c.AssignableTo("System.Int32", symbols.TypeObject))
	assert.False(t, c.AssignableTo(symbols.TypeString, symbols.TypeFormatProvider))
}

func TestParseSignature(t *testing.T) {
	sig, err := ParseSignature("static string Format(System.IFormatProvider provider, string format, params object[] args)", symbols.TypeString)
	require.NoError(t, err)
	assert.True(t, sig.IsStatic)
	assert.Equal(t, symbols.TypeString, sig.ReturnType)
	require.Len(t, sig.Params, 3)
	assert.Equal(t, "System.Object[]", sig.Params[2].Type)
	assert.True(t, sig.Params[2].IsParams)
	assert.Equal(t, symbols.CategoryFormatProvider, sig.Params[0].Category)

	ctor, err := ParseSignature(".ctor()", "System.Collections.CaseInsensitiveComparer")
	require.NoError(t, err)
	assert.True(t, ctor.IsConstructor)
	assert.Empty(t, ctor.Params)

	for _, bad := range []string{"Format", "(string s)", "static Format(string s)", "void M(string)", "void M(params object[] a, int b)"} {
		_, err := ParseSignature(bad, "X")
		assert.Error(t, err, bad)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("types:\n  - name: A\n  - name: A\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("types:\n  - kind: class\n"))
	assert.Error(t, err)
	_, err = Parse([]byte("types: [unclosed"))
	assert.Error(t, err)
}

func TestCanonicalType(t *testing.T) {
	assert.Equal(t, "System.Collections.Generic.Dictionary<System.String, System.Int32>",
		CanonicalType("System.Collections.Generic.Dictionary<string, int>", ""))
	assert.Equal(t, "System.Int32?", CanonicalType("int?", ""))
	assert.Equal(t, "App.Money", CanonicalType("Self", "App.Money"))
}

func TestConstructorsOfConstructedType(t *testing.T) {
	c := Default()
	const name = "System.Collections.Generic.Dictionary<System.String, System.Int32>"
	dict, ok := c.Lookup(name)
	require.True(t, ok)

	ctors := dict.ConstructorsOf(name)
	require.Len(t, ctors, len(dict.Constructors()))
	assert.Equal(t, "System.Collections.Generic.Dictionary<string, int>.Dictionary(System.Collections.Generic.IEqualityComparer<string>)",
		ctors[2].String())
	assert.Equal(t, symbols.CategoryComparer, ctors[2].Params[0].Category)
	assert.Equal(t, "System.Collections.Generic.IEqualityComparer<TKey>", dict.Constructors()[2].Params[0].Type)
	assert.Same(t, ctors[2], dict.ConstructorsOf(name)[2])

	assert.Equal(t, dict.Constructors(), dict.ConstructorsOf("Dictionary"))
	assert.Equal(t, dict.Constructors(), dict.ConstructorsOf("Dictionary<System.String>"))
}
