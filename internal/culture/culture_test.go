package culture

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"globalint/internal/symbols"
)

type foldMap map[string]symbols.WellKnownMember

func (f foldMap) ConstantValueOf(expr symbols.Expr) (symbols.WellKnownMember, bool) {
	m, ok := f[expr.Text()]
	return m, ok
}

func TestLookupTable(t *testing.T) {
	tests := []struct {
		typ, name string
		want      Sensitivity
	}{
		{symbols.TypeStringComparison, "Ordinal", OrdinalSafe},
		{symbols.TypeStringComparison, "OrdinalIgnoreCase", OrdinalSafe},
		{symbols.TypeStringComparer, "OrdinalIgnoreCase", OrdinalSafe},
		{symbols.TypeStringComparison, "CurrentCultureIgnoreCase", CurrentCulture},
		{symbols.TypeCultureInfo, "CurrentCulture", CurrentCulture},
		{symbols.TypeComparer, "Default", CurrentCulture},
		{symbols.TypeStringComparison, "InvariantCultureIgnoreCase", InvariantCulture},
		{symbols.TypeCultureInfo, "InvariantCulture", InvariantCulture},
		{symbols.TypeStringComparer, "InvariantCulture", InvariantCulture},
		{symbols.TypeCaseInsensitiveComparer, "DefaultInvariant", InvariantCulture},
		{symbols.TypeCultureInfo, "CurrentUICulture", CurrentUICulture},
		{symbols.TypeCultureInfo, "InstalledUICulture", CurrentUICulture},
		{symbols.TypeCultureInfo, "Name", Unknown},
		{"App.Settings", "InvariantCulture", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.typ+"."+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(symbols.Member(tt.typ, tt.name)))
		})
	}
}

func TestLookupThreadCultures(t *testing.T) {
	cur := symbols.WellKnownMember{Type: symbols.TypeThread, Name: "CurrentCulture"}
	ui := symbols.WellKnownMember{Type: symbols.TypeThread, Name: "CurrentUICulture"}
	assert.Equal(t, CurrentCulture, Lookup(cur))
	assert.Equal(t, CurrentUICulture, Lookup(ui))
}

func TestLookupConstructions(t *testing.T) {
	inv := symbols.Member(symbols.TypeCultureInfo, "InvariantCulture")
	ui := symbols.Member(symbols.TypeCultureInfo, "CurrentUICulture")
	emptyLit := symbols.StringLiteral("")

	tests := []struct {
		name string
		m    symbols.WellKnownMember
		want Sensitivity
	}{
		{"new CultureInfo(\"\")", symbols.Construction(symbols.TypeCultureInfo, &emptyLit), InvariantCulture},
		{"new CultureInfo(\"\") literal form", symbols.Construction(symbols.TypeCultureInfo, nil).WithLiteral(""), InvariantCulture},
		{"new CultureInfo(\"fr-FR\")", symbols.Construction(symbols.TypeCultureInfo, nil).WithLiteral("fr-FR"), Unknown},
		{"GetCultureInfo(\"\")", symbols.Member(symbols.TypeCultureInfo, "GetCultureInfo").WithLiteral(""), InvariantCulture},
		{"GetCultureInfo(\"en-US\")", symbols.Member(symbols.TypeCultureInfo, "GetCultureInfo").WithLiteral("en-US"), Unknown},
		{"new Comparer(invariant)", symbols.Construction(symbols.TypeComparer, &inv), InvariantCulture},
		{"new CaseInsensitiveComparer(ui)", symbols.Construction(symbols.TypeCaseInsensitiveComparer, &ui), CurrentUICulture},
		{"new Comparer()", symbols.Construction(symbols.TypeComparer, nil), Unknown},
		{"new SortedList(invariant)", symbols.Construction("System.Collections.SortedList", &inv), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(tt.m))
		})
	}
}

func TestClassifyThroughModel(t *testing.T) {
	model := foldMap{
		"StringComparison.InvariantCulture": symbols.Member(symbols.TypeStringComparison, "InvariantCulture"),
	}
	expr := func(s string) symbols.Expr { return symbols.SourceExpr{Src: s} }

	assert.Equal(t, InvariantCulture, Classify(model, expr("StringComparison.InvariantCulture")))
	assert.Equal(t, Unknown, Classify(model, expr("someLocal")))
	assert.Equal(t, Unknown, Classify(model, nil))
	assert.Equal(t, Unknown, Classify(nil, expr("x")))
}

func TestSensitivityUnsafe(t *testing.T) {
	assert.True(t, InvariantCulture.Unsafe())
	assert.True(t, CurrentUICulture.Unsafe())
	assert.False(t, CurrentCulture.Unsafe())
	assert.False(t, OrdinalSafe.Unsafe())
	assert.False(t, Unknown.Unsafe())
}
