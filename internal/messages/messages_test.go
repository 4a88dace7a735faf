package messages

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"globalint/internal/rules"
)

func TestEveryTemplateIsTranslated(t *testing.T) {
	for _, tpl := range rules.AllTemplates() {
		require.Contains(t, english, tpl)
		require.Contains(t, russian, tpl)
	}
	assert.Len(t, english, len(rules.AllTemplates()))
	assert.Len(t, russian, len(rules.AllTemplates()))
}

func TestRenderEnglish(t *testing.T) {
	r := NewRenderer("en")
	got := r.Record(rules.Record{
		Template: rules.TplUseOrdinalStringComparison,
		Args:     []string{"Program.Run()", "StringComparison.InvariantCulture", "string.Equals(string, string, System.StringComparison)"},
	})
	assert.Equal(t, "'Program.Run()' passes 'StringComparison.InvariantCulture' as the comparison parameter to "+
		"'string.Equals(string, string, System.StringComparison)'. To perform a non-linguistic comparison, "+
		"specify 'StringComparison.Ordinal' or 'StringComparison.OrdinalIgnoreCase' instead.", got)
}

func TestRenderRussian(t *testing.T) {
	r := NewRenderer("ru-RU")
	assert.Equal(t, language.Russian, r.Tag())
	got := r.Template(rules.TplUseOrdinalDefault, []string{"App.M(string)", "StringComparison.InvariantCulture"})
	assert.True(t, strings.HasPrefix(got, "'App.M(string)' объявляет 'StringComparison.InvariantCulture'"), got)
	assert.Equal(t, "рассмотрите вызов 'string.Compare(string, string)'", r.Suggested("string.Compare(string, string)"))
}

func TestRenderArgumentOrder(t *testing.T) {
	r := NewRenderer("")
	got := r.Template(rules.TplFormatProviderLeading, []string{"CALLEE", "CALLER", "SUGGESTED"})
	callee := strings.Index(got, "CALLEE")
	caller := strings.Index(got, "CALLER")
	suggested := strings.Index(got, "SUGGESTED")
	require.True(t, callee >= 0 && caller >= 0 && suggested >= 0, got)
	assert.Less(t, callee, caller)
	assert.Less(t, caller, suggested)
	assert.NotContains(t, got, "%!")
}

func TestMatchFallsBack(t *testing.T) {
	assert.Equal(t, language.English, Match(""))
	assert.Equal(t, language.English, Match("not a tag!"))
	assert.Equal(t, language.English, Match("ja"))
	assert.Equal(t, language.Russian, Match("ru"))
}

func TestUnknownTemplate(t *testing.T) {
	got := NewRenderer("en").Template("Nope", []string{"a"})
	assert.Equal(t, "Nope [a]", got)
}

func TestComparisonTextsFitCulturePairs(t *testing.T) {
	tpls := []rules.Template{
		rules.TplStringComparisonLeading,
		rules.TplStringComparisonTrailing,
		rules.TplStringComparisonLeadingString,
		rules.TplStringComparisonTrailingString,
		rules.TplUseOrdinalStringComparison,
	}
	args := []string{"string.Compare(string, string)", "App.Sort()", "string.Compare(string, string, bool, System.Globalization.CultureInfo)"}
	for _, lang := range []string{"en", "ru"} {
		r := NewRenderer(lang)
		for _, tpl := range tpls {
			got := r.Template(tpl, args)
			assert.NotContains(t, got, "'StringComparison' parameter", got)
			assert.NotContains(t, got, "параметром 'StringComparison'", got)
		}
	}
	got := NewRenderer("en").Template(rules.TplUseOrdinalStringComparison,
		[]string{"App.Sort()", "CultureInfo.InvariantCulture", "string.Compare(string, string, bool, System.Globalization.CultureInfo)"})
	assert.Contains(t, got, "passes 'CultureInfo.InvariantCulture' as the comparison parameter to")
}
