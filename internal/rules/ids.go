package rules

import "strings"

// ID is a stable rule identifier.
type ID string

const (
	RuleSpecifyFormatProvider   ID = "R1-specify-IFormatProvider"
	RuleFormatProviderUICulture ID = "R1b-specify-IFormatProvider-UICulture"
	RuleSpecifyStringComparison ID = "R2-specify-StringComparison"
	RuleUseOrdinalComparison    ID = "R3-use-ordinal-comparison"
)

// Template is the key of a message shape; texts live in the messages package.
type Template string

const (
	// R1: args callee, caller, suggested overload.
	TplFormatProviderLeadingString  Template = "SpecifyIFormatProviderLeadingString"
	TplFormatProviderLeading        Template = "SpecifyIFormatProviderLeading"
	TplFormatProviderTrailingString Template = "SpecifyIFormatProviderTrailingString"
	TplFormatProviderTrailing       Template = "SpecifyIFormatProviderTrailing"

	// R1b: args caller, culprit, resolved method.
	TplUICultureLeadingString  Template = "SpecifyIFormatProviderUICultureLeadingString"
	TplUICultureLeading        Template = "SpecifyIFormatProviderUICultureLeading"
	TplUICultureTrailingString Template = "SpecifyIFormatProviderUICultureTrailingString"
	TplUICultureTrailing       Template = "SpecifyIFormatProviderUICultureTrailing"
	// args declaring method, default value.
	TplUICultureDefault Template = "SpecifyIFormatProviderUICultureDefault"

	// R2: args callee, caller, suggested overload.
	TplStringComparisonLeadingString  Template = "SpecifyStringComparisonLeadingString"
	TplStringComparisonLeading        Template = "SpecifyStringComparisonLeading"
	TplStringComparisonTrailingString Template = "SpecifyStringComparisonTrailingString"
	TplStringComparisonTrailing       Template = "SpecifyStringComparisonTrailing"

	// R3: args caller, culprit, resolved method.
	TplUseOrdinalStringComparison Template = "UseOrdinalStringComparison"
	TplUseOrdinalStringComparer   Template = "UseOrdinalStringComparer"
	// args declaring method, default value.
	TplUseOrdinalDefault Template = "UseOrdinalStringComparisonDefault"
)

// Info is the static description of a rule.
type Info struct {
	ID        ID
	Title     string
	Help      string
	Templates []Template
}

var catalog = []Info{
	{
		ID:    RuleSpecifyFormatProvider,
		Title: "Specify IFormatProvider",
		Help: "A method is called through an overload that silently uses the current culture " +
			"while an overload accepting an IFormatProvider or CultureInfo exists.",
		Templates: []Template{
			TplFormatProviderLeadingString, TplFormatProviderLeading,
			TplFormatProviderTrailingString, TplFormatProviderTrailing,
		},
	},
	{
		ID:    RuleFormatProviderUICulture,
		Title: "Do not format with the UI culture",
		Help: "CurrentUICulture and InstalledUICulture select resource languages; " +
			"they are not meant to drive number and date formatting.",
		Templates: []Template{
			TplUICultureLeadingString, TplUICultureLeading,
			TplUICultureTrailingString, TplUICultureTrailing,
			TplUICultureDefault,
		},
	},
	{
		ID:    RuleSpecifyStringComparison,
		Title: "Specify StringComparison",
		Help: "A string comparison is called through an overload with an implicit comparison mode " +
			"while an overload accepting a StringComparison exists.",
		Templates: []Template{
			TplStringComparisonLeadingString, TplStringComparisonLeading,
			TplStringComparisonTrailingString, TplStringComparisonTrailing,
		},
	},
	{
		ID:    RuleUseOrdinalComparison,
		Title: "Use ordinal string comparison",
		Help: "Invariant-culture comparisons are linguistic and rarely what non-linguistic code wants; " +
			"use Ordinal or OrdinalIgnoreCase.",
		Templates: []Template{
			TplUseOrdinalStringComparison, TplUseOrdinalStringComparer, TplUseOrdinalDefault,
		},
	},
}

// All returns the rule descriptions in stable order.
func All() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a rule by id.
func Lookup(id ID) (Info, bool) {
	for _, info := range catalog {
		if info.ID == id {
			return info, true
		}
	}
	return Info{}, false
}

// AllTemplates lists every template key of every rule.
func AllTemplates() []Template {
	var out []Template
	for _, info := range catalog {
		out = append(out, info.Templates...)
	}
	return out
}

// Short returns the leading tag of the id, e.g. "R1b".
func (id ID) Short() string {
	s := string(id)
	if i := strings.IndexByte(s, '-'); i > 0 {
		return s[:i]
	}
	return s
}

// Parse accepts a full rule id or its short tag, case-insensitively.
func Parse(name string) (ID, bool) {
	name = strings.TrimSpace(name)
	for _, info := range catalog {
		if strings.EqualFold(name, string(info.ID)) || strings.EqualFold(name, info.ID.Short()) {
			return info.ID, true
		}
	}
	return "", false
}
