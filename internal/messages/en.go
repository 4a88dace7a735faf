package messages

import "globalint/internal/rules"

const (
	enR1Head = "The behavior of '%[1]s' could vary based on the current user's locale settings. " +
		"Replace this call in '%[2]s' with a call to '%[3]s'"
	enR1StringTail = " If the result will be displayed to the user, specify 'CultureInfo.CurrentCulture'; " +
		"if it will be stored or read by software, specify 'CultureInfo.InvariantCulture'."
	enR1bTail = " This property returns a culture that selects the user interface language " +
		"and is inappropriate for formatting."
	enR2Head = "'%[1]s' has a method overload that takes a string comparison parameter. " +
		"Replace this call in '%[2]s' with a call to '%[3]s'"
)

var english = map[rules.Template]string{
	rules.TplFormatProviderLeadingString:  enR1Head + ", passing the format provider first." + enR1StringTail,
	rules.TplFormatProviderTrailingString: enR1Head + ", passing the format provider last." + enR1StringTail,
	rules.TplFormatProviderLeading:        enR1Head + ", passing the format provider first.",
	rules.TplFormatProviderTrailing:       enR1Head + ", passing the format provider last.",

	rules.TplUICultureLeadingString:  "'%[1]s' passes '%[2]s' as the leading 'IFormatProvider' argument to '%[3]s', so the returned string is formatted for the UI language." + enR1bTail,
	rules.TplUICultureTrailingString: "'%[1]s' passes '%[2]s' as the trailing 'IFormatProvider' argument to '%[3]s', so the returned string is formatted for the UI language." + enR1bTail,
	rules.TplUICultureLeading:        "'%[1]s' passes '%[2]s' as the leading 'IFormatProvider' argument to '%[3]s'." + enR1bTail,
	rules.TplUICultureTrailing:       "'%[1]s' passes '%[2]s' as the trailing 'IFormatProvider' argument to '%[3]s'." + enR1bTail,
	rules.TplUICultureDefault:        "'%[1]s' declares '%[2]s' as the default 'IFormatProvider'." + enR1bTail,

	rules.TplStringComparisonLeadingString:  enR2Head + ", passing the comparison first, so the returned string does not depend on the current culture.",
	rules.TplStringComparisonTrailingString: enR2Head + ", passing the comparison last, so the returned string does not depend on the current culture.",
	rules.TplStringComparisonLeading:        enR2Head + ", passing the comparison first, for clarity of intent.",
	rules.TplStringComparisonTrailing:       enR2Head + ", passing the comparison last, for clarity of intent.",

	rules.TplUseOrdinalStringComparison: "'%[1]s' passes '%[2]s' as the comparison parameter to '%[3]s'. " +
		"To perform a non-linguistic comparison, specify 'StringComparison.Ordinal' or 'StringComparison.OrdinalIgnoreCase' instead.",
	rules.TplUseOrdinalStringComparer: "'%[1]s' passes '%[2]s' as the 'StringComparer' parameter to '%[3]s'. " +
		"To perform a non-linguistic comparison, specify 'StringComparer.Ordinal' or 'StringComparer.OrdinalIgnoreCase' instead.",
	rules.TplUseOrdinalDefault: "'%[1]s' declares '%[2]s' as the default comparison. " +
		"To perform a non-linguistic comparison, default to 'StringComparison.Ordinal' or 'StringComparison.OrdinalIgnoreCase' instead.",
}

var englishNotes = map[string]string{
	noteSuggested:  "consider calling '%[1]s'",
	noteCalledFrom: "called from '%[1]s' without this argument",
}
