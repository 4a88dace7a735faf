package messages

import "globalint/internal/rules"

const (
	ruR1Head = "Поведение '%[1]s' зависит от региональных настроек текущего пользователя. " +
		"Замените этот вызов в '%[2]s' на вызов '%[3]s'"
	ruR1StringTail = " Если результат показывается пользователю, передайте 'CultureInfo.CurrentCulture'; " +
		"если он сохраняется или читается программой, передайте 'CultureInfo.InvariantCulture'."
	ruR1bTail = " Это свойство возвращает культуру языка интерфейса, " +
		"она не предназначена для форматирования."
	ruR2Head = "У '%[1]s' есть перегрузка с параметром способа сравнения строк. " +
		"Замените этот вызов в '%[2]s' на вызов '%[3]s'"
)

var russian = map[rules.Template]string{
	rules.TplFormatProviderLeadingString:  ruR1Head + ", передав поставщик формата первым аргументом." + ruR1StringTail,
	rules.TplFormatProviderTrailingString: ruR1Head + ", передав поставщик формата последним аргументом." + ruR1StringTail,
	rules.TplFormatProviderLeading:        ruR1Head + ", передав поставщик формата первым аргументом.",
	rules.TplFormatProviderTrailing:       ruR1Head + ", передав поставщик формата последним аргументом.",

	rules.TplUICultureLeadingString:  "'%[1]s' передаёт '%[2]s' первым аргументом 'IFormatProvider' в '%[3]s', поэтому строка форматируется по языку интерфейса." + ruR1bTail,
	rules.TplUICultureTrailingString: "'%[1]s' передаёт '%[2]s' последним аргументом 'IFormatProvider' в '%[3]s', поэтому строка форматируется по языку интерфейса." + ruR1bTail,
	rules.TplUICultureLeading:        "'%[1]s' передаёт '%[2]s' первым аргументом 'IFormatProvider' в '%[3]s'." + ruR1bTail,
	rules.TplUICultureTrailing:       "'%[1]s' передаёт '%[2]s' последним аргументом 'IFormatProvider' в '%[3]s'." + ruR1bTail,
	rules.TplUICultureDefault:        "'%[1]s' объявляет '%[2]s' значением 'IFormatProvider' по умолчанию." + ruR1bTail,

	rules.TplStringComparisonLeadingString:  ruR2Head + ", передав способ сравнения первым аргументом, чтобы результат не зависел от текущей культуры.",
	rules.TplStringComparisonTrailingString: ruR2Head + ", передав способ сравнения последним аргументом, чтобы результат не зависел от текущей культуры.",
	rules.TplStringComparisonLeading:        ruR2Head + ", передав способ сравнения первым аргументом, чтобы намерение было явным.",
	rules.TplStringComparisonTrailing:       ruR2Head + ", передав способ сравнения последним аргументом, чтобы намерение было явным.",

	rules.TplUseOrdinalStringComparison: "'%[1]s' передаёт '%[2]s' параметром сравнения в '%[3]s'. " +
		"Для нелингвистического сравнения укажите 'StringComparison.Ordinal' или 'StringComparison.OrdinalIgnoreCase'.",
	rules.TplUseOrdinalStringComparer: "'%[1]s' передаёт '%[2]s' параметром 'StringComparer' в '%[3]s'. " +
		"Для нелингвистического сравнения укажите 'StringComparer.Ordinal' или 'StringComparer.OrdinalIgnoreCase'.",
	rules.TplUseOrdinalDefault: "'%[1]s' объявляет '%[2]s' способом сравнения по умолчанию. " +
		"Для нелингвистического сравнения используйте по умолчанию 'StringComparison.Ordinal' или 'StringComparison.OrdinalIgnoreCase'.",
}

var russianNotes = map[string]string{
	noteSuggested:  "рассмотрите вызов '%[1]s'",
	noteCalledFrom: "вызвано из '%[1]s' без этого аргумента",
}
