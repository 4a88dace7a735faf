package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Правила локализации
	LocInfo                    Code = 1000
	LocSpecifyFormatProvider   Code = 1001
	LocFormatProviderUICulture Code = 1002
	LocSpecifyStringComparison Code = 1003
	LocUseOrdinalComparison    Code = 1004

	// Модель символов (адаптеры)
	ModInfo            Code = 2000
	ModSyntaxError     Code = 2001
	ModSnapshotInvalid Code = 2002

	IOLoadFileError Code = 4001

	CfgInvalid Code = 5001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                "Unknown error",
		LocInfo:                    "Locale rule information",
		LocSpecifyFormatProvider:   "Specify IFormatProvider",
		LocFormatProviderUICulture: "Do not format with the UI culture",
		LocSpecifyStringComparison: "Specify StringComparison",
		LocUseOrdinalComparison:    "Use ordinal string comparison",
		ModInfo:                    "Symbol model information",
		ModSyntaxError:             "Source contains syntax errors; analysis may be incomplete",
		ModSnapshotInvalid:         "Invalid symbol model snapshot",
		IOLoadFileError:            "I/O load file error",
		CfgInvalid:                 "Invalid configuration",
		ObsInfo:                    "Observability information",
		ObsTimings:                 "Pipeline timings",
	}

	// ruleNames keeps the public rule identifiers of the Loc codes.
	ruleNames = map[Code]string{
		LocSpecifyFormatProvider:   "R1-specify-IFormatProvider",
		LocFormatProviderUICulture: "R1b-specify-IFormatProvider-UICulture",
		LocSpecifyStringComparison: "R2-specify-StringComparison",
		LocUseOrdinalComparison:    "R3-use-ordinal-comparison",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LOC%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("MOD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

// Rule returns the rule identifier of a locale rule code, or "".
func (c Code) Rule() string {
	return ruleNames[c]
}

// Name is the identifier shown to users: the rule id when there is one,
// otherwise the numeric ID.
func (c Code) Name() string {
	if r := c.Rule(); r != "" {
		return r
	}
	return c.ID()
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// CodeForRule maps a rule identifier back to its code.
func CodeForRule(rule string) (Code, bool) {
	for code, name := range ruleNames {
		if name == rule {
			return code, true
		}
	}
	return UnknownCode, false
}

// RuleCodes lists the locale rule codes in ascending order.
func RuleCodes() []Code {
	return []Code{LocSpecifyFormatProvider, LocFormatProviderUICulture, LocSpecifyStringComparison, LocUseOrdinalComparison}
}
