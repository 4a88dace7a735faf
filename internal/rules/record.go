package rules

import (
	"globalint/internal/source"
)

// Record is the abstract outcome of one call site.
type Record struct {
	Rule     ID
	Template Template
	Span     source.Span
	// Args are the message interpolation values, in template order.
	Args []string
}

// IsDefaultArgument reports whether the record points at a default value
// declaration rather than at the call.
func (r Record) IsDefaultArgument() bool {
	return r.Template == TplUICultureDefault || r.Template == TplUseOrdinalDefault
}
