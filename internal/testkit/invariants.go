// Package testkit holds checks shared by package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"globalint/internal/diag"
	"globalint/internal/rules"
	"globalint/internal/source"
)

// CheckSpan verifies that sp is a non-inverted range inside a known file.
func CheckSpan(fs *source.FileSet, sp source.Span) error {
	if fs == nil {
		return fmt.Errorf("nil file set")
	}
	if !fs.Has(sp.File) {
		return fmt.Errorf("span %v points to unknown file %d", sp, sp.File)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("span is inverted: %v", sp)
	}
	size, err := safecast.Conv[uint32](len(fs.Get(sp.File).Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if sp.End > size {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, size)
	}
	return nil
}

// CheckRecordInvariants runs the invariants every rule record must satisfy:
// 1) the span is valid and non-empty
// 2) the template belongs to the record's rule
// 3) a call-site record carries the method and its suggestion or context
func CheckRecordInvariants(fs *source.FileSet, recs []rules.Record) error {
	for i, rec := range recs {
		if err := CheckSpan(fs, rec.Span); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, rec.Rule, err)
		}
		if rec.Span.Empty() {
			return fmt.Errorf("record %d (%s): empty span", i, rec.Rule)
		}
		info, ok := rules.Lookup(rec.Rule)
		if !ok {
			return fmt.Errorf("record %d: unknown rule %q", i, rec.Rule)
		}
		if !hasTemplate(info, rec.Template) {
			return fmt.Errorf("record %d: template %s does not belong to %s", i, rec.Template, rec.Rule)
		}
		if len(rec.Args) < 2 {
			return fmt.Errorf("record %d (%s): %d args", i, rec.Template, len(rec.Args))
		}
		for j, a := range rec.Args {
			if a == "" {
				return fmt.Errorf("record %d (%s): arg %d is empty", i, rec.Template, j)
			}
		}
	}
	return nil
}

// CheckDiagnosticInvariants verifies primary and note spans of every diagnostic.
// Spans of file-level codes (I/O, config) may be empty.
func CheckDiagnosticInvariants(fs *source.FileSet, diags []diag.Diagnostic) error {
	for i, d := range diags {
		if d.Message == "" {
			return fmt.Errorf("diagnostic %d (%s): empty message", i, d.Code.ID())
		}
		if d.Code == diag.IOLoadFileError || d.Code == diag.CfgInvalid {
			continue
		}
		if err := CheckSpan(fs, d.Primary); err != nil {
			return fmt.Errorf("diagnostic %d (%s): %w", i, d.Code.ID(), err)
		}
		for j, n := range d.Notes {
			if err := CheckSpan(fs, n.Span); err != nil {
				return fmt.Errorf("diagnostic %d (%s) note %d: %w", i, d.Code.ID(), j, err)
			}
		}
	}
	return nil
}

func hasTemplate(info rules.Info, tpl rules.Template) bool {
	for _, t := range info.Templates {
		if t == tpl {
			return true
		}
	}
	return false
}
