package diag

import "globalint/internal/source"

// Reporter receives diagnostics from the analysis stages.
// Реализации: BagReporter, DedupReporter, ReporterFunc, NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(code Code, sev Severity, primary source.Span, msg string, notes []Note)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	f(code, sev, primary, msg, notes)
}

// BagReporter stores everything in Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Note) {}

// ReportBuilder collects notes for one diagnostic and emits it once.
type ReportBuilder struct {
	to      Reporter
	d       Diagnostic
	emitted bool
}

func NewReportBuilder(r Reporter, sev Severity, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{to: r, d: New(sev, code, primary, msg)}
}

// WithNote attaches a secondary location.
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.d = b.d.WithNote(sp, msg)
	}
	return b
}

// Emit forwards the diagnostic; repeated calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	if b.to != nil {
		b.to.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes)
	}
}

// Diagnostic returns the diagnostic built so far without emitting it.
func (b *ReportBuilder) Diagnostic() Diagnostic {
	if b == nil {
		return Diagnostic{}
	}
	return b.d
}
