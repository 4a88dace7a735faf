package diag

import "globalint/internal/source"

type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

// DedupReporter forwards the first diagnostic per code, primary span and
// message. A default argument reached from many call sites collapses into
// one finding at its declaration this way.
// Not safe for concurrent use.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, span: primary, msg: msg}
	if _, ok := r.seen[key]; ok {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many repeats were dropped.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
