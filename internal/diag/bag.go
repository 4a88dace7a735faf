package diag

import (
	"cmp"
	"slices"
)

// Bag collects diagnostics up to a limit; the rest are only counted.
type Bag struct {
	items   []Diagnostic
	max     int
	dropped int
}

func NewBag(limit int) *Bag {
	limit = max(limit, 0)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), max: limit}
}

// Add stores d unless the bag is full; a rejected diagnostic counts as dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Dropped returns how many diagnostics the limits and Truncate discarded.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the diagnostics in place; callers must not modify the slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

// Counts tallies the diagnostics per severity.
func (b *Bag) Counts() map[Severity]int {
	out := make(map[Severity]int, 3)
	for _, d := range b.items {
		out[d.Severity]++
	}
	return out
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return !keep(d) })
}

// Transform rewrites every diagnostic in place.
func (b *Bag) Transform(fn func(Diagnostic) Diagnostic) {
	for i := range b.items {
		b.items[i] = fn(b.items[i])
	}
}

// Truncate keeps the first n diagnostics and counts the rest as dropped.
func (b *Bag) Truncate(n int) {
	if n < 0 || n >= len(b.items) {
		return
	}
	b.dropped += len(b.items) - n
	b.items = b.items[:n]
}

// Sort orders by file, span, then errors before warnings, code and message,
// so output is stable across parallel runs.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
			cmp.Compare(x.Message, y.Message),
		)
	})
}

// Dedup keeps the first diagnostic per code, primary span and message.
// A default value declaration is reported from every call that uses it and
// collapses here.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		key := dedupKey{code: d.Code, span: d.Primary, msg: d.Message}
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		return false
	})
}
