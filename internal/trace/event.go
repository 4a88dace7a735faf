package trace

import "time"

// Kind is the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string { return kindNames.name(k) }

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // whole command
	ScopePass                    // load, parse, model, evaluate, render
	ScopeFile                    // one source file
	ScopeCall                    // one call site
)

func (s Scope) String() string { return scopeNames.name(s) }

// Event is one trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // assigned by the tracer
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	GID      uint64
	Name     string // "parse", "file:src/Program.cs"
	Detail   string
	Extra    map[string]string
}
