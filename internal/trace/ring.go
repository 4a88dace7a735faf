package trace

import (
	"io"
	"os"
	"sync"
)

// RingTracer keeps the last capacity events for post-mortem dumps.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	head   int
	full   bool
	level  Level
}

// NewRingTracer keeps up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stored := *ev
	stored.Seq = NextSeq()
	t.events[t.head] = stored
	t.head = (t.head + 1) % len(t.events)
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns the stored events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.head]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.head:]...)
	return append(out, t.events[:t.head]...)
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	log := newEventLogger(w, format)
	for _, ev := range t.Snapshot() {
		writeEvent(log, &ev)
	}
	if isStdStream(w) {
		return nil
	}
	return log.Sync()
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// Rings returns the ring tracers reachable from t.
func Rings(t Tracer) []*RingTracer {
	switch tt := t.(type) {
	case *RingTracer:
		return []*RingTracer{tt}
	case *MultiTracer:
		var out []*RingTracer
		for _, inner := range tt.tracers {
			out = append(out, Rings(inner)...)
		}
		return out
	}
	return nil
}

func isStdStream(w io.Writer) bool {
	return w == os.Stderr || w == os.Stdout
}
