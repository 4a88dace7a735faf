package trace

import (
	"io"

	"go.uber.org/zap"
)

// StreamTracer writes events as they are emitted.
type StreamTracer struct {
	log   *zap.Logger
	w     io.Writer
	level Level
}

// NewStreamTracer writes to w in the given format.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{log: newEventLogger(w, format), w: w, level: level}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	ev.Seq = NextSeq()
	writeEvent(t.log, ev)
}

func (t *StreamTracer) Flush() error {
	// zap cannot sync terminals and pipes; that error is expected
	_ = t.log.Sync()
	return nil
}

// Close flushes and closes the writer when it is a file.
func (t *StreamTracer) Close() error {
	_ = t.Flush()
	if c, ok := t.w.(io.Closer); ok && !isStdStream(t.w) {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
