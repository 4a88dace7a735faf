package driver

import "time"

// Stage describes a high-level analysis phase.
type Stage string

const (
	StageLoad     Stage = "load"
	StageParse    Stage = "parse"
	StageEvaluate Stage = "evaluate"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	// Findings is the number of diagnostics of the file, set with StatusDone.
	Findings int
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: files report from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ProgressFunc adapts a function to ProgressSink.
type ProgressFunc func(Event)

func (f ProgressFunc) OnEvent(ev Event) { f(ev) }

// ChannelSink forwards events to a channel; the UI reads from it.
type ChannelSink chan<- Event

func (c ChannelSink) OnEvent(ev Event) { c <- ev }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
