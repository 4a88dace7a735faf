package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits periodic events so a stuck analysis is visible in the
// trace: heartbeats keep coming while span ends stop.
type Heartbeat struct {
	tracer Tracer
	stop   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// StartHeartbeat returns nil when tracing is off or interval is not positive.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: t, stop: make(chan struct{})}
	h.wg.Add(1)
	go h.run(interval)
	return h
}

func (h *Heartbeat) run(interval time.Duration) {
	defer h.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for n := 1; ; n++ {
		select {
		case <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   time.Now(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(n),
			})
		case <-h.stop:
			return
		}
	}
}

// Stop ends the goroutine and waits for it.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.wg.Wait()
}
