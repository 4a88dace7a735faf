package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	done := tm.Track("parse")
	done("3 files")
	idx := tm.Begin("evaluate")
	tm.End(idx, "")
	tm.End(42, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "parse" || report.Phases[0].Note != "3 files" {
		t.Errorf("unexpected first phase %+v", report.Phases[0])
	}
	summary := tm.Summary()
	for _, want := range []string{"parse", "evaluate", "total", "// 3 files"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary misses %q:\n%s", want, summary)
		}
	}
	if got := len(tm.Fields()); got != 3 {
		t.Errorf("fields = %d, want 3", got)
	}
}

func TestTimerConcurrentUse(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Track("file")("")
		}()
	}
	wg.Wait()
	if got := len(tm.Report().Phases); got != 16 {
		t.Fatalf("phases = %d, want 16", got)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}
