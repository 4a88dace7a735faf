package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"globalint/internal/driver"
)

func feed(m tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestProgressTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("globalint check", []string{"A.cs", "B.cs", "C.cs"}, events)

	m = feed(m,
		eventMsg{Stage: driver.StageParse, Status: driver.StatusWorking},
		eventMsg{File: "A.cs", Stage: driver.StageEvaluate, Status: driver.StatusWorking},
		eventMsg{File: "B.cs", Stage: driver.StageEvaluate, Status: driver.StatusDone, Findings: 3},
		eventMsg{File: "unknown.cs", Stage: driver.StageEvaluate, Status: driver.StatusDone, Findings: 9},
	)
	view := m.View()
	for _, want := range []string{"globalint check (parsing)", "evaluating", "done", "(3)", "1/3 files", "3 findings"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "C.cs", "queued files are not listed")

	pm := m.(*progressModel)
	assert.InDelta(t, (0.6+1.0)/3, pm.percent(), 1e-9)

	m = feed(m, doneMsg{})
	assert.Contains(t, m.View(), "done: globalint check (parsing), 3 findings")
}

func TestProgressCountsFailuresAndRepeats(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("x", []string{"A.cs", "B.cs"}, events)
	m = feed(m,
		eventMsg{File: "A.cs", Stage: driver.StageLoad, Status: driver.StatusError},
		eventMsg{File: "B.cs", Stage: driver.StageEvaluate, Status: driver.StatusDone, Findings: 2},
		eventMsg{File: "B.cs", Stage: driver.StageEvaluate, Status: driver.StatusDone, Findings: 2},
	)
	view := m.View()
	assert.Contains(t, view, "2/2 files, 1 failed, 2 findings")
	assert.Contains(t, view, "error")
}

func TestProgressLimitsRows(t *testing.T) {
	events := make(chan driver.Event)
	var files []string
	var msgs []tea.Msg
	for i := range 10 {
		name := fmt.Sprintf("F%d.cs", i)
		files = append(files, name)
		msgs = append(msgs, eventMsg{File: name, Stage: driver.StageEvaluate, Status: driver.StatusWorking})
	}
	m := NewProgressModel("x", files, events)
	m = feed(m, append([]tea.Msg{tea.WindowSizeMsg{Width: 80, Height: 10}}, msgs...)...)

	view := m.View()
	assert.Equal(t, 4, strings.Count(view, "evaluating"))
	assert.Contains(t, view, "and 6 more")
}

func TestListenStopsOnClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("x", []string{"A.cs"}, events).(*progressModel)
	_, ok := m.next()().(doneMsg)
	assert.True(t, ok, "closed channel must finish the model")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.cs", 20, "short.cs"},
		{"very/long/path/File.cs", 10, "...File.cs"},
		{"abcdef", 2, "ef"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.width), "truncate(%q, %d)", tt.in, tt.width)
	}
}
