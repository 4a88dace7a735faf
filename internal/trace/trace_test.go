package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(strings.ToUpper(s))
		require.NoError(t, err)
		assert.Equal(t, s, lvl.String())
	}
	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "off|error|phase|detail|debug")

	lvl, err := ParseLevel("  ")
	require.NoError(t, err)
	assert.Equal(t, LevelOff, lvl)
}

func TestEnumNames(t *testing.T) {
	assert.Equal(t, "file", ScopeFile.String())
	assert.Equal(t, "heartbeat", KindHeartbeat.String())
	assert.Equal(t, "unknown", Scope(0).String())
	assert.Equal(t, "unknown", Level(42).String())

	m, err := ParseMode("BOTH")
	require.NoError(t, err)
	assert.Equal(t, ModeBoth, m)
	m, err = ParseMode("")
	assert.Error(t, err)
	assert.Equal(t, ModeRing, m)
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
	assert.False(t, Level(9).ShouldEmit(ScopeDriver))
}

func TestLevelFiltersScopes(t *testing.T) {
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.False(t, LevelDetail.ShouldEmit(ScopeCall))
	assert.True(t, LevelDebug.ShouldEmit(ScopeCall))
	assert.False(t, LevelOff.ShouldEmit(ScopeDriver))
}

func TestStreamWritesNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)

	root := Begin(tr, ScopeDriver, "check", 0)
	file := Begin(tr, ScopeFile, "file:Program.cs", root.ID())
	file.WithExtra("calls", "3").End("")
	Begin(tr, ScopeCall, "call", file.ID()).End("")
	root.End("done")
	require.NoError(t, tr.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "call scope must be filtered at detail level")

	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &ev))
	assert.Equal(t, "file:Program.cs", ev["name"])
	assert.Equal(t, "end", ev["kind"])
	assert.Equal(t, "3", ev["calls"])
	assert.EqualValues(t, root.ID(), ev["parent"])
}

func TestRingKeepsNewest(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i := 0; i < 5; i++ {
		Point(ring, ScopeCall, "call", string(rune('a'+i)), 0)
	}
	events := ring.Snapshot()
	require.Len(t, events, 3)
	assert.Equal(t, "c", events[0].Detail)
	assert.Equal(t, "e", events[2].Detail)

	var buf bytes.Buffer
	require.NoError(t, ring.Dump(&buf, FormatText))
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
}

func TestNewAndRings(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	require.NoError(t, err)
	require.Len(t, Rings(tr), 1)
	Begin(tr, ScopePass, "parse", 0).End("")
	assert.Len(t, Rings(tr)[0].Snapshot(), 2)
	assert.Contains(t, buf.String(), "parse")
}

func TestContextPropagation(t *testing.T) {
	assert.Equal(t, Nop, FromContext(context.Background()))
	ring := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	assert.Equal(t, Tracer(ring), FromContext(ctx))

	span := Begin(ring, ScopePass, "evaluate", 0)
	ctx = WithSpan(ctx, span)
	assert.Equal(t, span.ID(), ParentID(ctx))
}

func TestHeartbeatStops(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	hb := StartHeartbeat(ring, time.Millisecond)
	require.NotNil(t, hb)
	time.Sleep(10 * time.Millisecond)
	hb.Stop()
	hb.Stop()
	assert.NotEmpty(t, ring.Snapshot())
	assert.Nil(t, StartHeartbeat(Nop, time.Second))
}
