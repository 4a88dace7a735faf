package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalint/internal/diag"
	"globalint/internal/source"
)

const sample = "class P\n{\n\tvoid M() { var s = string.Format(\"{0}\", 1); }\n}\n"

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("/home/user/project/src/P.cs", []byte(sample))
	fs.SetBaseDir("/home/user/project")

	start := uint32(strings.Index(sample, "string.Format"))
	end := start + uint32(len(`string.Format("{0}", 1)`))
	bag := diag.NewBag(10)
	d := diag.New(diag.SevWarning, diag.LocSpecifyFormatProvider, source.Span{File: id, Start: start, End: end},
		"The behavior of 'string.Format(string, object)' could vary")
	d = d.WithNote(source.Span{File: id, Start: start, End: end}, "consider calling 'string.Format(System.IFormatProvider, string, object)'")
	bag.Add(d)
	bag.Add(diag.New(diag.SevWarning, diag.ModSyntaxError, source.Span{File: id, Start: 0, End: 5}, "syntax"))
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := sampleBag(t)
	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/P.cs:3:"},
		{"Relative path", PathModeRelative, "src/P.cs:3:"},
		{"Basename only", PathModeBasename, "P.cs:3:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "WARNING R1-specify-IFormatProvider") {
				t.Errorf("Expected severity and rule in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettyCaretUnderTabs(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	lines := strings.Split(buf.String(), "\n")

	var src, marks string
	for i, l := range lines {
		if strings.Contains(l, "3 |") {
			src, marks = l, lines[i+1]
			break
		}
	}
	require.NotEmpty(t, src, buf.String())
	assert.NotContains(t, src, "\t")
	col := strings.Index(src, "string.Format")
	assert.Equal(t, col, strings.Index(marks, "^"), "caret aligns with the call:\n%s\n%s", src, marks)
	assert.Equal(t, len(`string.Format("{0}", 1)`), strings.Count(marks, "~")+1)
	assert.Contains(t, buf.String(), "note: P.cs:3:")
}

func TestPrettyColor(t *testing.T) {
	bag, fs := sampleBag(t)
	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\x1b[")
}

func TestShort(t *testing.T) {
	bag, fs := sampleBag(t)
	fs.SetBaseDir("/home/user/project")
	var buf bytes.Buffer
	require.NoError(t, Short(&buf, bag, fs, false))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "warning MOD2001 src/P.cs:1:1"), lines[0])
}

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeBasename, Max: 1}))

	var out DiagnosticsOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, 1, out.Dropped)
	d := out.Diagnostics[0]
	assert.Equal(t, "LOC1001", d.Code)
	assert.Equal(t, "R1-specify-IFormatProvider", d.Rule)
	assert.Equal(t, "P.cs", d.Location.File)
	require.NotNil(t, d.Location.Start)
	assert.Equal(t, uint32(3), d.Location.Start.Line)
	assert.Equal(t, fs.Text(bag.Items()[0].Primary), d.Location.Text)
	assert.Equal(t, map[string]int{"R1-specify-IFormatProvider": 1}, out.ByRule)
	require.Len(t, d.Notes, 1)
}

func TestJSONExtra(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, bag, fs, JSONOpts{Extra: map[string]any{"timings": map[string]float64{"total_ms": 1.5}, "count": -1}}))
	var root map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &root))
	assert.Contains(t, root, "timings")
	assert.EqualValues(t, 2, root["count"], "extra keys never shadow the output")
	assert.NotContains(t, root["diagnostics"].([]any)[0].(map[string]any)["location"], "start",
		"positions are opt-in")
}

func TestSarif(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, bag, fs, SarifRunMeta{ToolVersion: "1.0.0", BaseDir: "/home/user/project", InvocationArgs: []string{"check", "."}}))

	var log sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]
	_, err := uuid.Parse(run.AutomationDetails.GUID)
	require.NoError(t, err)

	assert.Equal(t, "globalint", run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 5, "four locale rules plus MOD2001")
	assert.Equal(t, "R1", run.Tool.Driver.Rules[0].Name)

	require.Len(t, run.Results, 2)
	r := run.Results[0]
	assert.Equal(t, "R1-specify-IFormatProvider", r.RuleID)
	assert.Equal(t, 0, r.RuleIndex)
	assert.Equal(t, "warning", r.Level)
	require.Len(t, r.Locations, 1)
	assert.Equal(t, "src/P.cs", r.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, uint32(3), r.Locations[0].PhysicalLocation.Region.StartLine)
	require.Len(t, r.RelatedLocations, 1)
	assert.Equal(t, 4, run.Results[1].RuleIndex)
}

func TestParsePathMode(t *testing.T) {
	for in, want := range map[string]PathMode{"": PathModeAuto, "abs": PathModeAbsolute, "Relative": PathModeRelative, "basename": PathModeBasename} {
		got, err := ParsePathMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParsePathMode("weird")
	assert.Error(t, err)
}
