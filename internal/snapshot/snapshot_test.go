package snapshot

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalint/internal/csharp"
	"globalint/internal/rules"
	"globalint/internal/source"
)

const formatSnapshot = `
version: 1
files:
  - path: Program.cs
    content: "class Program { static void Main() { string.Format(\"{0}\", 1); } }"
signatures:
  - containing_type: System.String
    name: Format
    return_type: System.String
    static: true
    params:
      - {name: format, type: System.String}
      - {name: arg0, type: System.Object}
  - containing_type: System.String
    name: Format
    return_type: System.String
    static: true
    params:
      - {name: provider, type: System.IFormatProvider}
      - {name: format, type: System.String}
      - {name: arg0, type: System.Object}
calls:
  - method: 0
    caller: Program.Main()
    span: {file: 0, start: 37, end: 60}
    args:
      - {text: '"{0}"', span: {file: 0, start: 51, end: 56}}
      - {text: "1", span: {file: 0, start: 58, end: 59}}
`

func evaluate(t *testing.T, m *Model) []rules.Record {
	t.Helper()
	engine := rules.New(m)
	var out []rules.Record
	for _, call := range m.Calls() {
		site, ok := m.Resolve(call)
		require.True(t, ok)
		if rec, ok := engine.Evaluate(site); ok {
			out = append(out, rec)
		}
	}
	return out
}

func TestYAMLSnapshotDrivesRules(t *testing.T) {
	snap, err := Decode([]byte(formatSnapshot), FormatYAML)
	require.NoError(t, err)

	m := NewModel(snap, []source.FileID{7})
	recs := evaluate(t, m)
	require.Len(t, recs, 1)
	assert.Equal(t, rules.RuleSpecifyFormatProvider, recs[0].Rule)
	assert.Equal(t, rules.TplFormatProviderLeadingString, recs[0].Template)
	assert.Equal(t, source.FileID(7), recs[0].Span.File)
	assert.Equal(t, []string{
		"string.Format(string, object)",
		"Program.Main()",
		"string.Format(System.IFormatProvider, string, object)",
	}, recs[0].Args)
	assert.Len(t, m.CallsIn(7), 1)
	assert.Empty(t, m.CallsIn(8))
}

func TestRejectsDanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing signature", `{"version":1,"files":[{"path":"a.cs"}],"signatures":[],"calls":[{"method":3,"caller":"","span":{"file":0,"start":0,"end":0},"args":[]}]}`},
		{"missing file", `{"version":1,"files":[],"signatures":[{"containing_type":"T","name":"M","params":[]}],"calls":[{"method":0,"caller":"","span":{"file":2,"start":0,"end":0},"args":[]}]}`},
		{"arity", `{"version":1,"files":[{"path":"a.cs"}],"signatures":[{"containing_type":"T","name":"M","params":[]}],"calls":[{"method":0,"caller":"","span":{"file":0,"start":0,"end":0},"args":[null]}]}`},
		{"future version", `{"version":9,"files":[],"signatures":[],"calls":[]}`},
		{"missing name", `{"version":1,"files":[],"signatures":[{"containing_type":"T","name":"","params":[]}],"calls":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), FormatJSON)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestFormatFor(t *testing.T) {
	for path, want := range map[string]Format{
		"model.msgpack": FormatMsgpack,
		"model.MP":      FormatMsgpack,
		"model.json":    FormatJSON,
		"model.yml":     FormatYAML,
	} {
		got, err := FormatFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatFor("model.txt")
	assert.Error(t, err)
}

// Exporting the C# model and replaying it must give the same records.
func TestExportReplaysCSharpModel(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Util.cs", []byte(`
using System;

class Util
{
    static bool Same(string a, string b, StringComparison mode = StringComparison.InvariantCulture)
    {
        return a == b;
    }

    void Use(string s)
    {
        Same("a", s);
        string.Format("{0}", s);
    }
}
`))
	prog, err := csharp.Load(context.Background(), fs, []source.FileID{id}, csharp.Options{})
	require.NoError(t, err)
	defer prog.Close()

	direct := evaluateUnit(t, rules.New(prog), prog)
	require.Len(t, direct, 2)

	snap := Export(fs, []source.FileID{id}, prog, true)
	for _, format := range []Format{FormatMsgpack, FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, snap, format))
			back, err := Decode(buf.Bytes(), format)
			require.NoError(t, err)
			m := NewModel(back, []source.FileID{id})
			replayed := evaluate(t, m)
			if diff := cmp.Diff(direct, replayed); diff != "" {
				t.Fatalf("replayed records differ (-direct +replayed):\n%s", diff)
			}
		})
	}
}

func evaluateUnit(t *testing.T, engine *rules.Engine, prog *csharp.Program) []rules.Record {
	t.Helper()
	var out []rules.Record
	for _, call := range prog.Calls() {
		site, ok := prog.Resolve(call)
		if !ok {
			continue
		}
		if rec, ok := engine.Evaluate(site); ok {
			out = append(out, rec)
		}
	}
	return out
}
