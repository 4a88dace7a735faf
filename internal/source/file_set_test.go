package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Program.cs", []byte("class A {}"), 0)
	id2 := fs.Add("./Program.cs", []byte("class B {}"), 0)
	require.NotEqual(t, id1, id2, "each Add must allocate a new FileID")

	latest, ok := fs.GetLatest("Program.cs")
	require.True(t, ok)
	assert.Equal(t, id2, latest)

	// старая версия остаётся доступной
	assert.Equal(t, "class A {}", string(fs.Get(id1).Content))
	assert.Equal(t, 2, fs.Len())
	assert.False(t, fs.Has(id2+1))
}

func TestPosition(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("var s = x;\n  y.ToString();\n"))
	file := fs.Get(id)
	assert.NotZero(t, file.Flags&FileVirtual)
	assert.Equal(t, 3, file.LineCount(), "trailing newline opens an empty line")

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"file start", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 10, LineCol{Line: 1, Col: 11}},
		{"second line start", 11, LineCol{Line: 2, Col: 1}},
		{"second line indented", 13, LineCol{Line: 2, Col: 3}},
		{"end of file", 27, LineCol{Line: 3, Col: 1}},
		{"past the end is clamped", 500, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			assert.Equal(t, tt.want, start)
		})
	}
}

func TestPositionEmptyAndUTF8(t *testing.T) {
	fs := NewFileSet()
	empty := fs.Get(fs.AddVirtual("empty.cs", nil))
	assert.Equal(t, LineCol{Line: 1, Col: 1}, empty.Position(0))
	assert.Equal(t, 1, empty.LineCount())

	// α занимает 2 байта, колонки считаются в байтах
	id := fs.AddVirtual("a.cs", []byte("α\n"))
	start, end := fs.Resolve(Span{File: id, Start: 0, End: 2})
	assert.Equal(t, LineCol{Line: 1, Col: 1}, start)
	assert.Equal(t, LineCol{Line: 1, Col: 3}, end)
}

func TestText(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cs", []byte("CultureInfo.InvariantCulture"))

	assert.Equal(t, "CultureInfo", fs.Text(Span{File: id, Start: 0, End: 11}))
	assert.Equal(t, "Culture", fs.Text(Span{File: id, Start: 21, End: 100}), "end is clamped")
	assert.Empty(t, fs.Text(Span{File: id, Start: 200, End: 300}))
	assert.Empty(t, fs.Text(Span{File: id + 1, Start: 0, End: 1}), "unknown file")
}

func utf16(t *testing.T, s string, e unicode.Endianness) string {
	t.Helper()
	out, err := unicode.UTF16(e, unicode.UseBOM).NewEncoder().String(s)
	require.NoError(t, err)
	return out
}

func TestLoadDecodes(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		flags FileFlags
	}{
		{"plain", "a\nb\n", 0},
		{"bom", "\xEF\xBB\xBFa\nb\n", FileHadBOM},
		{"crlf", "a\r\nb\r\n", FileNormalizedCRLF},
		{"bom and crlf", "\xEF\xBB\xBFa\r\nb\r\n", FileHadBOM | FileNormalizedCRLF},
		{"utf-16le", utf16(t, "a\r\nb\r\n", unicode.LittleEndian), FileHadBOM | FileDecodedUTF16 | FileNormalizedCRLF},
		{"utf-16be", utf16(t, "a\nb\n", unicode.BigEndian), FileHadBOM | FileDecodedUTF16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "input.cs")
			require.NoError(t, os.WriteFile(path, []byte(tt.raw), 0o600))

			fs := NewFileSet()
			id, err := fs.Load(path)
			require.NoError(t, err)

			file := fs.Get(id)
			assert.Equal(t, "a\nb\n", string(file.Content))
			assert.Equal(t, tt.flags, file.Flags)
			assert.Equal(t, []uint32{0, 2, 4}, file.lines)
		})
	}
}

func TestLoneCRIsKept(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\rb\r\nc"))
	assert.True(t, changed)
	assert.Equal(t, "a\rb\nc", string(out))

	_, changed = normalizeCRLF([]byte("plain\n"))
	assert.False(t, changed)

	short, flags, err := decode([]byte{0xEF, 0xBB})
	require.NoError(t, err)
	assert.Zero(t, flags, "a truncated BOM is ordinary content")
	assert.Len(t, short, 2)
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	_, err := fs.Load(filepath.Join(t.TempDir(), "missing.cs"))
	require.Error(t, err)
	assert.Zero(t, fs.Len())
}

func TestLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.cs", []byte("first\nsecond\nthird")))

	assert.Equal(t, "first", file.Line(1))
	assert.Equal(t, "second", file.Line(2))
	assert.Equal(t, "third", file.Line(3))
	assert.Empty(t, file.Line(0))
	assert.Empty(t, file.Line(4))
}

func TestFormatPath(t *testing.T) {
	file := &File{Path: "src/App/Program.cs"}

	assert.Equal(t, "Program.cs", file.FormatPath("basename", ""))
	assert.Equal(t, "src/App/Program.cs", file.FormatPath("auto", ""))
	assert.Equal(t, "src/App/Program.cs", file.FormatPath("", ""))

	tmp := t.TempDir()
	inside := &File{Path: filepath.ToSlash(filepath.Join(tmp, "base", "nested", "File.cs"))}
	assert.Equal(t, "nested/File.cs", inside.FormatPath("relative", filepath.Join(tmp, "base")))

	outside := &File{Path: filepath.ToSlash(filepath.Join(tmp, "other", "File.cs"))}
	assert.Equal(t, outside.Path, outside.FormatPath("relative", filepath.Join(tmp, "base")),
		"paths outside the base stay absolute")
}
