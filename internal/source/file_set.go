package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
)

// FileSet owns the analysed files and maps byte offsets to positions.
// Adding is not safe for concurrent use; reads after loading are.
type FileSet struct {
	files   []*File
	latest  map[string]FileID // нормализованный путь -> последняя версия
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// SetBaseDir sets the directory relative paths are computed against.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the configured base directory or the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Len returns the number of files ever added, superseded versions included.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Add stores content under path as a new version and returns its id.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("%s: file too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id := FileID(n)
	path = cleanPath(path)
	fileSet.files = append(fileSet.files, &File{
		ID:      id,
		Path:    path,
		Content: content,
		Flags:   flags,
		lines:   lineStarts(content),
	})
	fileSet.latest[path] = id
	return id
}

// Load reads a C# file from disk, decoding BOM-marked UTF-16 and CRLF.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags, err := decode(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (stdin, tests, snapshots).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

func (fileSet *FileSet) Get(id FileID) *File {
	return fileSet.files[id]
}

// Has reports whether id refers to a file of this set.
func (fileSet *FileSet) Has(id FileID) bool {
	return int(id) < len(fileSet.files)
}

// GetLatest returns the newest version added under path.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.latest[cleanPath(path)]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}

// Text returns the source text covered by span, clamped to the file content.
func (fileSet *FileSet) Text(span Span) string {
	if !fileSet.Has(span.File) {
		return ""
	}
	content := fileSet.files[span.File].Content
	start, end := int(span.Start), min(int(span.End), len(content))
	if start > len(content) || end < start {
		return ""
	}
	return string(content[start:end])
}

// Position maps a byte offset to its line and column; offsets past the end
// are clamped.
func (f *File) Position(off uint32) LineCol {
	off = min(off, uint32(len(f.Content))) // #nosec G115 -- checked in Add
	i, found := slices.BinarySearch(f.lines, off)
	if !found {
		i--
	}
	return LineCol{Line: uint32(i + 1), Col: off - f.lines[i] + 1} // #nosec G115 -- i < len(lines)
}

// LineCount returns the number of lines; a trailing newline opens an empty one.
func (f *File) LineCount() int {
	return len(f.lines)
}

// Line returns the text of line n (1-based) without its newline.
func (f *File) Line(n uint32) string {
	if n == 0 || int(n) > len(f.lines) {
		return ""
	}
	start := f.lines[n-1]
	end := uint32(len(f.Content)) // #nosec G115 -- checked in Add
	if int(n) < len(f.lines) {
		end = f.lines[n] - 1
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for display.
// mode: "absolute", "relative" (to baseDir, default cwd), "basename", "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case "relative":
		if rel, ok := relativeTo(f.Path, baseDir); ok {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// длинные абсолютные пути укорачиваем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// relativeTo returns path relative to base, or false when it lies outside.
func relativeTo(path, base string) (string, bool) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		base = wd
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(absPath), true
	}
	return filepath.ToSlash(rel), true
}

func lineStarts(content []byte) []uint32 {
	starts := make([]uint32, 1, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, uint32(i+1)) // #nosec G115 -- checked in Add
		}
	}
	return starts
}

// cleanPath gives paths a single form across platforms.
func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
