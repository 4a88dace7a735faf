package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records how the bytes on disk were turned into Content.
	FileFlags uint8
)

const (
	// FileVirtual: added from memory (test, stdin, snapshot).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileDecodedUTF16: the file was saved as UTF-16 and transcoded to UTF-8.
	FileDecodedUTF16
)

// File is one version of a source file. Content is always UTF-8 with LF
// line endings when it came from Load.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Flags   FileFlags

	lines []uint32 // byte offset of every line start, lines[0] == 0
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
