package source

import "fmt"

// Span is a half-open byte range inside one file of a FileSet.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File && other.Start >= s.Start && other.End <= s.End
}

// Cover extends s over other; spans of different files leave s unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}
