package source

import "fmt"

// Span is a half-open byte range [Start, End) inside one file. Synthesized
// tokens carry the span of the token they replace, or the zero span.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Within reports whether s belongs to f and lies inside its content.
func (s Span) Within(f *File) bool {
	return f != nil && s.File == f.ID && s.Start <= s.End && int(s.End) <= len(f.Content)
}

// Text returns the bytes of f under s, or "" when s is not Within f.
func (s Span) Text(f *File) string {
	if !s.Within(f) {
		return ""
	}
	return string(f.Content[s.Start:s.End])
}
