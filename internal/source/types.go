package source

type (
	FileID    uint32
	FileFlags uint8
)

// Flags record what AddBytes changed on load so File.Restore can undo it
// when the converted text is written back.
const (
	FileVirtual FileFlags = 1 << iota // добавлен не с диска
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File is one C# source as the lexer sees it: normalized content plus the
// offsets of every '\n' for line lookups.
type File struct {
	ID      FileID
	Path    string // slash-separated
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}
