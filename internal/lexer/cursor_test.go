package lexer

import (
	"testing"

	"xunitify/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Test.cs", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for i, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("step %d: unexpected EOF", i)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("step %d: bump = %q, want %q", i, got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF after reading all bytes")
	}
	if cursor.Bump() != 0 || cursor.Peek() != 0 {
		t.Fatal("reads past EOF must return 0")
	}
}

func TestMarkResetAndSpan(t *testing.T) {
	cursor := NewCursor(createFile("Assert"))
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 {
		t.Fatalf("span = %v, want 0..2", sp)
	}
	cursor.Reset(m)
	if cursor.Peek() != 'A' {
		t.Fatalf("after reset peek = %q", cursor.Peek())
	}
	if cursor.PeekAt(5) != 't' || cursor.PeekAt(6) != 0 {
		t.Fatal("PeekAt lookahead mismatch")
	}
	if !cursor.Eat('A') || cursor.Eat('A') {
		t.Fatal("Eat must consume only a matching byte")
	}
}

func TestAtLineStart(t *testing.T) {
	cursor := NewCursor(createFile("x\n  #region"))
	if !cursor.AtLineStart() {
		t.Fatal("offset 0 is a line start")
	}
	cursor.Bump()
	if cursor.AtLineStart() {
		t.Fatal("after 'x' is not a line start")
	}
	cursor.Bump()
	cursor.Bump()
	cursor.Bump()
	if !cursor.AtLineStart() {
		t.Fatal("indentation only is still a line start")
	}
}
