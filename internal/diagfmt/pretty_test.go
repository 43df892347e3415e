package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"xunitify/internal/diag"
	"xunitify/internal/source"
)

func newDiag(sev diag.Severity, code diag.Code, sp source.Span, msg string) *diag.Diagnostic {
	return &diag.Diagnostic{Severity: sev, Code: code, Primary: sp, Message: msg}
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("var s = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/Test.cs", content)

	bag := diag.NewBag(10)
	bag.Add(newDiag(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 8, End: 28}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/Test.cs:1:9"},
		{"Relative path", PathModeRelative, "src/Test.cs:1:9"},
		{"Basename only", PathModeBasename, "Test.cs:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"}
			if err := Pretty(&buf, bag, fs, opts); err != nil {
				t.Fatal(err)
			}
			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string literal"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"Tests/CalcTests.cs", "Tests/CalcTests.cs"},
		{"/very/long/absolute/path/to/some/nested/directory/CalcTests.cs", "CalcTests.cs"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path, PathModeAuto, ""); got != tt.expected {
			t.Errorf("formatPath(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestPrettySnippet(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("class C\n{\n    void M() { Run( }\n}\n")
	fileID := fs.AddVirtual("C.cs", content)

	start := uint32(strings.Index(string(content), "Run("))
	bag := diag.NewBag(4)
	d := newDiag(diag.SevError, diag.SynUnclosedDelimiter,
		source.Span{File: fileID, Start: start, End: start + 4}, "unclosed '('")
	d.Notes = []diag.Note{{Span: source.Span{File: fileID, Start: 0, End: 5}, Msg: "in class C"}}
	bag.Add(d)

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{Context: 1, ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		"C.cs:3:16: ERROR SYN2002: unclosed '('",
		"2 | {",
		"3 |     void M() { Run( }",
		"  |                ^~~~",
		"  note: C.cs:1:1: in class C",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Pretty output mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotesHidden(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("C.cs", []byte("class C {}\n"))
	bag := diag.NewBag(1)
	d := newDiag(diag.SevInfo, diag.RewFixtureMerged, source.Span{File: fileID, Start: 6, End: 7}, "merged")
	d.Notes = []diag.Note{{Span: d.Primary, Msg: "hidden"}}
	bag.Add(d)

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("notes printed without ShowNotes:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "INFO REW3003") {
		t.Errorf("missing header:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("C.cs", []byte("class C {}\n"))
	bag := diag.NewBag(1)
	bag.Add(newDiag(diag.SevError, diag.SynBadMember, source.Span{File: fileID, Start: 0, End: 5}, "bad"))

	var plain, colored bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("escape codes without Color:\n%q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("no escape codes with Color:\n%q", colored.String())
	}
}
