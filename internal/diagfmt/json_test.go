package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"xunitify/internal/diag"
	"xunitify/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("class C {\n\tstring s = \"unterminated\n}")
	fileID := fs.AddVirtual("src/C.cs", content)

	bag := diag.NewBag(10)
	bag.Add(newDiag(diag.SevError, diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 22, End: 35}, "Unterminated string literal"))

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	want := DiagnosticsOutput{
		Count:  1,
		Errors: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "LEX1002",
			Message:  "Unterminated string literal",
			Location: LocationJSON{
				File:      "C.cs",
				StartByte: 22,
				EndByte:   35,
				StartLine: 2,
				StartCol:  13,
				EndLine:   2,
				EndCol:    26,
			},
		}},
	}
	if diff := cmp.Diff(want, output); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONMaxAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("C.cs", []byte("class C {}"))
	bag := diag.NewBag(0)
	for i := 0; i < 3; i++ {
		d := newDiag(diag.SevInfo, diag.RewFixtureNameReused, source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)}, "reused")
		d.Notes = []diag.Note{{Span: d.Primary, Msg: "earlier binding"}}
		bag.Add(d)
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 || out.Omitted != 1 || out.Errors != 0 {
		t.Fatalf("Count = %d, len = %d, omitted = %d, errors = %d", out.Count, len(out.Diagnostics), out.Omitted, out.Errors)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Errorf("notes included without IncludeNotes")
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions included without IncludePositions")
	}

	out = BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludeNotes: true})
	if out.Count != 3 || len(out.Diagnostics[2].Notes) != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
}
