package diag

import (
	"testing"

	"xunitify/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(&Diagnostic{Severity: SevInfo, Code: RewDuplicateRole}) {
		t.Fatal("first add rejected")
	}
	if bag.HasErrors() {
		t.Error("info must not count as error")
	}
	bag.Add(&Diagnostic{Severity: SevError, Code: SynUnexpectedToken})
	if bag.Add(&Diagnostic{Severity: SevError, Code: SynUnexpectedToken}) {
		t.Error("expected limit to reject third diagnostic")
	}
	if !bag.HasErrors() || bag.Len() != 2 {
		t.Errorf("HasErrors=%v Len=%d", bag.HasErrors(), bag.Len())
	}
	if bag.Count(SevInfo) != 1 || bag.Count(SevError) != 1 {
		t.Errorf("unexpected counts")
	}
}

func TestBagSort(t *testing.T) {
	bag := NewBag(0)
	bag.Add(&Diagnostic{Severity: SevInfo, Code: RewInfo, Primary: source.Span{Start: 9, End: 10}})
	bag.Add(&Diagnostic{Severity: SevInfo, Code: RewDuplicateRole, Primary: source.Span{Start: 1, End: 2}})
	bag.Add(&Diagnostic{Severity: SevError, Code: SynUnexpectedToken, Primary: source.Span{Start: 1, End: 2}})
	bag.Sort()
	items := bag.Items()
	if items[0].Code != SynUnexpectedToken || items[1].Code != RewDuplicateRole || items[2].Code != RewInfo {
		t.Errorf("unexpected order: %v %v %v", items[0].Code, items[1].Code, items[2].Code)
	}
}

func TestFormat(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("Tests/A.cs", []byte("class A\n{\n"))
	diags := []*Diagnostic{{
		Severity: SevError,
		Code:     SynUnclosedDelimiter,
		Message:  "unclosed\n'{'",
		Primary:  source.Span{File: id, Start: 8, End: 9},
		Notes:    []Note{{Span: source.Span{File: id, Start: 0, End: 5}, Msg: "class starts here"}},
	}}
	want := "error SYN2002 Tests/A.cs:2:1 unclosed '{'\n" +
		"note SYN2002 Tests/A.cs:1:1 class starts here"
	if got := Format(diags, fs, true); got != want {
		t.Fatalf("unexpected format:\nwant:\n%s\ngot:\n%s", want, got)
	}
	if got := Format(nil, fs, true); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:   "LEX1001",
		SynBadMember:     "SYN2008",
		RewDuplicateRole: "REW3001",
		IOLoadFileError:  "IO4001",
		UnknownCode:      "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}

func TestSeverityNames(t *testing.T) {
	tests := []struct {
		sev      Severity
		str, tag string
		blocking bool
	}{
		{SevInfo, "INFO", "info", false},
		{SevWarning, "WARNING", "warning", false},
		{SevError, "ERROR", "error", true},
		{Severity(9), "UNKNOWN", "unknown", true},
	}
	for _, tt := range tests {
		if tt.sev.String() != tt.str || tt.sev.Tag() != tt.tag || tt.sev.Blocking() != tt.blocking {
			t.Errorf("severity %d: got %q/%q/%v", tt.sev, tt.sev.String(), tt.sev.Tag(), tt.sev.Blocking())
		}
	}
}
