package token

import "testing"

func TestIdentKind(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"class", Keyword},
		{"void", Keyword},
		{"var", Ident},
		{"record", Ident},
		{"Assert", Ident},
		{"Class", Ident},
	}
	for _, tt := range tests {
		if got := IdentKind(tt.text); got != tt.want {
			t.Errorf("IdentKind(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	tok := Word("Assert")
	if !tok.IsWord("Assert") || tok.IsKeyword("Assert") {
		t.Errorf("unexpected predicates for %+v", tok)
	}
	kw := Word("public")
	if kw.Kind != Keyword || !kw.IsKeyword("public") {
		t.Errorf("expected keyword token, got %+v", kw)
	}
	if !IsModifier("async") || IsModifier("class") {
		t.Error("modifier table mismatch")
	}
	if New(StringLit, `"x"`).IsLiteral() != true {
		t.Error("string literal should be literal")
	}
}

func TestComments(t *testing.T) {
	tok := Token{Kind: Ident, Text: "x", Leading: []Trivia{
		{Kind: TriviaNewline, Text: "\n"},
		{Kind: TriviaLineComment, Text: "// note"},
		{Kind: TriviaSpace, Text: "  "},
		{Kind: TriviaDirective, Text: "#region R"},
	}}
	got := tok.Comments()
	if len(got) != 2 || got[0].Text != "// note" || got[1].Text != "#region R" {
		t.Errorf("Comments() = %+v", got)
	}
	if !tok.HasSpaceBefore() {
		t.Error("expected HasSpaceBefore")
	}
}

func TestKindCloser(t *testing.T) {
	if LParen.Closer() != RParen || LBrace.Closer() != RBrace || LBracket.Closer() != RBracket {
		t.Error("closer mismatch")
	}
	if Ident.Closer() != Invalid {
		t.Error("ident has no closer")
	}
	if !RBrace.IsClose() || !LBracket.IsOpen() {
		t.Error("open/close predicates")
	}
}
