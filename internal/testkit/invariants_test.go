package testkit

import (
	"strings"
	"testing"

	"xunitify/internal/source"
	"xunitify/internal/token"
)

func TestCheckTokenSpans(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("A.cs", []byte("int x;")))
	sp := func(a, b uint32) source.Span { return source.Span{File: f.ID, Start: a, End: b} }

	good := []token.Token{
		{Kind: token.Keyword, Span: sp(0, 3), Text: "int"},
		{Kind: token.Ident, Span: sp(4, 5), Text: "x", Leading: []token.Trivia{{Kind: token.TriviaSpace, Span: sp(3, 4), Text: " "}}},
		{Kind: token.Semicolon, Span: sp(5, 6), Text: ";"},
		{Kind: token.EOF, Span: sp(6, 6)},
	}
	if err := CheckTokenSpans(good, f); err != nil {
		t.Fatalf("valid stream rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func([]token.Token) []token.Token
		want   string
	}{
		{"no EOF", func(ts []token.Token) []token.Token { return ts[:3] }, "does not end with EOF"},
		{"overlap", func(ts []token.Token) []token.Token { ts[1].Leading = nil; ts[1].Span = sp(2, 5); return ts }, "overlaps"},
		{"text", func(ts []token.Token) []token.Token { ts[0].Text = "var"; return ts }, "does not match"},
		{"bounds", func(ts []token.Token) []token.Token { ts[2].Span = sp(5, 9); return ts }, "out of bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := tt.mutate(append([]token.Token(nil), good...))
			err := CheckTokenSpans(ts, f)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
