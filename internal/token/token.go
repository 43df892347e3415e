package token

import (
	"xunitify/internal/source"
)

// Token represents a single source token with its location and trivia.
// Synthesized tokens carry a zero Span and no trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// New builds a synthesized token.
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// Word builds a synthesized identifier or keyword token.
func Word(name string) Token { return New(IdentKind(name), name) }

// IdentKind returns Keyword for reserved words and Ident otherwise.
func IdentKind(text string) Kind {
	if IsKeyword(text) {
		return Keyword
	}
	return Ident
}

// Is reports whether the token has the given kind and text.
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// IsKeyword reports whether the token is the reserved keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Kind == Keyword && t.Text == kw
}

// IsWord reports whether the token is an identifier or keyword spelled text.
// Contextual keywords are identifiers, so callers matching them use IsWord.
func (t Token) IsWord(text string) bool {
	return (t.Kind == Ident || t.Kind == Keyword) && t.Text == text
}

// IsLiteral reports whether the token is a numeric, string, or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, RealLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// HasSpaceBefore reports whether any trivia separated the token from its predecessor.
func (t Token) HasSpaceBefore() bool {
	return len(t.Leading) > 0
}

// Comments returns the comment and directive trivia attached before the token.
func (t Token) Comments() []Trivia {
	return CommentsOf(t.Leading)
}
