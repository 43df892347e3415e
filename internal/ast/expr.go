package ast

import (
	"xunitify/internal/token"
)

// Elem is one element of a token tree: Tok, *Group or *Block.
type Elem interface {
	elem()
}

// Tokens is a balanced token tree.
type Tokens []Elem

// Tok is a single token leaf.
type Tok struct {
	token.Token
}

func (Tok) elem() {}

// T wraps a token as an element.
func T(t token.Token) Tok { return Tok{Token: t} }

// W builds a synthesized word element.
func W(name string) Tok { return Tok{Token: token.Word(name)} }

// P builds a synthesized punctuation or operator element.
func P(kind token.Kind, text string) Tok { return Tok{Token: token.New(kind, text)} }

// Group is a (), [] or {} group split on its top-level commas.
// An empty group has no Args; a trailing comma leaves an empty last arg.
type Group struct {
	Open  token.Token
	Args  []Tokens
	Close token.Token
}

func (*Group) elem() {}

// Paren builds a synthesized parenthesised group.
func Paren(args ...Tokens) *Group {
	return &Group{
		Open:  token.New(token.LParen, "("),
		Args:  args,
		Close: token.New(token.RParen, ")"),
	}
}

// Multiline reports whether the closing token started a new line in the
// source; braced initializers keep that layout.
func (g *Group) Multiline() bool {
	for _, tr := range g.Close.Leading {
		if tr.Kind == token.TriviaNewline {
			return true
		}
	}
	return false
}

// FirstToken returns the first token of a tree, or the zero token.
func FirstToken(ts Tokens) token.Token {
	if len(ts) == 0 {
		return token.Token{}
	}
	switch e := ts[0].(type) {
	case Tok:
		return e.Token
	case *Group:
		return e.Open
	case *Block:
		return e.Open
	}
	return token.Token{}
}

// Text renders the tree as compact source text for matching and messages.
func (ts Tokens) Text() string {
	var out []byte
	var walk func(Tokens)
	walk = func(ts Tokens) {
		for _, e := range ts {
			switch e := e.(type) {
			case Tok:
				out = append(out, e.Text...)
			case *Group:
				out = append(out, e.Open.Text...)
				for i, a := range e.Args {
					if i > 0 {
						out = append(out, ',')
					}
					walk(a)
				}
				out = append(out, e.Close.Text...)
			case *Block:
				out = append(out, "{...}"...)
			}
		}
	}
	walk(ts)
	return string(out)
}

// PrependLeading puts trivia in front of the first token of ts.
func PrependLeading(ts Tokens, tr []token.Trivia) {
	if len(tr) == 0 || len(ts) == 0 {
		return
	}
	join := func(old []token.Trivia) []token.Trivia {
		return append(append(make([]token.Trivia, 0, len(tr)+len(old)), tr...), old...)
	}
	switch e := ts[0].(type) {
	case Tok:
		e.Leading = join(e.Leading)
		ts[0] = e
	case *Group:
		e.Open.Leading = join(e.Open.Leading)
	case *Block:
		e.Open.Leading = join(e.Open.Leading)
	}
}

// TakeLeading detaches and returns the trivia of the first token of ts.
func TakeLeading(ts Tokens) []token.Trivia {
	if len(ts) == 0 {
		return nil
	}
	var tr []token.Trivia
	switch e := ts[0].(type) {
	case Tok:
		tr, e.Leading = e.Leading, nil
		ts[0] = e
	case *Group:
		tr, e.Open.Leading = e.Open.Leading, nil
	case *Block:
		tr, e.Open.Leading = e.Open.Leading, nil
	}
	return tr
}
