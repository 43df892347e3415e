package ast

import (
	"xunitify/internal/source"
	"xunitify/internal/token"
)

// File is one parsed compilation unit.
type File struct {
	Source *source.File
	Items  []Decl
	// EOF carries the trivia trailing the last declaration.
	EOF token.Token
}

// Decl is a namespace-level item: *Using, *GlobalAttrs, *Namespace, *TypeDecl or *Raw.
type Decl interface {
	decl()
	First() token.Token
}

// Container receives synthesized type declarations.
type Container interface {
	AppendType(td *TypeDecl)
}

func (f *File) AppendType(td *TypeDecl) { f.Items = append(f.Items, td) }

// Using is a using directive or extern alias kept as its token run, ';' included.
type Using struct {
	Tokens []token.Token
}

func (*Using) decl() {}

func (u *Using) First() token.Token { return u.Tokens[0] }

// Target returns the imported name: the tokens between the leading
// keywords (global, using, static, alias '=') and the closing ';'.
func (u *Using) Target() []token.Token {
	toks := u.Tokens
	if n := len(toks); n > 0 && toks[n-1].Kind == token.Semicolon {
		toks = toks[:n-1]
	}
	for i, t := range toks {
		if t.Kind == token.Assign {
			return toks[i+1:]
		}
	}
	for len(toks) > 0 && (toks[0].IsWord("global") || toks[0].IsKeyword("using") || toks[0].IsKeyword("static")) {
		toks = toks[1:]
	}
	return toks
}

// Namespace is a block or file-scoped namespace declaration.
type Namespace struct {
	Keyword    token.Token
	Name       []token.Token
	FileScoped bool
	Open       token.Token // '{' or ';' for file-scoped
	Items      []Decl
	Close      token.Token
}

func (*Namespace) decl() {}

func (n *Namespace) First() token.Token { return n.Keyword }

func (n *Namespace) AppendType(td *TypeDecl) { n.Items = append(n.Items, td) }

// GlobalAttrs is a run of assembly or module attribute sections.
type GlobalAttrs struct {
	Lists []*AttrList
}

func (*GlobalAttrs) decl() {}

func (g *GlobalAttrs) First() token.Token { return g.Lists[0].Open }

// Raw is a declaration or member the parser keeps as an opaque token run:
// delegate declarations.
type Raw struct {
	Tokens Tokens
}

func (*Raw) decl()   {}
func (*Raw) member() {}

func (r *Raw) First() token.Token { return FirstToken(r.Tokens) }
