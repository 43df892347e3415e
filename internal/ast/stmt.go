package ast

import (
	"xunitify/internal/token"
)

// Stmt is a statement node.
type Stmt interface {
	stmt()
	First() token.Token
}

// Block is "{ stmts }". It is also an expression element when it is the
// body of a lambda or anonymous method.
type Block struct {
	Open  token.Token
	Stmts []Stmt
	Close token.Token
}

func (*Block) stmt() {}
func (*Block) elem() {}

func (b *Block) First() token.Token { return b.Open }

// NewBlock builds a synthesized block.
func NewBlock(stmts ...Stmt) *Block {
	return &Block{
		Open:  token.New(token.LBrace, "{"),
		Stmts: stmts,
		Close: token.New(token.RBrace, "}"),
	}
}

// ExprStmt is any simple statement ending in ';': expressions, local
// declarations, return, throw, break, goto, yield. Expr is empty for ';'.
type ExprStmt struct {
	Expr Tokens
	Semi token.Token
}

func (*ExprStmt) stmt() {}

func (s *ExprStmt) First() token.Token {
	if len(s.Expr) == 0 {
		return s.Semi
	}
	return FirstToken(s.Expr)
}

// NewExprStmt builds a synthesized statement from its elements.
func NewExprStmt(elems ...Elem) *ExprStmt {
	return &ExprStmt{Expr: elems, Semi: token.New(token.Semicolon, ";")}
}

// LocalFunc is a local function with a block body.
type LocalFunc struct {
	Head Tokens
	Body *Block
}

func (*LocalFunc) stmt() {}

func (l *LocalFunc) First() token.Token { return FirstToken(l.Head) }

// If is if/else; Else is nil without an else branch.
type If struct {
	Keyword  token.Token
	Cond     *Group
	Then     Stmt
	ElseWord token.Token
	Else     Stmt
}

func (*If) stmt() {}

func (s *If) First() token.Token { return s.Keyword }

// Loop is a keyword-headed statement with a parenthesised head: while,
// for, foreach, using, lock, fixed. Prefix holds "await" for await foreach.
type Loop struct {
	Prefix  []token.Token
	Keyword token.Token
	Head    *Group
	Body    Stmt
}

func (*Loop) stmt() {}

func (s *Loop) First() token.Token {
	if len(s.Prefix) > 0 {
		return s.Prefix[0]
	}
	return s.Keyword
}

// Do is do/while.
type Do struct {
	Keyword token.Token
	Body    Stmt
	While   token.Token
	Cond    *Group
	Semi    token.Token
}

func (*Do) stmt() {}

func (s *Do) First() token.Token { return s.Keyword }

// Checked is checked/unchecked/unsafe followed by a block.
type Checked struct {
	Keyword token.Token
	Body    *Block
}

func (*Checked) stmt() {}

func (s *Checked) First() token.Token { return s.Keyword }

// Try is try/catch/finally.
type Try struct {
	Keyword token.Token
	Body    *Block
	Catches []*Catch
	Finally *Finally
}

func (*Try) stmt() {}

func (s *Try) First() token.Token { return s.Keyword }

// Catch is one catch clause. Decl and Filter are optional.
type Catch struct {
	Keyword token.Token
	Decl    *Group
	Filter  Tokens // "when (...)"
	Body    *Block
}

type Finally struct {
	Keyword token.Token
	Body    *Block
}

// Switch is a switch statement.
type Switch struct {
	Keyword  token.Token
	Head     *Group
	Open     token.Token
	Sections []*Section
	Close    token.Token
}

func (*Switch) stmt() {}

func (s *Switch) First() token.Token { return s.Keyword }

// Section is a run of case labels followed by statements.
type Section struct {
	Labels []*Label
	Stmts  []Stmt
}

// Label is "case <pattern>:" or "default:".
type Label struct {
	Tokens Tokens
	Colon  token.Token
}
