package fixture

import (
	"xunitify/internal/ast"
	"xunitify/internal/token"
)

type request struct {
	name  string
	into  ast.Container
	stmts []ast.Stmt
}

// Synthesizer collects companion classes for one file and emits each
// binding name at most once.
type Synthesizer struct {
	seen    map[string]struct{}
	pending []request
}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{seen: make(map[string]struct{})}
}

// Add records a companion for name, to be appended to into. It returns
// false when the file already has a companion with that name; the first
// one keeps its statements.
func (s *Synthesizer) Add(name string, into ast.Container, stmts []ast.Stmt) bool {
	if _, dup := s.seen[name]; dup {
		return false
	}
	s.seen[name] = struct{}{}
	s.pending = append(s.pending, request{name: name, into: into, stmts: stmts})
	return true
}

// Emit appends the recorded companions to their containers and returns
// how many were written.
func (s *Synthesizer) Emit() int {
	for _, r := range s.pending {
		r.into.AppendType(Companion(r.name, r.stmts))
	}
	n := len(s.pending)
	s.pending = nil
	return n
}

// Companion builds
//
//	public class <name>
//	{
//	    public <name>()
//	    {
//	        <stmts>
//	    }
//	}
func Companion(name string, stmts []ast.Stmt) *ast.TypeDecl {
	ctor := &ast.Method{
		Head:   ast.Tokens{ast.W("public"), ast.W(name)},
		Params: ast.Paren(),
		Body:   ast.NewBlock(stmts...),
	}
	return &ast.TypeDecl{
		Modifiers: []token.Token{token.Word("public")},
		Kind:      ast.TypeClass,
		Keyword:   []token.Token{token.Word("class")},
		Name:      token.Word(name),
		Open:      token.New(token.LBrace, "{"),
		Members:   []ast.Member{ctor},
		Close:     token.New(token.RBrace, "}"),
	}
}
