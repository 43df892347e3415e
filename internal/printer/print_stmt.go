package printer

import (
	"xunitify/internal/ast"
	"xunitify/internal/token"
)

func (p *printer) block(b *ast.Block) {
	p.tok(b.Open)
	p.w.IndentPush()
	p.stmts(b.Stmts)
	p.closeBrace(b.Close)
}

func (p *printer) stmts(list []ast.Stmt) {
	for i, s := range list {
		if i > 0 && blankBefore(s.First()) {
			p.w.BlankLine()
		}
		p.stmt(s)
	}
}

func (p *printer) stmt(s ast.Stmt) {
	p.beginLine()
	switch s := s.(type) {
	case *ast.Block:
		p.block(s)
	case *ast.ExprStmt:
		p.elems(s.Expr)
		p.tok(s.Semi)
	case *ast.LocalFunc:
		if i := paramIndex(s.Head); i >= 0 {
			p.elems(s.Head[:i])
			p.params(s.Head[i].(*ast.Group))
			p.elems(s.Head[i+1:])
		} else {
			p.elems(s.Head)
		}
		p.beginLine()
		p.block(s.Body)
	case *ast.If:
		p.ifStmt(s)
	case *ast.Loop:
		for _, t := range s.Prefix {
			p.tok(t)
		}
		p.tok(s.Keyword)
		p.group(s.Head)
		p.embedded(s.Body)
	case *ast.Do:
		p.tok(s.Keyword)
		p.embedded(s.Body)
		p.beginLine()
		p.tok(s.While)
		p.group(s.Cond)
		p.tok(s.Semi)
	case *ast.Checked:
		p.tok(s.Keyword)
		p.beginLine()
		p.block(s.Body)
	case *ast.Try:
		p.tryStmt(s)
	case *ast.Guard:
		p.tryStmt(s.Lower())
	case *ast.Switch:
		p.switchStmt(s)
	}
}

func (p *printer) ifStmt(s *ast.If) {
	p.tok(s.Keyword)
	p.group(s.Cond)
	p.embedded(s.Then)
	if s.Else == nil {
		return
	}
	p.beginLine()
	elseWord := s.ElseWord
	if elseWord.Kind != token.Keyword {
		elseWord = token.Word("else")
	}
	p.tok(elseWord)
	if chained, ok := s.Else.(*ast.If); ok {
		p.ifStmt(chained)
		return
	}
	p.embedded(s.Else)
}

// embedded prints the body of a branch or loop: blocks on their own
// lines, single statements indented one level.
func (p *printer) embedded(s ast.Stmt) {
	if b, ok := s.(*ast.Block); ok {
		p.beginLine()
		p.block(b)
		return
	}
	p.w.IndentPush()
	p.stmt(s)
	p.w.IndentPop()
}

func (p *printer) tryStmt(s *ast.Try) {
	p.tok(s.Keyword)
	p.beginLine()
	p.block(s.Body)
	for _, c := range s.Catches {
		p.beginLine()
		p.tok(c.Keyword)
		if c.Decl != nil {
			p.group(c.Decl)
		}
		p.elems(c.Filter)
		p.beginLine()
		p.block(c.Body)
	}
	if s.Finally != nil {
		p.beginLine()
		p.tok(s.Finally.Keyword)
		p.beginLine()
		p.block(s.Finally.Body)
	}
}

func (p *printer) switchStmt(s *ast.Switch) {
	p.tok(s.Keyword)
	p.group(s.Head)
	p.beginLine()
	p.tok(s.Open)
	p.w.IndentPush()
	for i, sec := range s.Sections {
		if i > 0 && len(sec.Labels) > 0 && blankBefore(ast.FirstToken(sec.Labels[0].Tokens)) {
			p.w.BlankLine()
		}
		for _, l := range sec.Labels {
			p.beginLine()
			p.elems(l.Tokens)
			p.tok(l.Colon)
		}
		p.w.IndentPush()
		p.stmts(sec.Stmts)
		p.w.IndentPop()
	}
	p.closeBrace(s.Close)
}
