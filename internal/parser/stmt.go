package parser

import (
	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/token"
)

func (p *Parser) parseBlock() *ast.Block {
	b := &ast.Block{Open: p.advance()}
	b.Stmts = p.parseStmts(func() bool { return p.at(token.RBrace) })
	b.Close, _ = p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected \"}\" to close block")
	return b
}

// parseStmts читает операторы, пока done() не вернёт true или не встретится EOF.
func (p *Parser) parseStmts(done func() bool) []ast.Stmt {
	var out []ast.Stmt
	for !p.at(token.EOF) && !done() {
		start := p.pos
		if s := p.parseStmt(); s != nil {
			out = append(out, s)
		}
		if p.pos == start {
			p.skipStray(diag.SynBadStatement, "unexpected token in statement")
		}
	}
	return out
}

// parseStmt выбирает разбор по ключевому слову, остальное разбирается как простой оператор до ';'.
func (p *Parser) parseStmt() ast.Stmt {
	t := p.peek()
	next := p.peekAt(1)
	switch {
	case t.Kind == token.LBrace:
		return p.parseBlock()
	case t.IsKeyword("if"):
		return p.parseIf()
	case t.IsKeyword("while"), t.IsKeyword("for"), t.IsKeyword("foreach"),
		t.IsKeyword("lock"), t.IsKeyword("fixed"),
		t.IsKeyword("using") && next.Kind == token.LParen:
		return p.parseLoop(nil)
	case t.IsWord("await") && (next.IsKeyword("foreach") || next.IsKeyword("using") && p.peekAt(2).Kind == token.LParen):
		prefix := []token.Token{p.advance()}
		return p.parseLoop(prefix)
	case t.IsKeyword("do"):
		return p.parseDo()
	case t.IsKeyword("try"):
		return p.parseTry()
	case t.IsKeyword("switch") && next.Kind == token.LParen:
		return p.parseSwitch()
	case (t.IsKeyword("checked") || t.IsKeyword("unchecked") || t.IsKeyword("unsafe")) && next.Kind == token.LBrace:
		return &ast.Checked{Keyword: p.advance(), Body: p.parseBlock()}
	case t.IsKeyword("else"), t.IsKeyword("catch"), t.IsKeyword("finally"), t.IsKeyword("case"):
		p.err(diag.SynBadStatement, "unexpected \""+t.Text+"\"")
		p.advance()
		return nil
	case t.Kind.IsClose():
		return nil
	}
	return p.parseSimple()
}

func (p *Parser) parseIf() *ast.If {
	s := &ast.If{Keyword: p.advance()}
	s.Cond = p.parseHead()
	s.Then = p.parseEmbedded()
	if p.at(token.Keyword) && p.peek().IsKeyword("else") {
		s.ElseWord = p.advance()
		s.Else = p.parseEmbedded()
	}
	return s
}

func (p *Parser) parseLoop(prefix []token.Token) *ast.Loop {
	s := &ast.Loop{Prefix: prefix, Keyword: p.advance()}
	s.Head = p.parseHead()
	s.Body = p.parseEmbedded()
	return s
}

func (p *Parser) parseDo() *ast.Do {
	s := &ast.Do{Keyword: p.advance()}
	s.Body = p.parseEmbedded()
	s.While, _ = p.expect(token.Keyword, diag.SynBadStatement, "expected \"while\" after do body")
	s.Cond = p.parseHead()
	s.Semi, _ = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected \";\" after do-while")
	return s
}

func (p *Parser) parseTry() *ast.Try {
	s := &ast.Try{Keyword: p.advance()}
	s.Body = p.parseBodyBlock("try")
	for p.peek().IsKeyword("catch") {
		c := &ast.Catch{Keyword: p.advance()}
		if p.at(token.LParen) {
			c.Decl = p.parseGroup()
		}
		if p.atWord("when") {
			c.Filter = append(c.Filter, ast.T(p.advance()))
			if p.at(token.LParen) {
				c.Filter = append(c.Filter, p.parseGroup())
			}
		}
		c.Body = p.parseBodyBlock("catch")
		s.Catches = append(s.Catches, c)
	}
	if p.peek().IsKeyword("finally") {
		s.Finally = &ast.Finally{Keyword: p.advance()}
		s.Finally.Body = p.parseBodyBlock("finally")
	}
	if len(s.Catches) == 0 && s.Finally == nil {
		p.err(diag.SynBadStatement, "expected \"catch\" or \"finally\" after try block")
	}
	return s
}

func (p *Parser) parseSwitch() *ast.Switch {
	s := &ast.Switch{Keyword: p.advance()}
	s.Head = p.parseHead()
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBody, "expected \"{\" after switch head")
		return s
	}
	s.Open = p.advance()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		sec := &ast.Section{}
		for p.atLabel() {
			l := &ast.Label{}
			l.Tokens = p.parseSeq(stopAt(token.Colon, token.Semicolon))
			l.Colon, _ = p.expect(token.Colon, diag.SynBadStatement, "expected \":\" after case label")
			sec.Labels = append(sec.Labels, l)
		}
		if len(sec.Labels) == 0 {
			p.err(diag.SynBadStatement, "expected \"case\" or \"default\" in switch")
			p.parseSeq(stopAt(token.Semicolon))
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		sec.Stmts = p.parseStmts(func() bool { return p.at(token.RBrace) || p.atLabel() })
		s.Sections = append(s.Sections, sec)
	}
	s.Close, _ = p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected \"}\" to close switch")
	return s
}

func (p *Parser) atLabel() bool {
	t := p.peek()
	return t.IsKeyword("case") || t.IsKeyword("default") && p.peekAt(1).Kind == token.Colon
}

// parseHead: обязательная "(...)" после ключевого слова.
func (p *Parser) parseHead() *ast.Group {
	if !p.at(token.LParen) {
		p.err(diag.SynBadStatement, "expected \"(\"")
		return ast.Paren()
	}
	return p.parseGroup()
}

// parseBodyBlock: обязательный блок после try/catch/finally.
func (p *Parser) parseBodyBlock(after string) *ast.Block {
	if !p.at(token.LBrace) {
		p.err(diag.SynExpectBody, "expected \"{\" after "+after)
		return ast.NewBlock()
	}
	return p.parseBlock()
}

// parseEmbedded: вложенный оператор ветки или цикла.
func (p *Parser) parseEmbedded() ast.Stmt {
	if p.at(token.EOF) || p.peek().Kind.IsClose() {
		p.err(diag.SynBadStatement, "expected statement")
		return ast.NewExprStmt()
	}
	if s := p.parseStmt(); s != nil {
		return s
	}
	return ast.NewExprStmt()
}

// parseSimple: оператор до ';' верхнего уровня. Локальная функция с телом
// в фигурных скобках заканчивается на своём блоке.
func (p *Parser) parseSimple() ast.Stmt {
	expr := p.parseSeq(func(t token.Token, seen ast.Tokens) bool {
		return t.Kind == token.Semicolon || t.Kind == token.LBrace && localFuncHead(seen)
	})
	if p.at(token.LBrace) {
		return &ast.LocalFunc{Head: expr, Body: p.parseBlock()}
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected \";\"")
	if !ok && len(expr) == 0 {
		return nil
	}
	return &ast.ExprStmt{Expr: expr, Semi: semi}
}

// localFuncHead: "Type Name(params)" или "Type Name<T>(params)" без
// присваиваний и операторов на верхнем уровне.
func localFuncHead(seen ast.Tokens) bool {
	n := len(seen)
	if n < 3 {
		return false
	}
	if g, ok := seen[n-1].(*ast.Group); !ok || g.Open.Kind != token.LParen {
		return false
	}
	name, ok := seen[n-2].(ast.Tok)
	if !ok || name.Kind != token.Ident && name.Kind != token.Gt {
		return false
	}
	for i, e := range seen[:n-1] {
		t, ok := e.(ast.Tok)
		if !ok {
			continue
		}
		switch t.Kind {
		case token.Assign, token.FatArrow, token.Op, token.Colon, token.Question, token.Dot:
			return false
		case token.Keyword:
			if i == 0 && !token.IsModifier(t.Text) && !isTypeKeyword(t.Text) {
				return false
			}
		}
	}
	return true
}
