package parser

import (
	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/token"
)

// parseMembers читает члены типа до '}'.
func (p *Parser) parseMembers() []ast.Member {
	var members []ast.Member
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.pos
		if m := p.parseMember(); m != nil {
			members = append(members, m)
		}
		if p.pos == start {
			p.skipStray(diag.SynBadMember, "unexpected token in type body")
		}
	}
	return members
}

// parseMember различает вложенный тип, метод, свойство и поле по заголовку.
func (p *Parser) parseMember() ast.Member {
	if p.at(token.RParen) || p.at(token.RBracket) {
		return nil
	}
	if p.atTypeDecl() {
		attrs := p.parseAttrLists()
		if p.delegateAhead() {
			return &ast.Raw{Tokens: p.parseDelegate(attrs)}
		}
		return p.parseTypeDecl(attrs)
	}
	attrs := p.parseAttrLists()

	var head ast.Tokens
	for {
		t := p.peek()
		switch t.Kind {
		case token.LParen:
			if angleDepth(head) == 0 && namesMethod(head) {
				return p.parseMethodRest(attrs, head)
			}
			head = append(head, p.parseGroup())
		case token.LBracket:
			head = append(head, p.parseGroup())
		case token.LBrace:
			if len(head) == 0 {
				p.err(diag.SynBadMember, "expected member declaration")
				return nil
			}
			return p.parsePropertyRest(&ast.Property{Attrs: attrs, Head: head})
		case token.FatArrow:
			prop := &ast.Property{Attrs: attrs, Head: head}
			prop.Arrow = p.parseExprBody()
			return prop
		case token.Assign:
			head = append(head, ast.T(p.advance()))
			head = append(head, p.parseSeq(stopAt(token.Semicolon))...)
		case token.Semicolon:
			if len(head) == 0 {
				p.advance() // пустой ';' в теле типа
				return nil
			}
			return &ast.Field{Attrs: attrs, Tokens: head, Semi: p.advance()}
		case token.EOF, token.RBrace, token.RParen, token.RBracket:
			if len(head) > 0 || len(attrs) > 0 {
				p.err(diag.SynBadMember, "incomplete member declaration")
			}
			if len(head) > 0 {
				return &ast.Field{Attrs: attrs, Tokens: head, Semi: token.New(token.Semicolon, ";")}
			}
			return nil
		default:
			head = append(head, ast.T(p.advance()))
		}
	}
}

// namesMethod: '(' открывает параметры, если перед ним уже есть что-то кроме
// модификаторов; иначе это кортежный тип возврата.
func namesMethod(head ast.Tokens) bool {
	for _, e := range head {
		t, ok := e.(ast.Tok)
		if !ok || !isModifierTok(t.Token) {
			return true
		}
	}
	return false
}

// angleDepth считает незакрытые '<' в заголовке: внутри них '(', кортеж.
func angleDepth(head ast.Tokens) int {
	depth := 0
	for _, e := range head {
		if t, ok := e.(ast.Tok); ok {
			switch t.Kind {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
			}
		}
	}
	return depth
}

func (p *Parser) parseMethodRest(attrs []*ast.AttrList, head ast.Tokens) *ast.Method {
	m := &ast.Method{Attrs: attrs, Head: head}
	m.Params = p.parseGroup()
	m.Trailer = p.parseSeq(stopAt(token.LBrace, token.FatArrow, token.Semicolon))
	switch {
	case p.at(token.LBrace):
		m.Body = p.parseBlock()
	case p.at(token.FatArrow):
		m.Arrow = p.parseExprBody()
	default:
		m.Semi, _ = p.expect(token.Semicolon, diag.SynExpectBody, "expected method body or \";\"")
	}
	return m
}

// parseExprBody: "=> expr ;"
func (p *Parser) parseExprBody() *ast.ExprBody {
	b := &ast.ExprBody{Arrow: p.advance()}
	b.Expr = p.parseSeq(stopAt(token.Semicolon))
	b.Semi, _ = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected \";\" after expression body")
	return b
}

func (p *Parser) parsePropertyRest(prop *ast.Property) *ast.Property {
	prop.Open = p.advance()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		start := p.pos
		acc := &ast.Accessor{Attrs: p.parseAttrLists()}
		for p.at(token.Ident) || p.at(token.Keyword) {
			acc.Head = append(acc.Head, ast.T(p.advance()))
		}
		if len(acc.Head) == 0 {
			p.err(diag.SynBadMember, "expected accessor")
		}
		switch {
		case p.at(token.LBrace):
			acc.Body = p.parseBlock()
		case p.at(token.FatArrow):
			acc.Arrow = p.parseExprBody()
		default:
			acc.Semi, _ = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected \";\" after accessor")
		}
		prop.Accessors = append(prop.Accessors, acc)
		if p.pos == start {
			p.advance()
		}
	}
	prop.Close, _ = p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected \"}\" to close accessor list")
	if p.at(token.Assign) {
		prop.Init = append(prop.Init, ast.T(p.advance()))
		prop.Init = append(prop.Init, p.parseSeq(stopAt(token.Semicolon))...)
		prop.InitSemi, _ = p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected \";\" after property initializer")
	}
	return prop
}
