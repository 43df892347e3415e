package parser

import (
	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/token"
)

// parseDecls: цикл уровня файла или namespace. inBlock останавливает его на '}'.
func (p *Parser) parseDecls(inBlock bool) []ast.Decl {
	var items []ast.Decl
	for {
		t := p.peek()
		if t.Kind == token.EOF || inBlock && t.Kind == token.RBrace {
			return items
		}
		start := p.pos
		if d := p.parseDecl(); d != nil {
			items = append(items, d)
		}
		if p.pos == start {
			p.skipStray(diag.SynUnexpectedTopLevel, "unexpected token")
		}
	}
}

// parseDecl выбирает распознаватель по первому токену.
func (p *Parser) parseDecl() ast.Decl {
	t := p.peek()
	switch {
	case t.IsKeyword("using") && p.peekAt(1).Kind != token.LParen,
		t.IsWord("global") && p.peekAt(1).IsKeyword("using"),
		t.IsKeyword("extern") && p.peekAt(1).IsWord("alias"):
		return p.parseUsing()
	case t.IsKeyword("namespace"):
		return p.parseNamespace()
	case t.Kind == token.LBracket && isGlobalTarget(p.peekAt(1)) && p.peekAt(2).Kind == token.Colon:
		g := &ast.GlobalAttrs{}
		for p.at(token.LBracket) && isGlobalTarget(p.peekAt(1)) && p.peekAt(2).Kind == token.Colon {
			g.Lists = append(g.Lists, p.parseAttrList())
		}
		return g
	}

	if p.atTypeDecl() {
		attrs := p.parseAttrLists()
		if p.delegateAhead() {
			return &ast.Raw{Tokens: p.parseDelegate(attrs)}
		}
		return p.parseTypeDecl(attrs)
	}

	if t.Kind == token.RBrace {
		p.skipStray(diag.SynUnmatchedCloser, "unmatched")
		return nil
	}
	p.err(diag.SynUnexpectedTopLevel, "unexpected top-level construct \""+t.Text+"\"; top-level statements are not supported")
	p.parseSeq(stopAt(token.Semicolon, token.RBrace))
	if p.at(token.Semicolon) {
		p.advance()
	}
	return nil
}

func isGlobalTarget(t token.Token) bool {
	return t.IsWord("assembly") || t.IsWord("module")
}

// parseUsing: директива using/global using/extern alias до ';' включительно.
func (p *Parser) parseUsing() *ast.Using {
	u := &ast.Using{}
	for {
		t := p.peek()
		switch {
		case t.Kind == token.Semicolon:
			u.Tokens = append(u.Tokens, p.advance())
			return u
		case t.Kind == token.EOF || t.Kind == token.LBrace || t.Kind == token.RBrace:
			p.err(diag.SynExpectSemicolon, "expected \";\" after using directive")
			u.Tokens = append(u.Tokens, token.New(token.Semicolon, ";"))
			return u
		default:
			u.Tokens = append(u.Tokens, p.advance())
		}
	}
}

func (p *Parser) parseNamespace() *ast.Namespace {
	ns := &ast.Namespace{Keyword: p.advance()}
	for p.at(token.Ident) || p.at(token.Dot) {
		ns.Name = append(ns.Name, p.advance())
	}
	if len(ns.Name) == 0 {
		p.err(diag.SynExpectIdentifier, "expected namespace name")
	}
	switch {
	case p.at(token.Semicolon):
		ns.FileScoped = true
		ns.Open = p.advance()
		ns.Items = p.parseDecls(false)
	case p.at(token.LBrace):
		ns.Open = p.advance()
		ns.Items = p.parseDecls(true)
		ns.Close, _ = p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected \"}\" to close namespace")
	default:
		p.err(diag.SynExpectBody, "expected \"{\" or \";\" after namespace name")
	}
	return ns
}

// atTypeDecl смотрит за атрибуты и модификаторы: начинается ли здесь объявление типа.
func (p *Parser) atTypeDecl() bool {
	i := p.skipAttrsAhead(0)
	for p.peekAt(i).Kind != token.EOF && isModifierTok(p.peekAt(i)) {
		i++
	}
	return isTypeKeyword2(p.peekAt(i), p.peekAt(i+1)) || p.peekAt(i).IsKeyword("delegate")
}

func (p *Parser) delegateAhead() bool {
	i := 0
	for isModifierTok(p.peekAt(i)) {
		i++
	}
	return p.peekAt(i).IsKeyword("delegate")
}

// skipAttrsAhead пропускает сбалансированные [...] начиная с peekAt(i).
func (p *Parser) skipAttrsAhead(i int) int {
	for p.peekAt(i).Kind == token.LBracket {
		depth := 0
		for {
			t := p.peekAt(i)
			if t.Kind == token.EOF {
				return i
			}
			i++
			if t.Kind.IsOpen() {
				depth++
			} else if t.Kind.IsClose() {
				depth--
				if depth == 0 {
					break
				}
			}
		}
	}
	return i
}

func isModifierTok(t token.Token) bool {
	return (t.Kind == token.Keyword || t.Kind == token.Ident) && token.IsModifier(t.Text)
}

// isTypeKeyword2: class/struct/interface/enum, record, record class, record struct.
func isTypeKeyword2(t, next token.Token) bool {
	switch {
	case t.IsKeyword("class"), t.IsKeyword("struct"), t.IsKeyword("interface"), t.IsKeyword("enum"):
		return true
	case t.IsWord("record"):
		return next.Kind == token.Ident || next.IsKeyword("class") || next.IsKeyword("struct")
	}
	return false
}

func (p *Parser) parseAttrLists() []*ast.AttrList {
	var lists []*ast.AttrList
	for p.at(token.LBracket) {
		lists = append(lists, p.parseAttrList())
	}
	return lists
}

// parseAttrList: '[' [target ':'] Attr {',' Attr} [','] ']'
func (p *Parser) parseAttrList() *ast.AttrList {
	l := &ast.AttrList{Open: p.advance()}
	if (p.at(token.Ident) || p.at(token.Keyword)) && p.peekAt(1).Kind == token.Colon {
		l.Target = append(l.Target, p.advance(), p.advance())
	}
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		a := &ast.Attr{}
		depth := 0
		for {
			t := p.peek()
			if t.Kind == token.Lt {
				depth++
			} else if t.Kind == token.Gt && depth > 0 {
				depth--
			} else if depth == 0 && (t.Kind != token.Ident && t.Kind != token.Keyword && t.Kind != token.Dot && !t.Is(token.Op, "::")) {
				break
			}
			a.Name = append(a.Name, p.advance())
		}
		if len(a.Name) == 0 {
			p.err(diag.SynExpectIdentifier, "expected attribute name")
			p.parseSeq(stopAt(token.RBracket))
			break
		}
		if p.at(token.LParen) {
			a.Args = p.parseGroup()
		}
		l.Attrs = append(l.Attrs, a)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	l.Close, _ = p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected \"]\" to close attribute list")
	return l
}

// parseTypeDecl разбирает class/struct/interface/record/enum после атрибутов.
func (p *Parser) parseTypeDecl(attrs []*ast.AttrList) *ast.TypeDecl {
	td := &ast.TypeDecl{Attrs: attrs}
	for isModifierTok(p.peek()) {
		td.Modifiers = append(td.Modifiers, p.advance())
	}
	kw := p.advance()
	td.Keyword = append(td.Keyword, kw)
	switch {
	case kw.IsKeyword("struct"):
		td.Kind = ast.TypeStruct
	case kw.IsKeyword("interface"):
		td.Kind = ast.TypeInterface
	case kw.IsKeyword("enum"):
		td.Kind = ast.TypeEnum
	case kw.IsWord("record"):
		td.Kind = ast.TypeRecord
		if p.at(token.Keyword) && (p.atWord("class") || p.atWord("struct")) {
			td.Keyword = append(td.Keyword, p.advance())
		}
	}

	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type name")
	if !ok {
		p.parseSeq(stopAt(token.Semicolon))
		return td
	}
	td.Name = name

	if p.at(token.Lt) {
		td.TypeParams = p.parseAngles()
	}
	if p.at(token.LParen) {
		td.Params = p.parseGroup()
	}
	if p.at(token.Colon) {
		td.Colon = p.advance()
		td.Bases = p.parseBaseList()
	}
	if p.atWord("where") {
		td.Where = p.parseSeq(stopAt(token.LBrace, token.Semicolon))
	}

	switch {
	case p.at(token.LBrace):
		td.Open = p.advance()
		if td.Kind == ast.TypeEnum {
			td.Enum = splitArgs(p.parseSeq(nil))
		} else {
			td.Members = p.parseMembers()
		}
		td.Close, _ = p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected \"}\" to close "+kw.Text+" "+name.Text)
		if p.at(token.Semicolon) {
			td.Semi = p.advance()
		}
	case p.at(token.Semicolon) && td.Kind == ast.TypeRecord:
		td.Semi = p.advance()
	default:
		p.err(diag.SynExpectBody, "expected \"{\" to open "+kw.Text+" body")
	}
	return td
}

// parseAngles собирает "<...>" с учётом вложенности.
func (p *Parser) parseAngles() ast.Tokens {
	var out ast.Tokens
	depth := 0
	for {
		t := p.peek()
		switch {
		case t.Kind == token.EOF || t.Kind == token.LBrace || t.Kind == token.Semicolon:
			p.err(diag.SynUnclosedDelimiter, "unclosed type parameter list")
			return out
		case t.Kind == token.Lt:
			depth++
		case t.Kind == token.Gt:
			depth--
		}
		if t.Kind.IsOpen() {
			out = append(out, p.parseGroup())
			continue
		}
		out = append(out, ast.T(p.advance()))
		if depth == 0 {
			return out
		}
	}
}

// parseBaseList: элементы через запятую верхнего уровня (не внутри <...>).
func (p *Parser) parseBaseList() []ast.Tokens {
	var bases []ast.Tokens
	var cur ast.Tokens
	depth := 0
	for {
		t := p.peek()
		switch {
		case t.Kind == token.EOF || t.Kind == token.LBrace || t.Kind == token.Semicolon || t.Kind.IsClose(),
			depth == 0 && t.IsWord("where"):
			if len(cur) > 0 {
				bases = append(bases, cur)
			}
			if len(bases) == 0 {
				p.err(diag.SynExpectIdentifier, "expected base type")
			}
			return bases
		case depth == 0 && t.Kind == token.Comma:
			p.advance()
			bases = append(bases, cur)
			cur = nil
			continue
		case t.Kind == token.Lt:
			depth++
		case t.Kind == token.Gt && depth > 0:
			depth--
		}
		if t.Kind.IsOpen() {
			cur = append(cur, p.parseGroup())
			continue
		}
		cur = append(cur, ast.T(p.advance()))
	}
}

// parseDelegate: объявление делегата как непрозрачная цепочка до ';'.
func (p *Parser) parseDelegate(attrs []*ast.AttrList) ast.Tokens {
	var out ast.Tokens
	for _, l := range attrs {
		out = append(out, attrListElems(l)...)
	}
	out = append(out, p.parseSeq(stopAt(token.Semicolon, token.LBrace))...)
	semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected \";\" after delegate declaration")
	return append(out, ast.T(semi))
}

// attrListElems превращает разобранный список атрибутов обратно в элементы.
func attrListElems(l *ast.AttrList) ast.Tokens {
	var out ast.Tokens
	var inner ast.Tokens
	for _, t := range l.Target {
		inner = append(inner, ast.T(t))
	}
	args := []ast.Tokens{}
	for i, a := range l.Attrs {
		var at ast.Tokens
		if i == 0 {
			at = inner
		}
		for _, t := range a.Name {
			at = append(at, ast.T(t))
		}
		if a.Args != nil {
			at = append(at, a.Args)
		}
		args = append(args, at)
	}
	out = append(out, &ast.Group{Open: l.Open, Args: args, Close: l.Close})
	return out
}
