package parser

import (
	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/token"
)

// stopFunc решает, заканчивается ли последовательность на токене t.
// seen: уже собранные элементы верхнего уровня.
type stopFunc func(t token.Token, seen ast.Tokens) bool

func stopAt(kinds ...token.Kind) stopFunc {
	return func(t token.Token, _ ast.Tokens) bool {
		for _, k := range kinds {
			if t.Kind == k {
				return true
			}
		}
		return false
	}
}

// parseSeq читает сбалансированное дерево токенов, пока stop не сработает
// на верхнем уровне, либо до закрывающей скобки или EOF. Стоп-токен не съедается.
func (p *Parser) parseSeq(stop stopFunc) ast.Tokens {
	var out ast.Tokens
	for {
		t := p.peek()
		if t.Kind == token.EOF || t.Kind.IsClose() {
			return out
		}
		if stop != nil && stop(t, out) {
			return out
		}
		if t.Kind.IsOpen() {
			if t.Kind == token.LBrace && opensBlock(out) {
				out = append(out, p.parseBlock())
			} else {
				out = append(out, p.parseGroup())
			}
			continue
		}
		out = append(out, ast.T(p.advance()))
	}
}

// opensBlock: '{' после '=>' или delegate(...), тело лямбды, а не инициализатор.
func opensBlock(seen ast.Tokens) bool {
	n := len(seen)
	if n == 0 {
		return false
	}
	if t, ok := seen[n-1].(ast.Tok); ok {
		return t.Kind == token.FatArrow || t.IsKeyword("delegate")
	}
	if g, ok := seen[n-1].(*ast.Group); ok && g.Open.Kind == token.LParen && n >= 2 {
		if t, ok := seen[n-2].(ast.Tok); ok {
			return t.IsKeyword("delegate")
		}
	}
	return false
}

// parseGroup разбирает (), [] или {} начиная с открывающего токена.
func (p *Parser) parseGroup() *ast.Group {
	open := p.advance()
	closer := open.Kind.Closer()
	flat := p.parseSeq(nil)
	var closeTok token.Token
	switch t := p.peek(); {
	case t.Kind == closer:
		closeTok = p.advance()
	case t.Kind == token.EOF:
		p.report(diag.SynUnclosedDelimiter, diag.SevError, open.Span, "unclosed \""+open.Text+"\"")
		closeTok = token.New(closer, closerText(closer))
	default:
		// чужая закрывающая скобка, оставляем её внешнему уровню
		p.err(diag.SynUnmatchedCloser, "expected \""+closerText(closer)+"\", got \""+t.Text+"\"")
		closeTok = token.New(closer, closerText(closer))
	}
	return &ast.Group{Open: open, Args: splitArgs(flat), Close: closeTok}
}

// splitArgs делит элементы по запятым верхнего уровня, пропуская запятые
// внутри списков generic-аргументов.
func splitArgs(flat ast.Tokens) []ast.Tokens {
	if len(flat) == 0 {
		return nil
	}
	var args []ast.Tokens
	start := 0
	for i := 0; i < len(flat); i++ {
		t, ok := flat[i].(ast.Tok)
		if !ok {
			continue
		}
		switch t.Kind {
		case token.Lt:
			if end := genericEnd(flat, i); end > 0 {
				i = end
			}
		case token.Comma:
			args = append(args, flat[start:i])
			start = i + 1
		}
	}
	return append(args, flat[start:])
}

// genericEnd возвращает индекс '>' закрывающего список типов, открытый '<'
// на позиции i, или -1, если это сравнение. Правило следует C#: внутри только
// имена типов, после '>', токен из ограниченного множества.
func genericEnd(ts ast.Tokens, i int) int {
	if i == 0 {
		return -1
	}
	if prev, ok := ts[i-1].(ast.Tok); !ok || prev.Kind != token.Ident {
		return -1
	}
	depth := 0
	for j := i; j < len(ts); j++ {
		switch e := ts[j].(type) {
		case *ast.Group:
			if e.Open.Kind == token.LBrace {
				return -1
			}
		case *ast.Block:
			return -1
		case ast.Tok:
			switch {
			case e.Kind == token.Lt:
				depth++
			case e.Kind == token.Gt:
				depth--
				if depth == 0 {
					if followsGeneric(ts, j+1) {
						return j
					}
					return -1
				}
			case e.Kind == token.Ident, e.Kind == token.Comma, e.Kind == token.Dot,
				e.Kind == token.Question, e.Is(token.Op, "::"), e.Is(token.Op, "*"),
				e.Kind == token.Keyword && isTypeKeyword(e.Text):
			default:
				return -1
			}
		}
	}
	return -1
}

func followsGeneric(ts ast.Tokens, j int) bool {
	if j >= len(ts) {
		return true
	}
	switch e := ts[j].(type) {
	case *ast.Group:
		return true
	case ast.Tok:
		switch e.Kind {
		case token.Ident, token.Colon, token.Semicolon, token.Comma, token.Dot,
			token.Question, token.Gt, token.Assign, token.FatArrow:
			return true
		case token.Op:
			switch e.Text {
			case "==", "!=", "|", "^", "&&", "||", "&", "?.", "??":
				return true
			}
		}
	}
	return false
}

var typeKeywords = map[string]struct{}{
	"bool": {}, "byte": {}, "sbyte": {}, "char": {}, "decimal": {}, "double": {},
	"float": {}, "int": {}, "uint": {}, "long": {}, "ulong": {}, "short": {},
	"ushort": {}, "object": {}, "string": {}, "void": {},
}

func isTypeKeyword(s string) bool {
	_, ok := typeKeywords[s]
	return ok
}
