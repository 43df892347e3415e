package lexer

import (
	"xunitify/internal/diag"
	"xunitify/internal/token"
)

var threeCharOps = []string{"<<=", "??="}

var twoCharOps = []string{
	"=>", "==", "!=", "<=", ">=", "&&", "||", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"<<", "??", "?.", "::", "->", "..",
}

// scanOperatorOrPunct: сначала пунктуация, затем самые длинные операторы.
// '>' всегда одиночный: закрывающие скобки generic-аргументов и сдвиг '>>'
// различаются только на уровне печати по смежности в исходнике.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()

	if kind, ok := punctKind(b); ok {
		// '?.' и '?[', условный доступ; '??', отдельный оператор
		if !(b == '?' && (lx.cursor.PeekAt(1) == '?' || lx.cursor.PeekAt(1) == '.' && !isDec(lx.cursor.PeekAt(2)))) &&
			!(b == '.' && lx.cursor.PeekAt(1) == '.') &&
			!(b == ':' && lx.cursor.PeekAt(1) == ':') &&
			!(b == '=' && (lx.cursor.PeekAt(1) == '=' || lx.cursor.PeekAt(1) == '>')) &&
			!(b == '<' && (lx.cursor.PeekAt(1) == '<' || lx.cursor.PeekAt(1) == '=')) &&
			!(b == '>' && lx.cursor.PeekAt(1) == '=') {
			lx.cursor.Bump()
			return lx.emit(kind, start)
		}
	}

	for _, op := range threeCharOps {
		if lx.hasPrefix(op) {
			lx.bumpN(len(op))
			return lx.emit(token.Op, start)
		}
	}
	for _, op := range twoCharOps {
		if lx.hasPrefix(op) {
			lx.bumpN(len(op))
			kind := token.Op
			if op == "=>" {
				kind = token.FatArrow
			}
			return lx.emit(kind, start)
		}
	}

	switch b {
	case '+', '-', '*', '/', '%', '&', '|', '^', '!', '~':
		lx.cursor.Bump()
		return lx.emit(token.Op, start)
	}

	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+quoteText(tok.Text))
	return tok
}

func punctKind(b byte) (token.Kind, bool) {
	switch b {
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case '{':
		return token.LBrace, true
	case '}':
		return token.RBrace, true
	case '[':
		return token.LBracket, true
	case ']':
		return token.RBracket, true
	case ';':
		return token.Semicolon, true
	case ',':
		return token.Comma, true
	case '.':
		return token.Dot, true
	case ':':
		return token.Colon, true
	case '?':
		return token.Question, true
	case '<':
		return token.Lt, true
	case '>':
		return token.Gt, true
	case '=':
		return token.Assign, true
	}
	return token.Invalid, false
}

func (lx *Lexer) hasPrefix(op string) bool {
	for i := uint32(0); i < uint32(len(op)); i++ { //nolint:gosec // операторы короче 4 байт
		if lx.cursor.PeekAt(i) != op[i] {
			return false
		}
	}
	return true
}

func (lx *Lexer) bumpN(n int) {
	for i := 0; i < n; i++ {
		lx.cursor.Bump()
	}
}
