package lexer

import (
	"xunitify/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [@]Ident и проверяет через token.IsKeyword.
// A leading '@' makes the identifier verbatim: it is never a keyword.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	verbatim := lx.cursor.Eat('@')

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		lx.cursor.Reset(start)
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(token.Ident, start)
	if !verbatim && token.IsKeyword(tok.Text) {
		tok.Kind = token.Keyword
	}
	return tok
}
