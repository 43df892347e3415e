package lexer

import (
	"xunitify/internal/token"
)

// scanNumber accepts decimal, hex (0x) and binary (0b) integers with '_'
// separators, reals with fraction/exponent, and C# suffixes (u, l, ul, f, d, m).
// Validation is shallow: the rewrite never interprets numeric values.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '0' && (lx.cursor.PeekAt(1)|0x20 == 'x' || lx.cursor.PeekAt(1)|0x20 == 'b') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		for isHex(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
		lx.scanIntSuffix()
		return lx.emit(kind, start)
	}

	lx.eatDigits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.RealLit
		lx.cursor.Bump()
		lx.eatDigits()
	}
	if lx.cursor.Peek()|0x20 == 'e' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) || ((next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2))) {
			kind = token.RealLit
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			lx.eatDigits()
		}
	}
	switch lx.cursor.Peek() | 0x20 {
	case 'f', 'd', 'm':
		lx.cursor.Bump()
		kind = token.RealLit
	default:
		lx.scanIntSuffix()
	}
	return lx.emit(kind, start)
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanIntSuffix() {
	for i := 0; i < 2; i++ {
		switch lx.cursor.Peek() | 0x20 {
		case 'u', 'l':
			lx.cursor.Bump()
		default:
			return
		}
	}
}
