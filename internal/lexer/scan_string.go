package lexer

import (
	"xunitify/internal/diag"
	"xunitify/internal/token"
)

// scanString handles every C# string form as one opaque StringLit token:
// "..." regular, @"..." verbatim, $"..." / $@"..." / @$"..." interpolated
// and """...""" raw. Interpolation holes are skipped with brace counting,
// nested literals inside holes are scanned recursively.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	ok := lx.skipString()
	if !ok {
		lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
	}
	return lx.emit(token.StringLit, start)
}

// skipString advances past one string literal starting at the cursor.
func (lx *Lexer) skipString() bool {
	interp, verbatim := false, false
	for {
		switch lx.cursor.Peek() {
		case '$':
			interp = true
			lx.cursor.Bump()
			continue
		case '@':
			verbatim = true
			lx.cursor.Bump()
			continue
		}
		break
	}
	if lx.cursor.Peek() != '"' {
		return false
	}
	if lx.cursor.PeekAt(1) == '"' && lx.cursor.PeekAt(2) == '"' {
		return lx.skipRawString()
	}
	lx.cursor.Bump()

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '"':
			lx.cursor.Bump()
			if verbatim && lx.cursor.Peek() == '"' {
				lx.cursor.Bump()
				continue
			}
			return true
		case b == '\\' && !verbatim:
			lx.cursor.Bump()
			if lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '\n' && !verbatim:
			return false
		case b == '{' && interp:
			lx.cursor.Bump()
			if lx.cursor.Peek() == '{' {
				lx.cursor.Bump()
				continue
			}
			if !lx.skipHole() {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

// skipRawString consumes """...""" with the delimiter length taken from
// the opening run of quotes.
func (lx *Lexer) skipRawString() bool {
	n := 0
	for lx.cursor.Peek() == '"' {
		lx.cursor.Bump()
		n++
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() != '"' {
			lx.cursor.Bump()
			continue
		}
		run := 0
		for lx.cursor.Peek() == '"' {
			lx.cursor.Bump()
			run++
		}
		if run >= n {
			return true
		}
	}
	return false
}

// skipHole consumes an interpolation hole up to its closing '}'.
func (lx *Lexer) skipHole() bool {
	depth := 1
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '{':
			depth++
			lx.cursor.Bump()
		case b == '}':
			depth--
			lx.cursor.Bump()
			if depth == 0 {
				return true
			}
		case b == '"' || (b == '@' || b == '$') && (lx.cursor.PeekAt(1) == '"' || lx.cursor.PeekAt(1) == '@' || lx.cursor.PeekAt(1) == '$'):
			if !lx.skipString() {
				return false
			}
		case b == '\'':
			if !lx.skipChar() {
				return false
			}
		default:
			lx.cursor.Bump()
		}
	}
	return false
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	if !lx.skipChar() {
		lx.errLex(diag.LexUnterminatedChar, lx.cursor.SpanFrom(start), "unterminated character literal")
	}
	return lx.emit(token.CharLit, start)
}

func (lx *Lexer) skipChar() bool {
	lx.cursor.Bump() // '
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '\'':
			lx.cursor.Bump()
			return true
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case '\n':
			return false
		default:
			lx.cursor.Bump()
		}
	}
	return false
}
