package lexer

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f' || b == '\v' || b == '\r'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return isDec(b) || (b|0x20 >= 'a' && b|0x20 <= 'f')
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return 0, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	lx.bumpN(sz)
}

func quoteText(s string) string {
	return strconv.Quote(s)
}
