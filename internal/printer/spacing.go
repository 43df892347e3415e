package printer

import (
	"xunitify/internal/token"
)

// synthesized tokens were built by a rewrite and carry no source position.
func synthesized(t token.Token) bool {
	return t.Span.End == 0 && len(t.Leading) == 0
}

// fromSource resolves a pair the grammar alone cannot decide (generic
// brackets against comparisons, nullable '?' against the conditional
// operator, named arguments against ':' in conditionals) by looking at
// whether the source separated the tokens.
func fromSource(next token.Token, def bool) bool {
	if synthesized(next) {
		return def
	}
	return next.HasSpaceBefore()
}

// isOperand reports whether t can end an operand, so an operator after it is binary or postfix.
func isOperand(t token.Token) bool {
	switch t.Kind {
	case token.Ident, token.IntLit, token.RealLit, token.StringLit, token.CharLit,
		token.RParen, token.RBracket, token.RBrace:
		return true
	case token.Keyword:
		switch t.Text {
		case "this", "base", "true", "false", "null", "default":
			return true
		}
	}
	return false
}

// prefixCapable operators can be unary prefix operators.
func prefixCapable(op string) bool {
	switch op {
	case "-", "+", "!", "~", "++", "--", "^", "*", "&":
		return true
	}
	return false
}

var noSpaceBeforeParen = map[string]struct{}{
	"typeof": {}, "sizeof": {}, "default": {}, "checked": {}, "unchecked": {},
	"new": {}, "base": {}, "this": {},
}

var noSpaceBeforeBracket = map[string]struct{}{
	"new": {}, "this": {}, "base": {}, "stackalloc": {},
	"bool": {}, "byte": {}, "sbyte": {}, "char": {}, "decimal": {}, "double": {},
	"float": {}, "int": {}, "uint": {}, "long": {}, "ulong": {}, "short": {},
	"ushort": {}, "object": {}, "string": {},
}

// needSpace decides whether a space separates prev and next on one line.
// prevPrefix is set when prev was printed as a unary prefix operator.
func needSpace(prev, next token.Token, prevPrefix bool) bool {
	switch next.Kind {
	case token.Comma, token.Semicolon, token.RParen, token.RBracket, token.Dot:
		return false
	case token.LBrace, token.RBrace:
		return prev.Kind != token.LParen && prev.Kind != token.LBracket
	}
	if prevPrefix {
		return false
	}
	switch prev.Kind {
	case token.LParen, token.LBracket, token.Dot:
		return false
	case token.Comma, token.Semicolon, token.LBrace, token.RBrace,
		token.Assign, token.FatArrow, token.Colon:
		return true
	}
	if next.Kind == token.Assign || next.Kind == token.FatArrow {
		return true
	}

	switch prev.Kind {
	case token.Lt:
		return fromSource(next, false)
	case token.Gt:
		return fromSource(next, next.Kind != token.LParen && next.Kind != token.LBracket)
	case token.Question:
		return fromSource(next, true)
	}

	if next.Kind == token.Op {
		switch next.Text {
		case "?.", "::", "->", "..":
			return false
		case "++", "--", "!":
			return !isOperand(prev)
		}
		return true
	}
	if prev.Kind == token.Op {
		switch prev.Text {
		case "?.", "::", "->", "..":
			return false
		}
		return true
	}

	switch next.Kind {
	case token.Lt, token.Gt, token.Question:
		return fromSource(next, false)
	case token.Colon:
		return fromSource(next, false)
	case token.LParen:
		switch prev.Kind {
		case token.Ident:
			return fromSource(next, false)
		case token.RParen, token.RBracket, token.StringLit:
			return false
		case token.Keyword:
			_, tight := noSpaceBeforeParen[prev.Text]
			return !tight
		}
		return true
	case token.LBracket:
		switch prev.Kind {
		case token.Ident, token.RParen, token.RBracket, token.StringLit:
			return false
		case token.Keyword:
			_, tight := noSpaceBeforeBracket[prev.Text]
			return !tight
		}
		return true
	}
	if prev.Kind == token.RParen {
		// приведение типа "(int)x" против "a) b" решает исходник
		return fromSource(next, true)
	}
	return true
}
