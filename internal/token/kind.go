package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is an identifier, including contextual keywords and @verbatim names.
	Ident
	// Keyword is a reserved C# keyword.
	Keyword

	// IntLit is an integer literal.
	IntLit
	// RealLit is a floating point or decimal literal.
	RealLit
	// StringLit is any string literal: regular, verbatim, interpolated or raw.
	StringLit
	// CharLit is a character literal.
	CharLit

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Colon     // :
	Question  // ?
	Lt        // <
	Gt        // >
	Assign    // =
	FatArrow  // =>
	// Op covers every other operator; the concrete operator is in Text.
	Op
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	Keyword:   "Keyword",
	IntLit:    "IntLit",
	RealLit:   "RealLit",
	StringLit: "StringLit",
	CharLit:   "CharLit",
	LParen:    "LParen",
	RParen:    "RParen",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	Semicolon: "Semicolon",
	Comma:     "Comma",
	Dot:       "Dot",
	Colon:     "Colon",
	Question:  "Question",
	Lt:        "Lt",
	Gt:        "Gt",
	Assign:    "Assign",
	FatArrow:  "FatArrow",
	Op:        "Op",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsOpen reports whether k opens a group.
func (k Kind) IsOpen() bool {
	return k == LParen || k == LBrace || k == LBracket
}

// IsClose reports whether k closes a group.
func (k Kind) IsClose() bool {
	return k == RParen || k == RBrace || k == RBracket
}

// Closer returns the closing kind for an opening kind, or Invalid.
func (k Kind) Closer() Kind {
	switch k {
	case LParen:
		return RParen
	case LBrace:
		return RBrace
	case LBracket:
		return RBracket
	default:
		return Invalid
	}
}
