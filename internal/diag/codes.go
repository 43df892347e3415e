package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynUnmatchedCloser    Code = 2003
	SynExpectSemicolon    Code = 2004
	SynExpectIdentifier   Code = 2005
	SynExpectBody         Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynBadMember          Code = 2008
	SynBadStatement       Code = 2009

	// Переписывание
	RewInfo              Code = 3000
	RewDuplicateRole     Code = 3001
	RewFixtureNameReused Code = 3002
	RewFixtureMerged     Code = 3003
	RewRoleWithoutBody   Code = 3004

	// Ошибки I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexUnterminatedChar:         "Unterminated character literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynUnmatchedCloser:          "Unmatched closing delimiter",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectBody:               "Expected declaration body",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynBadMember:                "Malformed member declaration",
	SynBadStatement:             "Malformed statement",
	RewInfo:                     "Rewrite information",
	RewDuplicateRole:            "Duplicate lifecycle role member",
	RewFixtureNameReused:        "Fixture name reused from binding scope",
	RewFixtureMerged:            "Companion fixture already emitted",
	RewRoleWithoutBody:          "Lifecycle role member has no block body",
	IOLoadFileError:             "Failed to load file",
	IOWriteFileError:            "Failed to write file",
}

// ID returns the stable short identifier, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("REW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
