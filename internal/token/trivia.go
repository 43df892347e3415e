package token

import "xunitify/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
	// TriviaDirective is a preprocessor line (#region, #if, #pragma, ...).
	TriviaDirective
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia is a line, block or doc comment.
func (t Trivia) IsComment() bool {
	switch t.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine:
		return true
	default:
		return false
	}
}

// Newlines counts line breaks contained in a newline trivia.
func (t Trivia) Newlines() int {
	if t.Kind != TriviaNewline {
		return 0
	}
	return len(t.Text)
}

// CommentsOf drops the whitespace of tr, keeping comments and directives.
func CommentsOf(tr []Trivia) []Trivia {
	var out []Trivia
	for _, t := range tr {
		if t.IsComment() || t.Kind == TriviaDirective {
			out = append(out, t)
		}
	}
	return out
}
