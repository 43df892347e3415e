package printer

import (
	"strings"

	"xunitify/internal/token"
)

// blankBefore reports whether the source left an empty line before the
// first comment or the token itself. A comment closing the previous line
// does not count as a first comment.
func blankBefore(t token.Token) bool {
	n := 0
	for i, tr := range t.Leading {
		switch tr.Kind {
		case token.TriviaNewline:
			n += tr.Newlines()
		case token.TriviaSpace:
		default:
			if n == 0 && tr.IsComment() && nextIsNewline(t.Leading[i+1:]) {
				continue
			}
			return n >= 2
		}
	}
	return n >= 2
}

// leading prints the comments and directives attached before t.
// At the start of a line they keep their own lines; a comment that shared
// a line with the previous token goes back to the end of that line.
// Inside a line, line comments become block comments so the code after
// them stays on the same line.
func (p *printer) leading(t token.Token) {
	newlines := 0
	printed := false
	for i, tr := range t.Leading {
		switch tr.Kind {
		case token.TriviaSpace:
			continue
		case token.TriviaNewline:
			newlines += tr.Newlines()
			continue
		}

		lineLevel := p.w.AtLineStart()
		if lineLevel && printed && newlines >= 2 {
			p.w.BlankLine()
		}
		trailing := newlines == 0 && !printed

		switch tr.Kind {
		case token.TriviaDirective:
			p.w.Newline()
			p.w.WriteString(strings.TrimRight(tr.Text, " \t"))
			p.w.Newline()

		case token.TriviaLineComment, token.TriviaDocLine:
			text := strings.TrimRight(tr.Text, " \t")
			switch {
			case lineLevel && trailing && p.w.AppendToPrevLine(" "+text):
			case lineLevel:
				p.w.WriteString(text)
				p.w.Newline()
			default:
				p.w.Space()
				p.w.WriteString(asBlockComment(text))
				p.w.Space()
			}

		case token.TriviaBlockComment:
			breakAfter := nextIsNewline(t.Leading[i+1:])
			switch {
			case lineLevel && trailing && breakAfter && p.w.AppendToPrevLine(" "+tr.Text):
			case lineLevel && breakAfter:
				p.w.WriteString(tr.Text)
				p.w.Newline()
			default:
				p.w.Space()
				p.w.WriteString(tr.Text)
				p.w.Space()
			}
		}
		printed = true
		newlines = 0
	}
	if printed && p.w.AtLineStart() && newlines >= 2 {
		p.w.BlankLine()
	}
}

// nextIsNewline reports whether a line break follows before the next comment or token.
func nextIsNewline(rest []token.Trivia) bool {
	for _, tr := range rest {
		switch tr.Kind {
		case token.TriviaSpace:
			continue
		case token.TriviaNewline:
			return true
		default:
			return false
		}
	}
	return false
}

// asBlockComment rewrites "// text" or "/// text" as "/* text */".
func asBlockComment(line string) string {
	body := strings.TrimLeft(line, "/")
	body = strings.ReplaceAll(body, "*/", "* /")
	return "/*" + body + " */"
}
