// Package testkit holds invariant checks shared by unit and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"xunitify/internal/source"
	"xunitify/internal/token"
)

// CheckTokenSpans runs a minimal set of invariants on a lexed token stream:
// 1) the stream ends with exactly one EOF token
// 2) every token and trivia span points into sf and lies within its content
// 3) spans appear in source order and do not overlap
// 4) token and trivia text equals the content under the span
func CheckTokenSpans(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return fmt.Errorf("token stream does not end with EOF")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	check := func(what string, sp source.Span, text string) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if !sp.Within(sf) {
			return fmt.Errorf("%s span %v out of bounds (content %d bytes)", what, sp, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("%s span %v overlaps previous end %d", what, sp, prevEnd)
		}
		if got := sp.Text(sf); got != text {
			return fmt.Errorf("%s text %q does not match source %q at %v", what, text, got, sp)
		}
		prevEnd = sp.End
		return nil
	}

	for i, tok := range toks {
		if tok.Kind == token.EOF && i != len(toks)-1 {
			return fmt.Errorf("EOF at position %d of %d", i, len(toks))
		}
		for _, tr := range tok.Leading {
			if err := check("trivia", tr.Span, tr.Text); err != nil {
				return err
			}
		}
		if err := check(tok.Kind.String(), tok.Span, tok.Text); err != nil {
			return err
		}
	}
	return nil
}
