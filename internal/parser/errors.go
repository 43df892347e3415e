package parser

import (
	"fmt"

	"xunitify/internal/diag"
)

// ParseError reports that a file could not be parsed. It is fatal for that
// file only; Bag holds every diagnostic collected before giving up.
type ParseError struct {
	Path string
	Bag  *diag.Bag
}

func (e *ParseError) Error() string {
	first := ""
	for _, d := range e.Bag.Items() {
		if d.Severity >= diag.SevError {
			first = d.Message
			break
		}
	}
	n := 0
	for _, d := range e.Bag.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	if n == 1 {
		return fmt.Sprintf("parse %s: %s", e.Path, first)
	}
	return fmt.Sprintf("parse %s: %s (and %d more errors)", e.Path, first, n-1)
}
