package rewrite

import (
	"xunitify/internal/ast"
	"xunitify/internal/token"
)

// takeLeading detaches the trivia in front of a member.
func takeLeading(m ast.Member) []token.Trivia {
	var tr []token.Trivia
	switch m := m.(type) {
	case *ast.Method:
		if len(m.Attrs) > 0 {
			tr, m.Attrs[0].Open.Leading = m.Attrs[0].Open.Leading, nil
			return tr
		}
		return ast.TakeLeading(m.Head)
	case *ast.Field:
		if len(m.Attrs) > 0 {
			tr, m.Attrs[0].Open.Leading = m.Attrs[0].Open.Leading, nil
			return tr
		}
		return ast.TakeLeading(m.Tokens)
	case *ast.Property:
		if len(m.Attrs) > 0 {
			tr, m.Attrs[0].Open.Leading = m.Attrs[0].Open.Leading, nil
			return tr
		}
		return ast.TakeLeading(m.Head)
	case *ast.TypeDecl:
		switch {
		case len(m.Attrs) > 0:
			tr, m.Attrs[0].Open.Leading = m.Attrs[0].Open.Leading, nil
		case len(m.Modifiers) > 0:
			tr, m.Modifiers[0].Leading = m.Modifiers[0].Leading, nil
		case len(m.Keyword) > 0:
			tr, m.Keyword[0].Leading = m.Keyword[0].Leading, nil
		}
		return tr
	case *ast.Raw:
		return ast.TakeLeading(m.Tokens)
	}
	return nil
}

// prependLeading puts trivia in front of a member, before its attributes.
func prependLeading(m ast.Member, tr []token.Trivia) {
	var lists []*ast.AttrList
	switch m := m.(type) {
	case *ast.Method:
		lists = m.Attrs
	case *ast.Field:
		lists = m.Attrs
	case *ast.Property:
		lists = m.Attrs
	case *ast.TypeDecl:
		lists = m.Attrs
	case *ast.Raw:
		ast.PrependLeading(m.Tokens, tr)
		return
	}
	if len(lists) == 0 {
		ast.AttachLeading(m, tr)
		return
	}
	open := &lists[0].Open
	open.Leading = append(append(make([]token.Trivia, 0, len(tr)+len(open.Leading)), tr...), open.Leading...)
}

// directives keeps the preprocessor lines of tr.
func directives(tr []token.Trivia) []token.Trivia {
	var out []token.Trivia
	for _, t := range tr {
		if t.Kind == token.TriviaDirective {
			out = append(out, t)
		}
	}
	return out
}
