package printer

import (
	"xunitify/internal/ast"
	"xunitify/internal/token"
)

func (p *printer) members(ms []ast.Member) {
	for i, m := range ms {
		if i > 0 && (blankBefore(m.First()) || hasBody(ms[i-1]) || hasBody(m)) {
			p.w.BlankLine()
		}
		p.member(m)
	}
}

// hasBody: members spanning several lines are set apart by an empty line.
func hasBody(m ast.Member) bool {
	switch m := m.(type) {
	case *ast.Method:
		return m.Body != nil
	case *ast.TypeDecl:
		return true
	case *ast.Property:
		return !inlineAccessors(m)
	}
	return false
}

func (p *printer) member(m ast.Member) {
	switch m := m.(type) {
	case *ast.Method:
		p.method(m)
	case *ast.Field:
		p.attrLists(m.Attrs)
		p.beginLine()
		p.elems(m.Tokens)
		p.tok(m.Semi)
	case *ast.Property:
		p.property(m)
	case *ast.TypeDecl:
		p.typeDecl(m)
	case *ast.Raw:
		p.beginLine()
		p.elems(m.Tokens)
	}
}

func (p *printer) method(m *ast.Method) {
	p.attrLists(m.Attrs)
	p.beginLine()
	p.elems(m.Head)
	p.params(m.Params)
	p.elems(m.Trailer)
	switch {
	case m.Body != nil:
		p.beginLine()
		p.block(m.Body)
	case m.Arrow != nil:
		p.exprBody(m.Arrow)
	default:
		p.tok(m.Semi)
	}
}

func (p *printer) exprBody(b *ast.ExprBody) {
	p.tok(b.Arrow)
	p.elems(b.Expr)
	p.tok(b.Semi)
}

// inlineAccessors: "{ get; set; }" stays on one line.
func inlineAccessors(prop *ast.Property) bool {
	if prop.Arrow != nil {
		return true
	}
	for _, a := range prop.Accessors {
		if a.Body != nil || len(a.Attrs) > 0 {
			return false
		}
	}
	return true
}

func (p *printer) property(prop *ast.Property) {
	p.attrLists(prop.Attrs)
	p.beginLine()
	p.elems(prop.Head)
	if prop.Arrow != nil {
		p.exprBody(prop.Arrow)
		return
	}
	if inlineAccessors(prop) {
		p.tok(prop.Open)
		for _, a := range prop.Accessors {
			p.accessorInline(a)
		}
		p.tok(prop.Close)
	} else {
		p.beginLine()
		p.tok(prop.Open)
		p.w.IndentPush()
		for _, a := range prop.Accessors {
			p.attrLists(a.Attrs)
			p.beginLine()
			p.elems(a.Head)
			switch {
			case a.Body != nil:
				p.beginLine()
				p.block(a.Body)
			case a.Arrow != nil:
				p.exprBody(a.Arrow)
			default:
				p.tok(a.Semi)
			}
		}
		p.closeBrace(prop.Close)
	}
	if len(prop.Init) > 0 {
		p.elems(prop.Init)
		p.tok(prop.InitSemi)
	}
}

func (p *printer) accessorInline(a *ast.Accessor) {
	p.elems(a.Head)
	if a.Arrow != nil {
		p.exprBody(a.Arrow)
		return
	}
	semi := a.Semi
	if semi.Kind != token.Semicolon {
		semi = token.New(token.Semicolon, ";")
	}
	p.tok(semi)
}
