package printer

import (
	"xunitify/internal/ast"
	"xunitify/internal/token"
)

func (p *printer) printFile(f *ast.File) {
	p.decls(f.Items)
	p.beginLine()
	p.leading(f.EOF)
}

func (p *printer) decls(items []ast.Decl) {
	for i, d := range items {
		if i > 0 && (blankBefore(d.First()) || separateDecls(items[i-1], d)) {
			p.w.BlankLine()
		}
		p.decl(d)
	}
}

// separateDecls: usings stay grouped, everything else gets an empty line around it.
func separateDecls(prev, next ast.Decl) bool {
	_, prevUsing := prev.(*ast.Using)
	_, nextUsing := next.(*ast.Using)
	_, prevAttrs := prev.(*ast.GlobalAttrs)
	_, nextAttrs := next.(*ast.GlobalAttrs)
	if prevUsing && nextUsing || prevAttrs && nextAttrs {
		return false
	}
	return true
}

func (p *printer) decl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.Using:
		p.beginLine()
		for _, t := range d.Tokens {
			p.tok(t)
		}
	case *ast.GlobalAttrs:
		for _, l := range d.Lists {
			p.beginLine()
			p.attrList(l)
		}
	case *ast.Namespace:
		p.namespace(d)
	case *ast.TypeDecl:
		p.typeDecl(d)
	case *ast.Raw:
		p.beginLine()
		p.elems(d.Tokens)
	}
}

func (p *printer) namespace(ns *ast.Namespace) {
	p.beginLine()
	p.tok(ns.Keyword)
	for _, t := range ns.Name {
		p.tok(t)
	}
	if ns.FileScoped {
		p.tok(ns.Open)
		if len(ns.Items) > 0 {
			p.w.BlankLine()
			p.decls(ns.Items)
		}
		return
	}
	p.beginLine()
	p.tok(ns.Open)
	p.w.IndentPush()
	p.decls(ns.Items)
	p.closeBrace(ns.Close)
}

// closeBrace prints comments trailing a body at the inner indentation, then '}'.
func (p *printer) closeBrace(t token.Token) {
	p.beginLine()
	p.leading(t)
	p.w.IndentPop()
	p.beginLine()
	t.Leading = nil
	p.tok(t)
}

func (p *printer) attrList(l *ast.AttrList) {
	p.tok(l.Open)
	for _, t := range l.Target {
		p.tok(t)
	}
	for i, a := range l.Attrs {
		if i > 0 {
			p.tok(token.New(token.Comma, ","))
		}
		for _, t := range a.Name {
			p.tok(t)
		}
		if a.Args != nil {
			p.group(a.Args)
		}
	}
	p.tok(l.Close)
}

func (p *printer) attrLists(lists []*ast.AttrList) {
	for _, l := range lists {
		p.beginLine()
		p.attrList(l)
	}
}

func (p *printer) typeDecl(td *ast.TypeDecl) {
	p.attrLists(td.Attrs)
	p.beginLine()
	for _, t := range td.Modifiers {
		p.tok(t)
	}
	for _, t := range td.Keyword {
		p.tok(t)
	}
	p.tok(td.Name)
	p.elems(td.TypeParams)
	if td.Params != nil {
		p.params(td.Params)
	}
	if len(td.Bases) > 0 {
		colon := td.Colon
		if colon.Kind != token.Colon {
			colon = token.New(token.Colon, ":")
		}
		p.w.Space()
		p.tok(colon)
		for i, b := range td.Bases {
			if i > 0 {
				p.tok(token.New(token.Comma, ","))
			}
			p.elems(b)
		}
	}
	if len(td.Where) > 0 {
		p.elems(td.Where)
	}
	if !td.HasBody() {
		p.tok(td.Semi)
		return
	}

	p.beginLine()
	p.tok(td.Open)
	p.w.IndentPush()
	if td.Kind == ast.TypeEnum {
		p.enumBody(td.Enum)
	} else {
		p.members(td.Members)
	}
	p.closeBrace(td.Close)
	if td.Semi.Kind == token.Semicolon {
		p.tok(td.Semi)
	}
}

func (p *printer) enumBody(entries []ast.Tokens) {
	trailingComma := len(entries) > 0 && len(entries[len(entries)-1]) == 0
	if trailingComma {
		entries = entries[:len(entries)-1]
	}
	for i, e := range entries {
		if i > 0 && blankBefore(ast.FirstToken(e)) {
			p.w.BlankLine()
		}
		p.beginLine()
		p.elems(e)
		if i < len(entries)-1 || trailingComma {
			p.tok(token.New(token.Comma, ","))
		}
	}
}
