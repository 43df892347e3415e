package rewrite

import (
	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/token"
)

// effect is what a visited subtree reports to its enclosing class.
type effect struct {
	// sink is set when an assertion message was routed to, or dropped
	// in favour of, the class's output sink.
	sink bool
}

func (a effect) or(b effect) effect {
	return effect{sink: a.sink || b.sink}
}

func (r *fileRun) member(m ast.Member, into ast.Container) effect {
	var eff effect
	switch m := m.(type) {
	case *ast.Method:
		r.attrs(&m.Attrs, m)
		eff = r.method(m)
	case *ast.Field:
		r.attrs(&m.Attrs, m)
		m.Tokens, eff = r.elems(m.Tokens)
	case *ast.Property:
		r.attrs(&m.Attrs, m)
		eff = r.property(m)
	case *ast.TypeDecl:
		// вложенный класс сам решает, нужен ли ему sink
		r.typeDecl(m, into)
	}
	return eff
}

func (r *fileRun) method(m *ast.Method) effect {
	var eff effect
	switch {
	case m.Body != nil:
		m.Body.Stmts, eff = r.stmts(m.Body.Stmts)
	case m.Arrow != nil:
		if g, ef, ok := r.guardExpr(m.Arrow.Expr); ok {
			m.Body = ast.NewBlock(g)
			m.Arrow = nil
			return ef
		}
		m.Arrow.Expr, eff = r.elems(m.Arrow.Expr)
	}
	return eff
}

func (r *fileRun) property(p *ast.Property) effect {
	var eff, ef effect
	for _, a := range p.Accessors {
		switch {
		case a.Body != nil:
			a.Body.Stmts, ef = r.stmts(a.Body.Stmts)
		case a.Arrow != nil:
			a.Arrow.Expr, ef = r.elems(a.Arrow.Expr)
		}
		eff = eff.or(ef)
	}
	if p.Arrow != nil {
		p.Arrow.Expr, ef = r.elems(p.Arrow.Expr)
		eff = eff.or(ef)
	}
	p.Init, ef = r.elems(p.Init)
	return eff.or(ef)
}

func (r *fileRun) stmts(list []ast.Stmt) ([]ast.Stmt, effect) {
	var eff, ef effect
	for i, s := range list {
		list[i], ef = r.stmt(s)
		eff = eff.or(ef)
	}
	return list, eff
}

func (r *fileRun) stmt(s ast.Stmt) (ast.Stmt, effect) {
	var eff, ef effect
	switch s := s.(type) {
	case *ast.ExprStmt:
		if g, ef, ok := r.guardExpr(s.Expr); ok {
			return g, ef
		}
		s.Expr, eff = r.elems(s.Expr)
	case *ast.Block:
		s.Stmts, eff = r.stmts(s.Stmts)
	case *ast.If:
		eff = r.args(s.Cond)
		s.Then, ef = r.embedded(s.Then)
		eff = eff.or(ef)
		if s.Else != nil {
			s.Else, ef = r.embedded(s.Else)
			eff = eff.or(ef)
		}
	case *ast.Loop:
		eff = r.args(s.Head)
		s.Body, ef = r.embedded(s.Body)
		eff = eff.or(ef)
	case *ast.Do:
		s.Body, eff = r.embedded(s.Body)
		eff = eff.or(r.args(s.Cond))
	case *ast.Checked:
		s.Body.Stmts, eff = r.stmts(s.Body.Stmts)
	case *ast.Try:
		s.Body.Stmts, eff = r.stmts(s.Body.Stmts)
		for _, c := range s.Catches {
			c.Filter, ef = r.elems(c.Filter)
			eff = eff.or(ef)
			c.Body.Stmts, ef = r.stmts(c.Body.Stmts)
			eff = eff.or(ef)
		}
		if s.Finally != nil {
			s.Finally.Body.Stmts, ef = r.stmts(s.Finally.Body.Stmts)
			eff = eff.or(ef)
		}
	case *ast.Switch:
		eff = r.args(s.Head)
		for _, sec := range s.Sections {
			sec.Stmts, ef = r.stmts(sec.Stmts)
			eff = eff.or(ef)
		}
	case *ast.LocalFunc:
		s.Body.Stmts, eff = r.stmts(s.Body.Stmts)
	}
	return s, eff
}

// embedded rewrites the body of if/else/loop; a guard replacing a bare
// statement there gets its own block.
func (r *fileRun) embedded(s ast.Stmt) (ast.Stmt, effect) {
	ns, eff := r.stmt(s)
	if g, ok := ns.(*ast.Guard); ok {
		return ast.NewBlock(g), eff
	}
	return ns, eff
}

// guardExpr turns ts into a guard when it is exactly a mapped assertion
// call with a message.
func (r *fileRun) guardExpr(ts ast.Tokens) (*ast.Guard, effect, bool) {
	if !r.guards {
		return nil, effect{}, false
	}
	c, ok := r.e.asserts.Match(ts, 0)
	if !ok || c.End != len(ts)-1 || !c.HasMessage() {
		return nil, effect{}, false
	}
	eff := r.args(c.Args)
	g, ok := r.e.asserts.Guard(ts)
	if !ok {
		return nil, effect{}, false
	}
	r.sum.Assertions++
	r.sum.Guards++
	eff.sink = true
	return g, eff, true
}

func (r *fileRun) args(g *ast.Group) effect {
	if g == nil {
		return effect{}
	}
	var eff, ef effect
	for i, a := range g.Args {
		g.Args[i], ef = r.elems(a)
		eff = eff.or(ef)
	}
	return eff
}

// elems rewrites assertion calls inside an expression. A call that ends a
// lambda expression body becomes a block body holding a guard; any other
// nested call loses its message.
func (r *fileRun) elems(ts ast.Tokens) (ast.Tokens, effect) {
	var eff, ef effect
	for i := 0; i < len(ts); i++ {
		switch e := ts[i].(type) {
		case ast.Tok:
			c, ok := r.e.asserts.Match(ts, i)
			if !ok {
				continue
			}
			if c.HasMessage() && c.End == len(ts)-1 && isArrow(ts, i-1) {
				if g, ef, ok := r.guardExpr(ts[i:]); ok {
					out := append(ts[:i:i], ast.NewBlock(g))
					return out, eff.or(ef)
				}
			}
			eff = eff.or(r.args(c.Args))
			r.e.asserts.Rename(ts, c)
			r.sum.Assertions++
			if msg := r.e.asserts.Trim(c); msg != nil {
				eff.sink = true
				why := "the call is part of a larger expression and cannot be guarded"
				if !r.guards {
					why = "only classes and records get an output sink"
				}
				r.info(diag.RewInfo, e.Span, "message of "+r.e.opts.Facade+"."+c.Method+" dropped: "+why)
			}
			i = c.End
		case *ast.Group:
			eff = eff.or(r.args(e))
		case *ast.Block:
			e.Stmts, ef = r.stmts(e.Stmts)
			eff = eff.or(ef)
		}
	}
	return ts, eff
}

func isArrow(ts ast.Tokens, i int) bool {
	if i < 0 || i >= len(ts) {
		return false
	}
	t, ok := ts[i].(ast.Tok)
	return ok && t.Kind == token.FatArrow
}
