package rewrite

import (
	"fmt"

	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/marker"
	"xunitify/internal/token"
)

// classUnit is the rewrite context of one class: the method holding each
// lifecycle role and every lifecycle method that leaves the member list.
type classUnit struct {
	decl     *ast.TypeDecl
	setup    *ast.Method
	teardown *ast.Method
	oneTime  *ast.Method
	removed  map[*ast.Method]struct{}
}

func (u *classUnit) slot(role marker.Role) **ast.Method {
	switch role {
	case marker.RolePerTestSetup:
		return &u.setup
	case marker.RolePerTestTeardown:
		return &u.teardown
	default:
		return &u.oneTime
	}
}

func (u *classUnit) empty() bool {
	return u.setup == nil && u.teardown == nil && u.oneTime == nil
}

func (r *fileRun) typeDecl(td *ast.TypeDecl, into ast.Container) {
	r.attrs(&td.Attrs, td)
	if !td.HasBody() {
		return
	}
	var unit *classUnit
	if td.Kind == ast.TypeClass || td.Kind == ast.TypeRecord {
		unit = r.classify(td)
	}
	outer := r.guards
	r.guards = unit != nil
	var eff effect
	for _, m := range td.Members {
		eff = eff.or(r.member(m, into))
	}
	r.guards = outer
	if unit != nil {
		r.restructure(unit, eff, into)
	}
}

// attrs applies the marker table to the sections of m.
func (r *fileRun) attrs(lists *[]*ast.AttrList, m ast.Member) {
	out, left, changed := marker.Rewrite(*lists)
	if !changed {
		return
	}
	*lists = out
	if len(out) == 0 && len(left) > 0 {
		// отступ удалённой секции заменяет собственный отступ объявления
		left = append(left, token.CommentsOf(takeLeading(m))...)
	}
	ast.AttachLeading(m, left)
	r.sum.Markers++
}

// classify records the lifecycle role holders among the direct methods of
// td. It runs before any member is rewritten: OneTimeSetUp disappears from
// the attributes once the marker table is applied.
func (r *fileRun) classify(td *ast.TypeDecl) *classUnit {
	u := &classUnit{decl: td, removed: make(map[*ast.Method]struct{})}
	for _, m := range td.Members {
		meth, ok := m.(*ast.Method)
		if !ok {
			continue
		}
		role := marker.MethodRole(meth.Attrs)
		if !role.Lifecycle() {
			continue
		}
		span := meth.First().Span
		if meth.Body == nil && meth.Arrow == nil {
			r.info(diag.RewRoleWithoutBody, span,
				fmt.Sprintf("%s method %s has no body and keeps its place", role, meth.Name()))
			continue
		}
		if isAsync(meth) {
			r.info(diag.RewInfo, span,
				fmt.Sprintf("async %s method %s is inlined without being awaited", role, meth.Name()))
		}
		u.removed[meth] = struct{}{}
		slot := u.slot(role)
		if *slot != nil {
			kept := meth
			if r.e.opts.Duplicates == FirstWins {
				kept = *slot
			}
			r.info(diag.RewDuplicateRole, span,
				fmt.Sprintf("class %s has several %s methods; %s wins (%s)", td.Name.Text, role, kept.Name(), r.e.opts.Duplicates))
			if r.e.opts.Duplicates == FirstWins {
				continue
			}
		}
		*slot = meth
	}
	return u
}

func isAsync(m *ast.Method) bool {
	for _, e := range m.Head {
		if t, ok := e.(ast.Tok); ok && t.IsWord("async") {
			return true
		}
	}
	return false
}

// restructure replaces the lifecycle methods of a visited class with the
// synthesized members: [ctor, sink field, other members..., Dispose].
func (r *fileRun) restructure(u *classUnit, eff effect, into ast.Container) {
	if u.empty() && !eff.sink {
		return
	}
	td := u.decl
	name := td.Name.Text
	r.sum.Classes++

	members := make([]ast.Member, 0, len(td.Members)+3)
	var carry []token.Trivia
	for _, m := range td.Members {
		if meth, ok := m.(*ast.Method); ok {
			if _, gone := u.removed[meth]; gone {
				// #region и подобные строки не должны пропасть вместе с методом
				carry = append(carry, directives(takeLeading(meth))...)
				continue
			}
		}
		if len(carry) > 0 {
			prependLeading(m, carry)
			carry = nil
		}
		members = append(members, m)
	}
	if len(carry) > 0 {
		td.Close.Leading = append(carry, td.Close.Leading...)
	}

	var head []ast.Member
	if u.setup != nil || eff.sink {
		head = append(head, r.constructor(name, u.setup, eff.sink))
		r.sum.Constructors++
	}
	if eff.sink {
		head = append(head, r.sinkField())
		r.sink = true
	}
	members = append(head, members...)

	if u.teardown != nil {
		members = append(members, dispose(u.teardown))
		if !hasBase(td, "IDisposable", "System.IDisposable") {
			td.AddBase(ast.Tokens{ast.W("System"), ast.P(token.Dot, "."), ast.W("IDisposable")})
		}
		r.sum.Disposes++
	}
	if u.oneTime != nil {
		r.bindFixture(td, u.oneTime, into)
	}
	td.Members = members
}

// bindFixture attaches IClassFixture<Name> to td and schedules the
// companion class holding the one-time setup statements.
func (r *fileRun) bindFixture(td *ast.TypeDecl, oneTime *ast.Method, into ast.Container) {
	name := td.Name.Text
	fx, reused := r.e.binder.Resolve(name)
	base := ast.Tokens{ast.W("IClassFixture"), ast.P(token.Lt, "<"), ast.W(fx), ast.P(token.Gt, ">")}
	if !hasBase(td, base.Text()) {
		td.AddBase(base)
	}
	if reused {
		// компаньон уже создан классом, первым занявшим имя
		r.info(diag.RewFixtureNameReused, td.Name.Span,
			fmt.Sprintf("class %s binds to %s claimed earlier in the %s scope; its one-time setup is not emitted", name, fx, r.e.binder.Scope()))
		return
	}
	if !r.synth.Add(fx, into, oneTime.Statements()) {
		r.info(diag.RewFixtureMerged, td.Name.Span,
			fmt.Sprintf("%s is already emitted in this file; the one-time setup of %s is dropped", fx, name))
	}
}

func (r *fileRun) constructor(name string, setup *ast.Method, sink bool) *ast.Method {
	o := r.e.opts
	params := ast.Paren()
	var body []ast.Stmt
	if sink {
		params = ast.Paren(ast.Tokens{ast.W(o.SinkType), ast.W(o.SinkParam)})
		body = append(body, ast.NewExprStmt(ast.W(o.SinkField), ast.P(token.Assign, "="), ast.W(o.SinkParam)))
	}
	if setup != nil {
		body = append(body, setup.Statements()...)
	}
	return &ast.Method{
		Head:   ast.Tokens{ast.W("public"), ast.W(name)},
		Params: params,
		Body:   ast.NewBlock(body...),
	}
}

func (r *fileRun) sinkField() *ast.Field {
	o := r.e.opts
	return &ast.Field{
		Tokens: ast.Tokens{ast.W("private"), ast.W("readonly"), ast.W(o.SinkType), ast.W(o.SinkField)},
		Semi:   token.New(token.Semicolon, ";"),
	}
}

func dispose(teardown *ast.Method) *ast.Method {
	return &ast.Method{
		Head:   ast.Tokens{ast.W("public"), ast.W("void"), ast.W("Dispose")},
		Params: ast.Paren(),
		Body:   ast.NewBlock(teardown.Statements()...),
	}
}

// hasBase reports whether the base list already names one of the types.
func hasBase(td *ast.TypeDecl, names ...string) bool {
	for _, b := range td.Bases {
		text := b.Text()
		for _, n := range names {
			if text == n {
				return true
			}
		}
	}
	return false
}
