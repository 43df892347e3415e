// Package rewrite migrates a parsed test file from the NUnit idiom to the
// xUnit idiom in a single post-order traversal.
//
// Markers and assertions are rewritten on the way down; a class is
// restructured only after all of its members were visited, because an
// assertion deep inside a test body decides whether the class needs an
// output sink and therefore what its constructor looks like. Companion
// fixture classes are appended after the whole file was traversed.
package rewrite

import (
	"xunitify/internal/assertion"
	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/fixture"
	"xunitify/internal/marker"
	"xunitify/internal/source"
	"xunitify/internal/token"
)

// Engine rewrites files. One Engine is shared by a whole run; the fixture
// binder it holds carries state across files according to its scope.
type Engine struct {
	opts    Options
	binder  *fixture.Binder
	asserts *assertion.Rewriter
}

// New creates an Engine. A nil binder gets the run scope.
func New(opts Options, binder *fixture.Binder) *Engine {
	opts = opts.withDefaults()
	if binder == nil {
		binder = fixture.NewBinder(fixture.ScopeRun)
	}
	return &Engine{
		opts:    opts,
		binder:  binder,
		asserts: assertion.New(opts.Facade, opts.SinkField),
	}
}

func (e *Engine) Options() Options { return e.opts }

func (e *Engine) Binder() *fixture.Binder { return e.binder }

// Summary counts what a rewrite changed in one file.
type Summary struct {
	Usings       int
	Markers      int
	Assertions   int
	Guards       int
	Classes      int
	Constructors int
	Disposes     int
	Fixtures     int
}

// Changed reports whether the rewrite touched the tree.
func (s Summary) Changed() bool {
	return s != Summary{}
}

// Add accumulates another summary.
func (s *Summary) Add(o Summary) {
	s.Usings += o.Usings
	s.Markers += o.Markers
	s.Assertions += o.Assertions
	s.Guards += o.Guards
	s.Classes += o.Classes
	s.Constructors += o.Constructors
	s.Disposes += o.Disposes
	s.Fixtures += o.Fixtures
}

// fileRun is the state of one file's rewrite.
type fileRun struct {
	e      *Engine
	rep    diag.Reporter
	synth  *fixture.Synthesizer
	sum    Summary
	sink   bool // some class of the file got an output sink
	guards bool // inside a class or record, the types that get a sink
}

// Rewrite transforms f in place. Non-fatal anomalies go to rep as
// informational diagnostics; rep may be nil.
func (e *Engine) Rewrite(f *ast.File, rep diag.Reporter) Summary {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	e.binder.BeginFile()
	r := &fileRun{e: e, rep: rep, synth: fixture.NewSynthesizer()}
	r.decls(f.Items, f)
	r.sum.Fixtures += r.synth.Emit()
	if r.sink && e.opts.AddAbstractionsUsing {
		if addUsing(f, SinkNamespace) {
			r.sum.Usings++
		}
	}
	return r.sum
}

func (r *fileRun) info(code diag.Code, span source.Span, msg string) {
	r.rep.Report(code, diag.SevInfo, span, msg, nil)
}

// decls walks namespace-level items. Companions of classes found here go
// to into, next to the outermost declaring type.
func (r *fileRun) decls(items []ast.Decl, into ast.Container) {
	for _, it := range items {
		switch d := it.(type) {
		case *ast.Using:
			if marker.RewriteUsing(d) {
				r.sum.Usings++
			}
		case *ast.Namespace:
			r.decls(d.Items, d)
		case *ast.TypeDecl:
			r.typeDecl(d, into)
		}
	}
}

// addUsing inserts "using name;" after the last top-level using directive
// unless the file already has it.
func addUsing(f *ast.File, name string) bool {
	last := -1
	for i, it := range f.Items {
		u, ok := it.(*ast.Using)
		if !ok {
			continue
		}
		if usingName(u) == name {
			return false
		}
		last = i
	}
	u := &ast.Using{Tokens: []token.Token{token.Word("using")}}
	for i, part := range splitDots(name) {
		if i > 0 {
			u.Tokens = append(u.Tokens, token.New(token.Dot, "."))
		}
		u.Tokens = append(u.Tokens, token.Word(part))
	}
	u.Tokens = append(u.Tokens, token.New(token.Semicolon, ";"))

	items := make([]ast.Decl, 0, len(f.Items)+1)
	items = append(items, f.Items[:last+1]...)
	items = append(items, u)
	items = append(items, f.Items[last+1:]...)
	if last < 0 && len(f.Items) > 0 {
		// комментарии в начале файла остаются перед первой директивой
		moveLeading(f.Items[0], u)
	}
	f.Items = items
	return true
}

func usingName(u *ast.Using) string {
	name := ""
	for _, t := range u.Target() {
		name += t.Text
	}
	return name
}

func splitDots(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// moveLeading moves the comments in front of d to the new using directive.
func moveLeading(d ast.Decl, u *ast.Using) {
	var tr *[]token.Trivia
	switch d := d.(type) {
	case *ast.Using:
		tr = &d.Tokens[0].Leading
	case *ast.Namespace:
		tr = &d.Keyword.Leading
	case *ast.TypeDecl:
		u.Tokens[0].Leading = takeLeading(d)
		return
	case *ast.GlobalAttrs:
		tr = &d.Lists[0].Open.Leading
	}
	if tr == nil {
		return
	}
	u.Tokens[0].Leading, *tr = *tr, nil
}
