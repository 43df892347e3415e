// Package assertion recognizes assertion-facade calls in token trees and
// rewrites them to the target framework's names. A trailing diagnostic
// message argument turns a statement into a guard that forwards the
// message to the class's output sink before rethrowing.
package assertion

import (
	"xunitify/internal/ast"
	"xunitify/internal/token"
)

// methods maps source assertion names to target names; the table is fixed.
var methods = map[string]string{
	"AreEqual":    "Equal",
	"AreNotEqual": "NotEqual",
	"IsTrue":      "True",
	"IsFalse":     "False",
	"IsNull":      "Null",
	"IsNotNull":   "NotNull",
}

// Map returns the target name of a source assertion method.
func Map(method string) (string, bool) {
	m, ok := methods[method]
	return m, ok
}

// Call is a recognized "Facade.Method(args)" at some position of a sequence.
type Call struct {
	Index  int // facade token
	Name   int // method name token
	End    int // index of the argument group
	Method string
	Mapped string
	Args   *ast.Group
}

// HasMessage reports whether the call carries a diagnostic message argument.
func (c Call) HasMessage() bool { return len(c.Args.Args) == 3 }

type Rewriter struct {
	Facade string
	Sink   string
}

func New(facade, sink string) *Rewriter {
	return &Rewriter{Facade: facade, Sink: sink}
}

// Match recognizes a facade call starting at ts[i]. The receiver must be
// the bare facade name: x.Assert or Ns.Assert do not match.
func (r *Rewriter) Match(ts ast.Tokens, i int) (Call, bool) {
	recv, ok := tokAt(ts, i)
	if !ok || recv.Kind != token.Ident || recv.Text != r.Facade {
		return Call{}, false
	}
	if prev, ok := tokAt(ts, i-1); ok {
		switch {
		case prev.Kind == token.Dot, prev.Is(token.Op, "?."), prev.Is(token.Op, "::"):
			return Call{}, false
		}
	}
	if dot, ok := tokAt(ts, i+1); !ok || dot.Kind != token.Dot {
		return Call{}, false
	}
	name, ok := tokAt(ts, i+2)
	if !ok || name.Kind != token.Ident {
		return Call{}, false
	}
	mapped, ok := Map(name.Text)
	if !ok {
		return Call{}, false
	}
	j := i + 3
	if lt, ok := tokAt(ts, j); ok && lt.Kind == token.Lt {
		j = skipTypeArgs(ts, j)
		if j < 0 {
			return Call{}, false
		}
	}
	if j >= len(ts) {
		return Call{}, false
	}
	g, ok := ts[j].(*ast.Group)
	if !ok || g.Open.Kind != token.LParen {
		return Call{}, false
	}
	return Call{Index: i, Name: i + 2, End: j, Method: name.Text, Mapped: mapped, Args: g}, true
}

// skipTypeArgs returns the index after the '>' matching the '<' at j, or -1.
func skipTypeArgs(ts ast.Tokens, j int) int {
	depth := 0
	for ; j < len(ts); j++ {
		t, ok := ts[j].(ast.Tok)
		if !ok {
			continue
		}
		switch t.Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
			if depth == 0 {
				return j + 1
			}
		case token.Semicolon, token.Assign, token.FatArrow:
			return -1
		}
	}
	return -1
}

func tokAt(ts ast.Tokens, i int) (ast.Tok, bool) {
	if i < 0 || i >= len(ts) {
		return ast.Tok{}, false
	}
	t, ok := ts[i].(ast.Tok)
	return t, ok
}

// Rename switches the method name of a matched call to its target name.
func (r *Rewriter) Rename(ts ast.Tokens, c Call) {
	name := ts[c.Name].(ast.Tok)
	name.Text = c.Mapped
	ts[c.Name] = name
}

// Trim drops the diagnostic message argument and returns it.
func (r *Rewriter) Trim(c Call) ast.Tokens {
	if !c.HasMessage() {
		return nil
	}
	msg := c.Args.Args[2]
	c.Args.Args = c.Args.Args[:2]
	return msg
}

// Guard builds the guard for a whole-expression call with a message:
// the call runs with two arguments inside try, the catch writes the
// message to the sink and rethrows. ts must be exactly the call.
func (r *Rewriter) Guard(ts ast.Tokens) (*ast.Guard, bool) {
	c, ok := r.Match(ts, 0)
	if !ok || c.End != len(ts)-1 || !c.HasMessage() {
		return nil, false
	}
	r.Rename(ts, c)
	msg := r.Trim(c)
	ast.TakeLeading(msg)
	return &ast.Guard{
		Leading: ast.TakeLeading(ts),
		Call:    ts,
		Sink:    r.Sink,
		Message: msg,
	}, true
}
