// Package marker classifies test-framework attributes: which lifecycle role
// a method marker announces and what an attribute becomes after migration.
package marker

import (
	"xunitify/internal/ast"
	"xunitify/internal/token"
)

// Role is the structural meaning of a marker.
type Role uint8

const (
	RoleNone Role = iota
	RoleTestCase
	RoleParameterizedCase
	RoleFixtureMarker
	RolePerTestSetup
	RolePerTestTeardown
	RoleOneTimeSetup
)

var roleNames = [...]string{
	RoleNone:              "none",
	RoleTestCase:          "test-case",
	RoleParameterizedCase: "parameterized-case",
	RoleFixtureMarker:     "fixture-marker",
	RolePerTestSetup:      "per-test-setup",
	RolePerTestTeardown:   "per-test-teardown",
	RoleOneTimeSetup:      "one-time-setup",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "role(?)"
}

// Lifecycle reports whether the role moves a method into a synthesized member.
func (r Role) Lifecycle() bool {
	return r == RolePerTestSetup || r == RolePerTestTeardown || r == RoleOneTimeSetup
}

// Action is what happens to a marker during migration.
type Action uint8

const (
	Unchanged Action = iota
	Rename
	Drop
)

// Outcome pairs an action with the replacement name for Rename.
type Outcome struct {
	Action Action
	Target string
}

type entry struct {
	role    Role
	outcome Outcome
}

// table is fixed: unknown markers pass through untouched.
var table = map[string]entry{
	"Test":         {RoleTestCase, Outcome{Rename, "Fact"}},
	"TestCase":     {RoleParameterizedCase, Outcome{Rename, "InlineData"}},
	"TestFixture":  {RoleFixtureMarker, Outcome{Action: Drop}},
	"SetUpFixture": {RoleFixtureMarker, Outcome{Action: Drop}},
	"OneTimeSetUp": {RoleOneTimeSetup, Outcome{Action: Drop}},
	"SetUp":        {RolePerTestSetup, Outcome{}},
	"TearDown":     {RolePerTestTeardown, Outcome{}},
}

// Classify maps a marker name (without namespace or Attribute suffix) to its outcome.
func Classify(name string) Outcome {
	return table[name].outcome
}

// RoleOf returns the role a marker name announces.
func RoleOf(name string) Role {
	return table[name].role
}

// MethodRole returns the lifecycle role of the last lifecycle marker on a
// method, or RoleNone.
func MethodRole(lists []*ast.AttrList) Role {
	role := RoleNone
	for _, l := range lists {
		for _, a := range l.Attrs {
			if r := RoleOf(a.SimpleName()); r.Lifecycle() {
				role = r
			}
		}
	}
	return role
}

// Rewrite applies the table to attribute sections. Renamed attributes keep
// their arguments and comments; sections left empty are removed and their
// comments move to the next surviving section. Comments with no section
// left to carry them are returned as leftover for the member's first token.
func Rewrite(lists []*ast.AttrList) (out []*ast.AttrList, leftover []token.Trivia, changed bool) {
	var pending []token.Trivia
	for _, l := range lists {
		kept := make([]*ast.Attr, 0, len(l.Attrs))
		for _, a := range l.Attrs {
			o := Classify(a.SimpleName())
			switch o.Action {
			case Drop:
				changed = true
				continue
			case Rename:
				a.Name = renamed(a.Name, o.Target)
				changed = true
			}
			kept = append(kept, a)
		}
		l.Attrs = kept
		if len(kept) == 0 {
			pending = append(pending, l.Open.Leading...)
			continue
		}
		if len(pending) > 0 {
			l.Open.Leading = append(pending, token.CommentsOf(l.Open.Leading)...)
			pending = nil
		}
		out = append(out, l)
	}
	return out, pending, changed
}

// renamed replaces a possibly qualified attribute name with target,
// keeping the first token's trivia.
func renamed(name []token.Token, target string) []token.Token {
	t := token.Word(target)
	if len(name) > 0 {
		t.Leading = name[0].Leading
		t.Span = name[0].Span
	}
	return []token.Token{t}
}

// Namespaces maps imported namespaces of the source framework to their replacement.
var Namespaces = map[string]string{
	"NUnit.Framework": "Xunit",
}

// RewriteUsing rewrites a using directive that imports a mapped namespace.
// Aliased and static usings are left alone.
func RewriteUsing(u *ast.Using) bool {
	for _, t := range u.Tokens {
		if t.Kind == token.Assign || t.IsKeyword("static") {
			return false
		}
	}
	target := u.Target()
	name := ""
	for _, t := range target {
		name += t.Text
	}
	repl, ok := Namespaces[name]
	if !ok || len(target) == 0 {
		return false
	}
	end := len(u.Tokens)
	if u.Tokens[end-1].Kind == token.Semicolon {
		end--
	}
	start := end - len(target)
	nt := token.Word(repl)
	nt.Leading = u.Tokens[start].Leading
	nt.Span = u.Tokens[start].Span

	out := make([]token.Token, 0, start+1+len(u.Tokens)-end)
	out = append(out, u.Tokens[:start]...)
	out = append(out, nt)
	out = append(out, u.Tokens[end:]...)
	u.Tokens = out
	return true
}
