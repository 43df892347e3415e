package marker

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"xunitify/internal/ast"
	"xunitify/internal/parser"
	"xunitify/internal/source"
	"xunitify/internal/token"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Outcome
		role Role
	}{
		{"Test", Outcome{Rename, "Fact"}, RoleTestCase},
		{"TestCase", Outcome{Rename, "InlineData"}, RoleParameterizedCase},
		{"TestFixture", Outcome{Action: Drop}, RoleFixtureMarker},
		{"SetUpFixture", Outcome{Action: Drop}, RoleFixtureMarker},
		{"OneTimeSetUp", Outcome{Action: Drop}, RoleOneTimeSetup},
		{"SetUp", Outcome{}, RolePerTestSetup},
		{"TearDown", Outcome{}, RolePerTestTeardown},
		{"Category", Outcome{}, RoleNone},
		{"Fact", Outcome{}, RoleNone},
	}
	for _, tt := range tests {
		if got := Classify(tt.name); got != tt.want {
			t.Errorf("Classify(%s) = %+v, want %+v", tt.name, got, tt.want)
		}
		if got := RoleOf(tt.name); got != tt.role {
			t.Errorf("RoleOf(%s) = %v, want %v", tt.name, got, tt.role)
		}
	}
}

func methodOf(t *testing.T, member string) *ast.Method {
	t.Helper()
	fs := source.NewFileSet()
	f, err := parser.Parse(fs.Get(fs.AddVirtual("m.cs", []byte("class C {\n"+member+"\n}\n"))))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return f.Items[0].(*ast.TypeDecl).Members[0].(*ast.Method)
}

func attrNames(lists []*ast.AttrList) [][]string {
	var out [][]string
	for _, l := range lists {
		var names []string
		for _, a := range l.Attrs {
			names = append(names, a.SimpleName())
		}
		out = append(out, names)
	}
	return out
}

func TestRewriteLists(t *testing.T) {
	tests := []struct {
		member  string
		want    [][]string
		changed bool
	}{
		{"[Test] void A() {}", [][]string{{"Fact"}}, true},
		{`[Test, Category("x")] void A() {}`, [][]string{{"Fact", "Category"}}, true},
		{"[TestCase(1)][TestCase(2)] void A(int x) {}", [][]string{{"InlineData"}, {"InlineData"}}, true},
		{"[NUnit.Framework.TestAttribute] void A() {}", [][]string{{"Fact"}}, true},
		{"[OneTimeSetUp] void A() {}", nil, true},
		{"[SetUp] void A() {}", [][]string{{"SetUp"}}, false},
		{"[Obsolete] void A() {}", [][]string{{"Obsolete"}}, false},
	}
	for _, tt := range tests {
		m := methodOf(t, tt.member)
		out, _, changed := Rewrite(m.Attrs)
		if changed != tt.changed {
			t.Errorf("%s: changed = %v", tt.member, changed)
		}
		if diff := cmp.Diff(tt.want, attrNames(out)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tt.member, diff)
		}
	}
}

func TestRewriteKeepsArgumentsAndComments(t *testing.T) {
	m := methodOf(t, "// cases\n[TestCase(1, 2)]\n// dropped fixture marker\n[TestFixture]\nvoid A(int a, int b) {}")
	out, leftover, _ := Rewrite(m.Attrs)
	if len(out) != 1 || out[0].Attrs[0].Args == nil || len(out[0].Attrs[0].Args.Args) != 2 {
		t.Fatalf("arguments lost: %+v", out)
	}
	if got := out[0].Open.Comments(); len(got) != 1 || got[0].Text != "// cases" {
		t.Errorf("comments on kept section = %+v", got)
	}
	if got := token.CommentsOf(leftover); len(got) != 1 || got[0].Text != "// dropped fixture marker" {
		t.Errorf("leftover = %+v", got)
	}
}

func TestMethodRoleLastMarkerWins(t *testing.T) {
	m := methodOf(t, "[SetUp][TearDown] void A() {}")
	if got := MethodRole(m.Attrs); got != RolePerTestTeardown {
		t.Errorf("MethodRole = %v", got)
	}
	m = methodOf(t, "[Test] void A() {}")
	if got := MethodRole(m.Attrs); got != RoleNone {
		t.Errorf("MethodRole = %v", got)
	}
}

func TestRewriteUsing(t *testing.T) {
	tests := []struct {
		src  string
		want string
		ok   bool
	}{
		{"using NUnit.Framework;", "usingXunit;", true},
		{"global using NUnit.Framework;", "globalusingXunit;", true},
		{"using NUnit.Framework.Legacy;", "", false},
		{"using static NUnit.Framework.Assert;", "", false},
		{"using NF = NUnit.Framework;", "", false},
		{"using System;", "", false},
	}
	for _, tt := range tests {
		fs := source.NewFileSet()
		f, err := parser.Parse(fs.Get(fs.AddVirtual("u.cs", []byte(tt.src+"\n"))))
		if err != nil {
			t.Fatalf("parse %q: %v", tt.src, err)
		}
		u := f.Items[0].(*ast.Using)
		if got := RewriteUsing(u); got != tt.ok {
			t.Errorf("%s: RewriteUsing = %v", tt.src, got)
			continue
		}
		if !tt.ok {
			continue
		}
		text := ""
		for _, tok := range u.Tokens {
			text += tok.Text
		}
		if text != tt.want {
			t.Errorf("%s: tokens = %s, want %s", tt.src, text, tt.want)
		}
	}
}
