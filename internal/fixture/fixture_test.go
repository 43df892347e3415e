package fixture

import (
	"sync"
	"testing"

	"xunitify/internal/ast"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		in      string
		want    Scope
		wantErr bool
	}{
		{"", ScopeRun, false},
		{"run", ScopeRun, false},
		{"file", ScopeFile, false},
		{"class", ScopeClass, false},
		{"global", ScopeRun, true},
	}
	for _, tt := range tests {
		got, err := ParseScope(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseScope(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseScope(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && tt.in != "" && got.String() != tt.in {
			t.Errorf("String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestBinderScopes(t *testing.T) {
	type step struct {
		newFile bool
		class   string
		name    string
		reused  bool
	}
	tests := []struct {
		scope Scope
		steps []step
	}{
		{ScopeRun, []step{
			{true, "A", "AFixture", false},
			{false, "B", "AFixture", true},
			{true, "C", "AFixture", true},
			{false, "A", "AFixture", false},
		}},
		{ScopeFile, []step{
			{true, "A", "AFixture", false},
			{false, "B", "AFixture", true},
			{true, "C", "CFixture", false},
		}},
		{ScopeClass, []step{
			{true, "A", "AFixture", false},
			{false, "B", "BFixture", false},
			{true, "C", "CFixture", false},
		}},
	}
	for _, tt := range tests {
		b := NewBinder(tt.scope)
		for i, s := range tt.steps {
			if s.newFile {
				b.BeginFile()
			}
			name, reused := b.Resolve(s.class)
			if name != s.name || reused != s.reused {
				t.Errorf("%v step %d: Resolve(%s) = %s, %v; want %s, %v",
					tt.scope, i, s.class, name, reused, s.name, s.reused)
			}
		}
	}
}

func TestBinderRollback(t *testing.T) {
	b := NewBinder(ScopeRun)
	mark := b.Checkpoint()
	if name, _ := b.Resolve("Alpha"); name != "AlphaFixture" {
		t.Fatalf("Resolve(Alpha) = %s", name)
	}
	b.Rollback(mark)
	if name, reused := b.Resolve("Beta"); name != "BetaFixture" || reused {
		t.Errorf("after rollback Resolve(Beta) = %s, %v", name, reused)
	}

	kept := b.Checkpoint()
	b.Rollback(kept)
	if name, reused := b.Resolve("Gamma"); name != "BetaFixture" || !reused {
		t.Errorf("rollback to a later checkpoint dropped the slot: %s, %v", name, reused)
	}
}

func TestBinderConcurrentClaim(t *testing.T) {
	b := NewBinder(ScopeRun)
	var wg sync.WaitGroup
	names := make([]string, 16)
	for i := range names {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			names[i], _ = b.Resolve("C")
		}(i)
	}
	wg.Wait()
	for _, n := range names {
		if n != "CFixture" {
			t.Fatalf("Resolve = %s, want CFixture", n)
		}
	}
}

func TestSynthesizerEmitsOncePerName(t *testing.T) {
	f := &ast.File{}
	s := NewSynthesizer()
	first := []ast.Stmt{ast.NewExprStmt(ast.W("a"))}
	if !s.Add("AFixture", f, first) {
		t.Fatal("first Add rejected")
	}
	if s.Add("AFixture", f, []ast.Stmt{ast.NewExprStmt(ast.W("b"))}) {
		t.Fatal("duplicate Add accepted")
	}
	if !s.Add("BFixture", f, nil) {
		t.Fatal("second name rejected")
	}
	if n := s.Emit(); n != 2 {
		t.Fatalf("Emit = %d, want 2", n)
	}
	if len(f.Items) != 2 {
		t.Fatalf("file has %d items, want 2", len(f.Items))
	}
	td := f.Items[0].(*ast.TypeDecl)
	if td.Name.Text != "AFixture" {
		t.Errorf("first companion = %s", td.Name.Text)
	}
	ctor := td.Members[0].(*ast.Method)
	if ctor.Name() != "AFixture" || len(ctor.Body.Stmts) != 1 || ctor.Body.Stmts[0] != first[0] {
		t.Errorf("companion constructor = %+v", ctor)
	}
	if n := s.Emit(); n != 0 {
		t.Errorf("second Emit = %d, want 0", n)
	}
}
