package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"xunitify/internal/fixture"
	"xunitify/internal/rewrite"
)

func writeConfig(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
[rewrite]
duplicate_roles = "first-wins"
fixture_scope = "class"
add_abstractions_using = true

[project]
jobs = 2
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Path = path
	want.Rewrite.DuplicateRoles = "first-wins"
	want.Rewrite.FixtureScope = "class"
	want.Rewrite.AddAbstractionsUsing = true
	want.Project.Jobs = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
	if !cfg.Project.RestoreBeforeRun {
		t.Error("restore_before_run lost its default")
	}

	opts, err := cfg.RewriteOptions()
	if err != nil {
		t.Fatalf("RewriteOptions: %v", err)
	}
	if opts.Duplicates != rewrite.FirstWins || opts.Facade != "Assert" || !opts.AddAbstractionsUsing {
		t.Errorf("options = %+v", opts)
	}
	if scope, _ := cfg.Scope(); scope != fixture.ScopeClass {
		t.Errorf("scope = %v", scope)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"unknown key", "[rewrite]\nfacade = \"X\"\n", "unknown keys: rewrite.facade"},
		{"unknown section", "[extra]\nx = 1\n", "unknown keys"},
		{"bad policy", "[rewrite]\nduplicate_roles = \"random\"\n", "duplicate_roles"},
		{"bad scope", "[rewrite]\nfixture_scope = \"global\"\n", "fixture_scope"},
		{"empty sink", "[rewrite]\nsink_field = \" \"\n", "sink_field must not be empty"},
		{"negative jobs", "[project]\njobs = -1\n", "jobs must be >= 0"},
		{"bad ui", "[output]\nui = \"fancy\"\n", "[output].ui"},
		{"bad indent", "[output]\nindent = 0\n", "indent"},
		{"syntax", "[rewrite\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.text)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "[output]\nindent = 2\n")
	nested := filepath.Join(root, "src", "Tests")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != path || cfg.Output.Indent != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestBackupRoot(t *testing.T) {
	cfg := Default()
	if got, want := cfg.BackupRoot(filepath.Join("p", "Tests")), filepath.Join("p", "Old"); got != want {
		t.Errorf("BackupRoot = %q, want %q", got, want)
	}
	abs := filepath.Join(t.TempDir(), "bk")
	cfg.Project.BackupDir = abs
	if got := cfg.BackupRoot("p"); got != abs {
		t.Errorf("BackupRoot = %q, want %q", got, abs)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate: %v", err)
	}
}
