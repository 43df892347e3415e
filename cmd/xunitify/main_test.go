package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const nunitSrc = `using NUnit.Framework;

namespace Demo
{
    [TestFixture]
    public class CalcTests
    {
        [Test]
        public void Adds()
        {
            Assert.AreEqual(2, 1 + 1);
        }
    }
}
`

const xunitSrc = `using Xunit;

namespace Demo
{
    public class CalcTests
    {
        [Fact]
        public void Adds()
        {
            Assert.Equal(2, 1 + 1);
        }
    }
}
`

const brokenSrc = `using NUnit.Framework;

public class Broken
{
    [Test]
    public void M()
    {
        Assert.IsTrue(ok;
    }
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// newProject lays out <tmp>/Calc with one NUnit file and one plain file.
func newProject(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "Calc")
	writeFile(t, filepath.Join(dir, "Calc.csproj"), `<Project Sdk="Microsoft.NET.Sdk"></Project>`)
	writeFile(t, filepath.Join(dir, "xunitify.toml"), "[output]\nui = \"off\"\n")
	writeFile(t, filepath.Join(dir, "Tests", "CalcTests.cs"), nunitSrc)
	writeFile(t, filepath.Join(dir, "Plain.cs"), "public class Plain {}\n")
	return dir
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root, a := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--color=off"}, args...))
	err = root.Execute()
	a.close(root)
	return out.String(), errOut.String(), err
}

func TestConvertAndRestore(t *testing.T) {
	dir := newProject(t)
	testFile := filepath.Join(dir, "Tests", "CalcTests.cs")

	out, _, err := execute(t, "convert", dir)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, out)
	}
	if diff := cmp.Diff(xunitSrc, readFile(t, testFile)); diff != "" {
		t.Errorf("converted file mismatch (-want +got):\n%s", diff)
	}
	for _, want := range []string{
		"Converting: " + filepath.Join("Tests", "CalcTests.cs"),
		"Converted 1 of 1 file(s)",
		"Backed up Calc to",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Plain.cs") {
		t.Errorf("plain file was converted:\n%s", out)
	}
	saved := filepath.Join(filepath.Dir(dir), "Old", "Calc", "Tests", "CalcTests.cs")
	if got := readFile(t, saved); got != nunitSrc {
		t.Errorf("backup holds %q", got)
	}

	out, _, err = execute(t, "restore", dir)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if !strings.Contains(out, "Restored 2 project file(s) and 0 external file(s)") {
		t.Errorf("restore output:\n%s", out)
	}
	if got := readFile(t, testFile); got != nunitSrc {
		t.Errorf("restored file = %q", got)
	}
}

func TestConvertTwiceStartsFromBackup(t *testing.T) {
	dir := newProject(t)
	if _, _, err := execute(t, "convert", dir); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "convert", dir)
	if err != nil {
		t.Fatalf("second convert: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Restored") {
		t.Errorf("second run did not restore first:\n%s", out)
	}
	if got := readFile(t, filepath.Join(dir, "Tests", "CalcTests.cs")); got != xunitSrc {
		t.Errorf("file = %q", got)
	}
}

func TestConvertDryRun(t *testing.T) {
	dir := newProject(t)
	out, _, err := execute(t, "convert", "--dry-run", dir)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "Tests", "CalcTests.cs")); got != nunitSrc {
		t.Errorf("dry run changed the file")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "Old")); !os.IsNotExist(err) {
		t.Errorf("dry run created a backup: %v", err)
	}
	if !strings.Contains(out, "would convert "+filepath.Join("Tests", "CalcTests.cs")) {
		t.Errorf("output:\n%s", out)
	}
}

func TestConvertReportsBrokenFile(t *testing.T) {
	dir := newProject(t)
	broken := filepath.Join(dir, "Broken.cs")
	writeFile(t, broken, brokenSrc)

	out, _, err := execute(t, "convert", "--no-backup", dir)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 file(s) failed") {
		t.Fatalf("err = %v", err)
	}
	if got := readFile(t, broken); got != brokenSrc {
		t.Errorf("broken file was modified")
	}
	if got := readFile(t, filepath.Join(dir, "Tests", "CalcTests.cs")); got != xunitSrc {
		t.Errorf("good file not converted")
	}
	if !strings.Contains(out, "failed Broken.cs") || !strings.Contains(out, "SYN") {
		t.Errorf("output:\n%s", out)
	}
}

func TestConvertRejectsBadOverride(t *testing.T) {
	dir := newProject(t)
	_, _, err := execute(t, "convert", "--fixture-scope=module", dir)
	if err == nil || !strings.Contains(err.Error(), "fixture_scope") {
		t.Fatalf("err = %v", err)
	}
}

func TestRestoreWithoutBackup(t *testing.T) {
	dir := newProject(t)
	_, _, err := execute(t, "restore", dir)
	if err == nil || !strings.Contains(err.Error(), "no backup found") {
		t.Fatalf("err = %v", err)
	}
}

func TestDetectJSON(t *testing.T) {
	dir := newProject(t)
	out, _, err := execute(t, "detect", "--format=json", filepath.Join(dir, "Calc.csproj"))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	var entries []detectEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %+v", entries)
	}
	if e := entries[0]; e.File != filepath.Join("Tests", "CalcTests.cs") || !e.ByText || e.OneTimeSetUp {
		t.Errorf("entry = %+v", e)
	}
}

func TestCheckPrintsConvertedText(t *testing.T) {
	dir := newProject(t)
	path := filepath.Join(dir, "Tests", "CalcTests.cs")
	out, _, err := execute(t, "check", "--print", path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if diff := cmp.Diff(xunitSrc, out); diff != "" {
		t.Errorf("printed text (-want +got):\n%s", diff)
	}
	if got := readFile(t, path); got != nunitSrc {
		t.Errorf("check modified the file")
	}
}

func TestCheckJSONReportsParseErrors(t *testing.T) {
	dir := newProject(t)
	broken := filepath.Join(dir, "Broken.cs")
	writeFile(t, broken, brokenSrc)

	out, _, err := execute(t, "check", "--format=json", broken)
	if err == nil {
		t.Fatal("expected error")
	}
	var files []checkFileJSON
	if err := json.Unmarshal([]byte(out), &files); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if len(files) != 1 || files[0].Error == "" || files[0].Output.Count == 0 || files[0].Output.Errors == 0 {
		t.Fatalf("files = %+v", files)
	}
	if code := files[0].Output.Diagnostics[0].Code; !strings.HasPrefix(code, "SYN") {
		t.Errorf("code = %s", code)
	}
}

func TestTimingsGoToStderr(t *testing.T) {
	dir := newProject(t)
	_, errOut, err := execute(t, "--timings", "detect", dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"timings:", "detect", "total"} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format=json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	var p versionPayload
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if p.Tool != "xunitify" || p.Version == "" || p.GitCommit != "unknown" || p.BuildDate != "unknown" {
		t.Errorf("payload = %+v", p)
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Errorf("explicit modes ignored")
	}
}

func TestProfileFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpu.pprof")
	if _, _, err := execute(t, "--cpu-profile", path, "version"); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("profile not written: %v", err)
	}
}
