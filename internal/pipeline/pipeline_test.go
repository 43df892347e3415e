package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"xunitify/internal/diag"
	"xunitify/internal/observ"
	"xunitify/internal/rewrite"
)

// memFS is an in-memory FileSystem that records writes.
type memFS struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes []string
	failOn string
}

func newMemFS(files map[string]string) *memFS {
	m := &memFS{files: make(map[string][]byte, len(files))}
	for path, text := range files {
		m.files[path] = []byte(text)
	}
	return m
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", path)
	}
	return append([]byte(nil), data...), nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if path == m.failOn {
		return errors.New("disk full")
	}
	m.files[path] = append([]byte(nil), data...)
	m.writes = append(m.writes, path)
	return nil
}

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

func newPipeline(fsys FileSystem, opts Options) *Pipeline {
	return New(fsys, rewrite.New(rewrite.DefaultOptions(), nil), opts)
}

func TestRunWritesConvertedFiles(t *testing.T) {
	fsys := newMemFS(map[string]string{"a/CalcTests.cs": nunitSrc})
	report, err := newPipeline(fsys, Options{Verify: true}).Run(context.Background(), []string{"a/CalcTests.cs"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff(xunitSrc, string(fsys.files["a/CalcTests.cs"])); diff != "" {
		t.Errorf("written text (-want +got):\n%s", diff)
	}
	res := report.Results[0]
	if !res.Changed || !res.Written || res.Err != nil {
		t.Errorf("result = %+v", res)
	}
	if report.Converted() != 1 || report.Total().Assertions != 1 {
		t.Errorf("converted = %d, total = %+v", report.Converted(), report.Total())
	}
}

func TestParseErrorSkipsFileOnly(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fsys := newMemFS(map[string]string{
		"Broken.cs": brokenSrc,
		"Calc.cs":   nunitSrc,
	})
	p := newPipeline(fsys, Options{Logger: zap.New(core)})
	report, err := p.Run(context.Background(), []string{"Broken.cs", "Calc.cs"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if diff := cmp.Diff([]string{"Calc.cs"}, fsys.writes); diff != "" {
		t.Errorf("writes (-want +got):\n%s", diff)
	}
	if string(fsys.files["Broken.cs"]) != brokenSrc {
		t.Error("broken file was modified")
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Path != "Broken.cs" {
		t.Fatalf("failed = %+v", failed)
	}
	pe, ok := failed[0].ParseError()
	if !ok || !pe.Bag.HasErrors() {
		t.Errorf("err = %v, want a parse error", failed[0].Err)
	}
	if len(failed[0].Diagnostics) == 0 {
		t.Error("parse diagnostics not reported")
	}
	if logs.FilterMessage("parse failed").Len() != 1 {
		t.Errorf("logs = %v", logs.All())
	}
}

func TestDryRunLeavesFilesAlone(t *testing.T) {
	fsys := newMemFS(map[string]string{"Calc.cs": nunitSrc})
	report, err := newPipeline(fsys, Options{DryRun: true}).Run(context.Background(), []string{"Calc.cs"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	res := report.Results[0]
	if len(fsys.writes) != 0 || res.Written {
		t.Errorf("dry run wrote %v", fsys.writes)
	}
	if !res.Changed || string(res.Output) != xunitSrc {
		t.Errorf("output = %q", res.Output)
	}
}

func TestConvertedFileIsNotRewritten(t *testing.T) {
	fsys := newMemFS(map[string]string{"Calc.cs": xunitSrc})
	res := newPipeline(fsys, Options{}).RewriteFile(context.Background(), "Calc.cs")
	if res.Err != nil || res.Changed || res.Written || res.Summary.Changed() {
		t.Errorf("result = %+v", res)
	}
}

func TestLineEndingsAndBOMAreRestored(t *testing.T) {
	crlf := func(s string) string { return strings.ReplaceAll(s, "\n", "\r\n") }
	bom := "\ufeff"
	fsys := newMemFS(map[string]string{"Calc.cs": bom + crlf(nunitSrc)})
	res := newPipeline(fsys, Options{}).RewriteFile(context.Background(), "Calc.cs")
	if res.Err != nil {
		t.Fatalf("RewriteFile: %v", res.Err)
	}
	if diff := cmp.Diff(bom+crlf(xunitSrc), string(fsys.files["Calc.cs"])); diff != "" {
		t.Errorf("written text (-want +got):\n%s", diff)
	}
}

func TestReadAndWriteFailures(t *testing.T) {
	fsys := newMemFS(map[string]string{"Calc.cs": nunitSrc})
	fsys.failOn = "Calc.cs"
	p := newPipeline(fsys, Options{})

	if res := p.RewriteFile(context.Background(), "Missing.cs"); res.Err == nil || !strings.HasPrefix(res.Err.Error(), "read Missing.cs") {
		t.Errorf("missing file: %v", res.Err)
	}
	res := p.RewriteFile(context.Background(), "Calc.cs")
	if res.Err == nil || res.Written || !strings.Contains(res.Err.Error(), "disk full") {
		t.Errorf("write failure: %+v", res)
	}
	if _, ok := res.ParseError(); ok {
		t.Error("write failure classified as parse error")
	}
}

const alphaSrc = `public class Alpha
{
    [OneTimeSetUp]
    public void Init()
    {
        alpha = 1;
    }
}
`

const betaSrc = `public class Beta
{
    [OneTimeSetUp]
    public void Init()
    {
        beta = 2;
    }
}
`

func TestUnwrittenFileReleasesFixtureName(t *testing.T) {
	fsys := newMemFS(map[string]string{"Alpha.cs": alphaSrc, "Beta.cs": betaSrc})
	fsys.failOn = "Alpha.cs"
	report, err := newPipeline(fsys, Options{Verify: true}).Run(context.Background(), []string{"Alpha.cs", "Beta.cs"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(report.Failed()) != 1 {
		t.Fatalf("failed = %+v", report.Failed())
	}
	beta := string(fsys.files["Beta.cs"])
	if !strings.Contains(beta, "public class Beta : IClassFixture<BetaFixture>") || !strings.Contains(beta, "public class BetaFixture") {
		t.Errorf("Beta bound to a companion that was never written:\n%s", beta)
	}
}

func TestProgressEvents(t *testing.T) {
	fsys := newMemFS(map[string]string{"Calc.cs": nunitSrc, "Broken.cs": brokenSrc})
	ch := make(chan Event, 32)
	p := newPipeline(fsys, Options{Progress: ChannelSink{Ch: ch}})
	if _, err := p.Run(context.Background(), []string{"Calc.cs", "Broken.cs"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(ch)

	type step struct {
		File   string
		Stage  Stage
		Status Status
	}
	var got []step
	for evt := range ch {
		got = append(got, step{evt.File, evt.Stage, evt.Status})
	}
	want := []step{
		{"Calc.cs", StageRead, StatusQueued},
		{"Broken.cs", StageRead, StatusQueued},
		{"Calc.cs", StageRead, StatusWorking},
		{"Calc.cs", StageParse, StatusWorking},
		{"Calc.cs", StageRewrite, StatusWorking},
		{"Calc.cs", StageWrite, StatusWorking},
		{"Calc.cs", StageWrite, StatusDone},
		{"Broken.cs", StageRead, StatusWorking},
		{"Broken.cs", StageParse, StatusWorking},
		{"Broken.cs", StageParse, StatusError},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestCancelledRunStops(t *testing.T) {
	fsys := newMemFS(map[string]string{"Calc.cs": nunitSrc})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := newPipeline(fsys, Options{}).Run(ctx, []string{"Calc.cs"})
	if !errors.Is(err, context.Canceled) || len(report.Results) != 0 || len(fsys.writes) != 0 {
		t.Errorf("err = %v, results = %d", err, len(report.Results))
	}
}

func TestTimerRecordsStages(t *testing.T) {
	timer := observ.NewTimer()
	fsys := newMemFS(map[string]string{"Calc.cs": nunitSrc})
	newPipeline(fsys, Options{Timer: timer}).RewriteFile(context.Background(), "Calc.cs")

	var names []string
	for _, ph := range timer.Report().Phases {
		names = append(names, ph.Name)
	}
	if diff := cmp.Diff([]string{"read", "parse", "rewrite", "write"}, names); diff != "" {
		t.Errorf("phases (-want +got):\n%s", diff)
	}
}

func TestRewriteNotesAreReturned(t *testing.T) {
	src := `public class Twice
{
    [SetUp]
    public void A()
    {
        a();
    }

    [SetUp]
    public void B()
    {
        b();
    }
}
`
	fsys := newMemFS(map[string]string{"Twice.cs": src})
	res := newPipeline(fsys, Options{}).RewriteFile(context.Background(), "Twice.cs")
	if res.Err != nil {
		t.Fatalf("RewriteFile: %v", res.Err)
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Code == diag.RewDuplicateRole && d.Severity == diag.SevInfo {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics = %+v", res.Diagnostics)
	}
}
