package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestReportFoldsPhasesByName(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(time.Millisecond)

	for _, name := range []string{"parse", "rewrite", "parse"} {
		done := timer.Track(name)
		done("")
	}
	idx := timer.Begin("write")
	timer.End(idx, "2 files")

	want := Report{
		TotalMS: 4,
		Phases: []PhaseReport{
			{Name: "parse", Count: 2, DurationMS: 2},
			{Name: "rewrite", Count: 1, DurationMS: 1},
			{Name: "write", Count: 1, DurationMS: 1, Note: "2 files"},
		},
	}
	if diff := cmp.Diff(want, timer.Report()); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
}

func TestSummaryOrdersSlowestFirst(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(time.Millisecond)
	timer.Track("read")("")
	timer.Track("parse")("")
	timer.Track("parse")("")

	lines := strings.Split(strings.TrimSpace(timer.Summary()), "\n")
	if len(lines) != 4 || !strings.Contains(lines[1], "parse") || !strings.Contains(lines[3], "total") {
		t.Errorf("summary:\n%s", timer.Summary())
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var timer *Timer
	timer.Track("x")("note")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Errorf("report = %+v", got)
	}
}
