package ui

import (
	"errors"
	"math"
	"strings"
	"testing"

	"xunitify/internal/pipeline"
)

func TestApplyEventTracksStatus(t *testing.T) {
	files := []string{"CalcTests.cs", "Broken.cs", "Plain.cs"}
	m := NewProgressModel("Converting", files, nil).(*progressModel)

	events := []pipeline.Event{
		{File: "CalcTests.cs", Stage: pipeline.StageRead, Status: pipeline.StatusWorking},
		{File: "CalcTests.cs", Stage: pipeline.StageWrite, Status: pipeline.StatusDone},
		{File: "Broken.cs", Stage: pipeline.StageParse, Status: pipeline.StatusError, Err: errors.New("bad")},
		{File: "Plain.cs", Stage: pipeline.StageParse, Status: pipeline.StatusWorking},
		{File: "Unknown.cs", Stage: pipeline.StageRead, Status: pipeline.StatusWorking},
	}
	for _, ev := range events {
		m.applyEvent(ev)
	}

	want := []string{"converted", "error", "parsing"}
	for i, item := range m.items {
		if item.status != want[i] {
			t.Errorf("%s: status %q, want %q", item.path, item.status, want[i])
		}
	}
	if got, want := m.percent(), 2.3/3; math.Abs(got-want) > 1e-9 {
		t.Errorf("percent = %v, want %v", got, want)
	}
	view := m.View()
	if !strings.Contains(view, "(2/3)") {
		t.Errorf("header missing counts:\n%s", view)
	}
}

func TestSkippedIsFinal(t *testing.T) {
	m := NewProgressModel("Converting", []string{"A.cs"}, nil).(*progressModel)
	m.applyEvent(pipeline.Event{File: "A.cs", Stage: pipeline.StageRewrite, Status: pipeline.StatusSkipped})
	if !m.items[0].final || m.items[0].status != "unchanged" {
		t.Fatalf("item = %+v", m.items[0])
	}
	if m.percent() != 1.0 {
		t.Errorf("percent = %v", m.percent())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.cs", 20, "short.cs"},
		{"Tests/VeryLongName.cs", 10, "Test..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestEmptyModelRendersNothing(t *testing.T) {
	m := NewProgressModel("Converting", nil, nil)
	if got := m.View(); got != "" {
		t.Errorf("View = %q", got)
	}
}
