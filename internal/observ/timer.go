// Package observ records how long the stages of a conversion run take.
package observ

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Phase is one timed section of a run. Repeated phases with the same name
// (one per file) are folded together in reports.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of run phases.
type Timer struct {
	now    func() time.Time
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{now: time.Now, phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = t.now().Sub(p.Start)
	p.Note = note
}

// Track starts a phase and returns the function that ends it.
func (t *Timer) Track(name string) func(note string) {
	idx := t.Begin(name)
	return func(note string) { t.End(idx, note) }
}

// PhaseReport представляет сжатую информацию о фазе для вывода.
type PhaseReport struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report folds phases by name in order of first appearance.
func (t *Timer) Report() Report {
	if t == nil || len(t.phases) == 0 {
		return Report{}
	}
	index := make(map[string]int, len(t.phases))
	var report Report
	var total time.Duration
	durs := make([]time.Duration, 0, len(t.phases))
	for _, phase := range t.phases {
		total += phase.Dur
		i, ok := index[phase.Name]
		if !ok {
			i = len(report.Phases)
			index[phase.Name] = i
			report.Phases = append(report.Phases, PhaseReport{Name: phase.Name})
			durs = append(durs, 0)
		}
		report.Phases[i].Count++
		durs[i] += phase.Dur
		if phase.Note != "" {
			report.Phases[i].Note = phase.Note
		}
	}
	for i := range report.Phases {
		report.Phases[i].DurationMS = durationToMillis(durs[i])
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary returns a human-readable table, slowest phases first.
func (t *Timer) Summary() string {
	report := t.Report()
	phases := append([]PhaseReport(nil), report.Phases...)
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].DurationMS > phases[j].DurationMS })
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range phases {
		fmt.Fprintf(&b, "  %-12s %4dx %9.2f ms", p.Name, p.Count, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s       %9.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
