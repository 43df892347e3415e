package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"xunitify/internal/diag"
	"xunitify/internal/diagfmt"
	"xunitify/internal/pipeline"
	"xunitify/internal/rewrite"
)

var (
	okColor   = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	dimColor  = color.New(color.Faint)
)

// textSink prints one line per file when the progress UI is off.
type textSink struct {
	w    io.Writer
	base string
}

func (s textSink) OnEvent(ev pipeline.Event) {
	if ev.Status == pipeline.StatusWorking && ev.Stage == pipeline.StageRead {
		fmt.Fprintf(s.w, "Converting: %s\n", relPath(s.base, ev.File))
	}
}

// printReport writes per-file problems and the run summary.
func printReport(out io.Writer, report pipeline.Report, base string, dryRun bool) {
	for _, res := range report.Results {
		name := relPath(base, res.Path)
		switch {
		case res.Err != nil:
			fmt.Fprintf(out, "%s %s: %v\n", failColor.Sprint("failed"), name, res.Err)
			if _, ok := res.ParseError(); ok {
				printDiagnostics(out, res, base)
			}
		case len(res.Diagnostics) > 0:
			printDiagnostics(out, res, base)
		}
		if dryRun && res.Err == nil && res.Changed {
			fmt.Fprintf(out, "%s %s\n", dimColor.Sprint("would convert"), name)
		}
	}

	total := report.Total()
	verb := "Converted"
	if dryRun {
		verb = "Would convert"
	}
	fmt.Fprintf(out, "%s %d of %d file(s): %s\n",
		okColor.Sprint(verb), report.Converted(), len(report.Results), summaryLine(total))
	if n := len(report.Failed()); n > 0 {
		fmt.Fprintf(out, "%s %d file(s) left untouched\n", failColor.Sprint("Failed:"), n)
	}
}

func summaryLine(s rewrite.Summary) string {
	return fmt.Sprintf("%d marker(s), %d assertion(s), %d guard(s), %d constructor(s), %d dispose(s), %d fixture(s)",
		s.Markers, s.Assertions, s.Guards, s.Constructors, s.Disposes, s.Fixtures)
}

func printDiagnostics(out io.Writer, res pipeline.Result, base string) {
	bag := diag.NewBag(0)
	for _, d := range res.Diagnostics {
		bag.Add(d)
	}
	bag.Sort()
	_ = diagfmt.Pretty(out, bag, res.Sources, diagfmt.PrettyOpts{
		Color:     !color.NoColor,
		Context:   1,
		PathMode:  diagfmt.PathModeRelative,
		BaseDir:   filepath.ToSlash(base),
		ShowNotes: true,
	})
}
