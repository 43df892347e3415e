// Package pipeline converts files one at a time: read, parse, rewrite,
// print and write back. A file that fails is reported and left untouched;
// the remaining files are still processed.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"xunitify/internal/diag"
	"xunitify/internal/logging"
	"xunitify/internal/observ"
	"xunitify/internal/parser"
	"xunitify/internal/printer"
	"xunitify/internal/rewrite"
	"xunitify/internal/source"
)

// Options configures a Pipeline.
type Options struct {
	// DryRun computes the output without writing it.
	DryRun bool
	// Verify re-parses the printed output before it is written.
	Verify   bool
	Printer  printer.Options
	Progress ProgressSink
	Logger   *zap.Logger
	Timer    *observ.Timer
}

// Pipeline drives one Engine over a list of files.
type Pipeline struct {
	fs     FileSystem
	engine *rewrite.Engine
	opts   Options
	log    *zap.Logger
}

// New creates a Pipeline. A nil fs means the local disk.
func New(fsys FileSystem, engine *rewrite.Engine, opts Options) *Pipeline {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	return &Pipeline{fs: fsys, engine: engine, opts: opts, log: logging.OrNop(opts.Logger)}
}

// Result is the outcome of one file.
type Result struct {
	Path    string
	Summary rewrite.Summary
	// Diagnostics holds the informational notes of the rewrite, or the
	// parse errors when Err is a *parser.ParseError.
	Diagnostics []*diag.Diagnostic
	// Sources resolves the spans of Diagnostics.
	Sources *source.FileSet
	// Output is the converted text, also in dry-run mode.
	Output  []byte
	Changed bool
	Written bool
	Err     error
}

// ParseError returns the parse failure of the file, if that is why it failed.
func (r Result) ParseError() (*parser.ParseError, bool) {
	var pe *parser.ParseError
	ok := errors.As(r.Err, &pe)
	return pe, ok
}

// Report collects the results of a run in input order.
type Report struct {
	Results []Result
}

// Failed returns the results that carry an error.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Converted counts files whose text changed.
func (r Report) Converted() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil && res.Changed {
			n++
		}
	}
	return n
}

// Total sums the rewrite summaries of successful files.
func (r Report) Total() rewrite.Summary {
	var sum rewrite.Summary
	for _, res := range r.Results {
		if res.Err == nil {
			sum.Add(res.Summary)
		}
	}
	return sum
}

// Run converts paths sequentially. Per-file failures are recorded in the
// report; the returned error is only set when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, paths []string) (Report, error) {
	var report Report
	for _, path := range paths {
		p.emit(Event{File: path, Stage: StageRead, Status: StatusQueued})
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, p.RewriteFile(ctx, path))
	}
	p.log.Info("run finished",
		zap.Int("files", len(paths)),
		zap.Int("converted", report.Converted()),
		zap.Int("failed", len(report.Failed())))
	return report, nil
}

// RewriteFile converts a single file.
func (p *Pipeline) RewriteFile(ctx context.Context, path string) Result {
	res := Result{Path: path}
	start := time.Now()
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	p.log.Debug("converting", zap.String("file", path))

	p.emit(Event{File: path, Stage: StageRead, Status: StatusWorking})
	done := p.opts.Timer.Track(string(StageRead))
	data, err := p.fs.ReadFile(path)
	done("")
	if err != nil {
		return p.fail(res, StageRead, fmt.Errorf("read %s: %w", path, err), start)
	}

	p.emit(Event{File: path, Stage: StageParse, Status: StatusWorking})
	done = p.opts.Timer.Track(string(StageParse))
	fileSet := source.NewFileSet()
	file := fileSet.Get(fileSet.AddBytes(path, data))
	res.Sources = fileSet
	parsed := parser.ParseFile(file, parser.Options{})
	done("")
	if err := parsed.Err(); err != nil {
		res.Diagnostics = parsed.Bag.Items()
		p.log.Warn("parse failed", zap.String("file", path), zap.Error(err),
			zap.String("diagnostics", diag.Format(res.Diagnostics, fileSet, false)))
		return p.fail(res, StageParse, err, start)
	}

	p.emit(Event{File: path, Stage: StageRewrite, Status: StatusWorking})
	done = p.opts.Timer.Track(string(StageRewrite))
	binder := p.engine.Binder()
	mark := binder.Checkpoint()
	notes := diag.NewBag(0)
	res.Summary = p.engine.Rewrite(parsed.File, diag.BagReporter{Bag: notes})
	res.Diagnostics = notes.Items()
	if p.opts.Verify {
		if err := printer.CheckRoundTrip(parsed.File, p.opts.Printer); err != nil {
			done("")
			binder.Rollback(mark)
			return p.fail(res, StageRewrite, fmt.Errorf("%s: %w", path, err), start)
		}
	}
	res.Output = file.Restore(printer.Print(parsed.File, p.opts.Printer))
	res.Changed = !bytes.Equal(res.Output, data)
	done("")
	for _, d := range res.Diagnostics {
		p.log.Info("rewrite note", zap.String("file", path), zap.String("code", d.Code.ID()), zap.String("message", d.Message))
	}

	if p.opts.DryRun || !res.Changed {
		p.emit(Event{File: path, Stage: StageRewrite, Status: StatusSkipped, Elapsed: time.Since(start)})
		return res
	}

	p.emit(Event{File: path, Stage: StageWrite, Status: StatusWorking})
	done = p.opts.Timer.Track(string(StageWrite))
	err = p.fs.WriteFile(path, res.Output)
	done("")
	if err != nil {
		binder.Rollback(mark)
		return p.fail(res, StageWrite, fmt.Errorf("write %s: %w", path, err), start)
	}
	res.Written = true
	p.log.Debug("converted", zap.String("file", path),
		zap.Int("markers", res.Summary.Markers),
		zap.Int("assertions", res.Summary.Assertions),
		zap.Int("fixtures", res.Summary.Fixtures))
	p.emit(Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(start)})
	return res
}

func (p *Pipeline) fail(res Result, stage Stage, err error, start time.Time) Result {
	res.Err = err
	p.emit(Event{File: res.Path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
	return res
}

func (p *Pipeline) emit(evt Event) {
	if p.opts.Progress == nil {
		return
	}
	p.opts.Progress.OnEvent(evt)
}
