// Package diagfmt renders diagnostics for people (Pretty) and for tools (JSON).
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"xunitify/internal/diag"
	"xunitify/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	p.setupColors()
	for _, d := range bag.Items() {
		p.diagnostic(d)
		if p.err != nil {
			return p.err
		}
	}
	return nil
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
	err  error

	sevColor map[diag.Severity]*color.Color
	gutter   *color.Color
	caret    *color.Color
}

func (p *prettyPrinter) setupColors() {
	p.sevColor = map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan, color.Bold),
	}
	p.gutter = color.New(color.FgBlue)
	p.caret = color.New(color.FgRed, color.Bold)
	all := []*color.Color{p.gutter, p.caret}
	for _, c := range p.sevColor {
		all = append(all, c)
	}
	for _, c := range all {
		if p.opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

func (p *prettyPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *prettyPrinter) diagnostic(d *diag.Diagnostic) {
	sev := d.Severity.String()
	if c, ok := p.sevColor[d.Severity]; ok {
		sev = c.Sprint(sev)
	}
	p.printf("%s: %s %s: %s\n", p.location(d.Primary), sev, d.Code.ID(), d.Message)
	p.snippet(d.Primary)
	if !p.opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		p.printf("  note: %s: %s\n", p.location(n.Span), n.Msg)
	}
}

func (p *prettyPrinter) known(sp source.Span) bool {
	return p.fs != nil && int(sp.File) < p.fs.Len()
}

func (p *prettyPrinter) location(sp source.Span) string {
	if !p.known(sp) {
		return "<unknown>"
	}
	start, _ := p.fs.Resolve(sp)
	path := formatPath(p.fs.Get(sp.File).Path, p.opts.PathMode, p.opts.BaseDir)
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// snippet печатает строку с диагностикой, Context строк до неё и подчёркивание.
func (p *prettyPrinter) snippet(sp source.Span) {
	if !p.known(sp) {
		return
	}
	f := p.fs.Get(sp.File)
	start, end := p.fs.Resolve(sp)
	first := start.Line
	if ctx := uint32(max(p.opts.Context, 0)); ctx < first {
		first -= ctx
	} else {
		first = 1
	}
	width := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		p.printf("%s %s\n", p.gutter.Sprintf("%*d |", width, ln), expandTabs(f.GetLine(ln)))
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	prefix := runewidth.StringWidth(expandTabs(line[:col]))
	// многострочный span подчёркиваем до конца первой строки
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	n := 1
	if stop > col {
		n = max(runewidth.StringWidth(expandTabs(line[col:stop])), 1)
	}
	marks := "^" + strings.Repeat("~", n-1)
	p.printf("%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", prefix), p.caret.Sprint(marks))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
