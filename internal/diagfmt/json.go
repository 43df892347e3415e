package diagfmt

import (
	"encoding/json"
	"io"

	"xunitify/internal/diag"
	"xunitify/internal/source"
)

// LocationJSON is a span as byte offsets and, with IncludePositions,
// 1-based line and column.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the per-file diagnostics object of `check --format json`.
// Errors counts the blocking diagnostics of the whole bag, including the
// ones cut by Max; Omitted is how many were cut.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Omitted     int              `json:"omitted,omitempty"`
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	if fs == nil || int(span.File) >= fs.Len() {
		return loc
	}
	loc.File = formatPath(fs.Get(span.File).Path, opts.PathMode, opts.BaseDir)
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func makeDiagnostic(d *diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	dj := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: makeLocation(d.Primary, fs, opts),
	}
	if opts.IncludeNotes {
		for _, n := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{Message: n.Msg, Location: makeLocation(n.Span, fs, opts)})
		}
	}
	return dj
}

// BuildDiagnosticsOutput converts bag without encoding it, so callers can
// embed the result in a larger document.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	var out DiagnosticsOutput
	items := bag.Items()
	out.Diagnostics = make([]DiagnosticJSON, 0, len(items))
	for _, d := range items {
		if d.Severity.Blocking() {
			out.Errors++
		}
		if opts.Max > 0 && len(out.Diagnostics) == opts.Max {
			out.Omitted++
			continue
		}
		out.Diagnostics = append(out.Diagnostics, makeDiagnostic(d, fs, opts))
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the indented DiagnosticsOutput of bag.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
