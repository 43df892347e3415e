package diag

import (
	"fmt"
	"strings"

	"xunitify/internal/source"
)

// Format renders diagnostics one per line as
// "<severity> <ID> <path>:<line>:<col> <message>", in bag order.
// Notes follow their diagnostic with severity "note".
func Format(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(formatLine(d.Severity.Tag(), d.Code, d.Primary, d.Message, fs))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			b.WriteByte('\n')
			b.WriteString(formatLine("note", d.Code, n.Span, n.Msg, fs))
		}
	}
	return b.String()
}

func formatLine(sev string, code Code, sp source.Span, msg string, fs *source.FileSet) string {
	msg = strings.Join(strings.Fields(msg), " ")
	if fs == nil || int(sp.File) >= fs.Len() {
		return fmt.Sprintf("%s %s %s", sev, code.ID(), msg)
	}
	start, _ := fs.Resolve(sp)
	path := fs.Get(sp.File).Path
	return fmt.Sprintf("%s %s %s:%d:%d %s", sev, code.ID(), path, start.Line, start.Col, msg)
}
