package printer

// Writer accumulates formatted output and emits canonical whitespace.
// Indentation is written lazily, when the first byte of a line arrives.
type Writer struct {
	opt         Options
	buf         []byte
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new formatting writer.
func NewWriter(opt Options, sizeHint int) *Writer {
	return &Writer{
		opt:         opt.withDefaults(),
		buf:         make([]byte, 0, sizeHint),
		atLineStart: true,
	}
}

// Bytes returns the accumulated output ending in exactly one newline.
func (w *Writer) Bytes() []byte {
	end := len(w.buf)
	for end > 0 && (w.buf[end-1] == '\n' || w.buf[end-1] == ' ') {
		end--
	}
	if end == 0 {
		return []byte{}
	}
	return append(w.buf[:end:end], '\n')
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	if w.opt.UseTabs {
		for n := w.indentLevel; n > 0; n-- {
			w.buf = append(w.buf, '\t')
		}
	} else {
		for n := w.indentLevel * w.opt.IndentWidth; n > 0; n-- {
			w.buf = append(w.buf, ' ')
		}
	}
	w.atLineStart = false
}

// WriteString writes a string to the output, handling indentation.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Space writes a single space if the output doesn't already end with whitespace.
func (w *Writer) Space() {
	if len(w.buf) == 0 || w.atLineStart {
		return
	}
	last := w.buf[len(w.buf)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		return
	}
	w.buf = append(w.buf, ' ')
}

// Newline writes a newline if the output doesn't already end with one.
func (w *Writer) Newline() {
	if len(w.buf) > 0 && w.buf[len(w.buf)-1] != '\n' {
		w.buf = append(w.buf, '\n')
	}
	w.atLineStart = true
}

// BlankLine ends the current line and leaves one empty line after it.
// It never produces a blank line at the start of output or after an
// opening brace.
func (w *Writer) BlankLine() {
	w.Newline()
	n := len(w.buf)
	if n == 0 || n >= 2 && w.buf[n-2] == '\n' {
		return
	}
	if lastLineIs(w.buf, "{") {
		return
	}
	w.buf = append(w.buf, '\n')
}

// AppendToPrevLine writes s at the end of the last non-empty line when the
// writer sits at the start of a fresh line. Empty lines after it are kept.
func (w *Writer) AppendToPrevLine(s string) bool {
	if !w.atLineStart {
		return false
	}
	end := len(w.buf)
	for end > 0 && w.buf[end-1] == '\n' {
		end--
	}
	if end == 0 || end == len(w.buf) {
		return false
	}
	tail := string(w.buf[end:])
	w.buf = append(w.buf[:end], s...)
	w.buf = append(w.buf, tail...)
	return true
}

// AtLineStart reports whether nothing was written on the current line.
func (w *Writer) AtLineStart() bool { return w.atLineStart }

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

func lastLineIs(buf []byte, s string) bool {
	end := len(buf)
	for end > 0 && buf[end-1] == '\n' {
		end--
	}
	start := end
	for start > 0 && buf[start-1] != '\n' {
		start--
	}
	line := buf[start:end]
	for len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		line = line[1:]
	}
	return string(line) == s
}
