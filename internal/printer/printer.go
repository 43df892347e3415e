package printer

import (
	"bytes"
	"errors"
	"fmt"

	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/parser"
	"xunitify/internal/source"
	"xunitify/internal/token"
)

type Options struct {
	IndentWidth int
	UseTabs     bool
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = 4
	}
	return o
}

type printer struct {
	w *Writer

	// состояние для расстановки пробелов между токенами строки
	last       token.Token
	hasLast    bool
	lastPrefix bool
}

// Print renders the file as normalized source text.
func Print(f *ast.File, opt Options) []byte {
	hint := 0
	if f.Source != nil {
		hint = len(f.Source.Content) + len(f.Source.Content)/8
	}
	p := &printer{w: NewWriter(opt, hint)}
	p.printFile(f)
	return p.w.Bytes()
}

// CheckRoundTrip prints the file, re-parses the output and prints it again.
// It fails when the output does not parse or the second print differs.
func CheckRoundTrip(f *ast.File, opt Options) error {
	if f == nil {
		return errors.New("round-trip: nil file")
	}
	first := Print(f, opt)

	path := "<printed>"
	if f.Source != nil {
		path = f.Source.Path
	}
	fs := source.NewFileSet()
	res := parser.ParseFile(fs.Get(fs.AddVirtual(path, first)), parser.Options{})
	if res.Bag.HasErrors() {
		msg := ""
		for _, d := range res.Bag.Items() {
			if d.Severity >= diag.SevError {
				start, _ := fs.Resolve(d.Primary)
				msg = fmt.Sprintf("%d:%d: %s", start.Line, start.Col, d.Message)
				break
			}
		}
		return fmt.Errorf("round-trip: printed output does not parse: %s", msg)
	}
	second := Print(res.File, opt)
	if !bytes.Equal(first, second) {
		return fmt.Errorf("round-trip: output is not stable at line %d", firstDiffLine(first, second))
	}
	return nil
}

func firstDiffLine(a, b []byte) int {
	line := 1
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return line
		}
		if a[i] == '\n' {
			line++
		}
	}
	return line
}

// beginLine starts a fresh line; spacing state does not cross lines.
func (p *printer) beginLine() {
	p.w.Newline()
	p.hasLast = false
	p.lastPrefix = false
}

// tok prints one token with its comments and the space the previous token needs.
func (p *printer) tok(t token.Token) {
	if p.hasLast && !p.w.AtLineStart() && needSpace(p.last, t, p.lastPrefix) {
		p.w.Space()
	}
	p.leading(t)
	p.w.WriteString(t.Text)
	p.lastPrefix = t.Kind == token.Op && prefixCapable(t.Text) && !(p.hasLast && isOperand(p.last))
	p.last = t
	p.hasLast = true
}

// word prints a synthesized keyword or identifier.
func (p *printer) word(s string) {
	p.tok(token.Word(s))
}

func (p *printer) elems(ts ast.Tokens) {
	for _, e := range ts {
		switch e := e.(type) {
		case ast.Tok:
			p.tok(e.Token)
		case *ast.Group:
			p.group(e)
		case *ast.Block:
			p.beginLine()
			p.block(e)
		}
	}
}

// params prints a parameter list flush against the name before it,
// whatever the source put between them.
func (p *printer) params(g *ast.Group) {
	p.hasLast = false
	p.group(g)
}

// paramIndex finds the parameter list of a local function head: the first
// '(' group that follows a name or a type parameter list.
func paramIndex(head ast.Tokens) int {
	for i := 1; i < len(head); i++ {
		g, ok := head[i].(*ast.Group)
		if !ok || g.Open.Kind != token.LParen {
			continue
		}
		if prev, ok := head[i-1].(ast.Tok); ok && (prev.Kind == token.Ident || prev.Kind == token.Gt) {
			return i
		}
	}
	return -1
}

func (p *printer) group(g *ast.Group) {
	if g.Open.Kind == token.LBrace && g.Multiline() && len(g.Args) > 0 {
		p.multilineGroup(g)
		return
	}
	p.tok(g.Open)
	for i, a := range g.Args {
		if i > 0 {
			p.tok(token.New(token.Comma, ","))
		}
		p.elems(a)
	}
	p.tok(g.Close)
}

// multilineGroup prints a braced initializer one element per line.
func (p *printer) multilineGroup(g *ast.Group) {
	p.beginLine()
	p.tok(g.Open)
	p.w.IndentPush()
	args := g.Args
	trailingComma := len(args[len(args)-1]) == 0
	if trailingComma {
		args = args[:len(args)-1]
	}
	for i, a := range args {
		p.beginLine()
		p.elems(a)
		if i < len(args)-1 || trailingComma {
			p.tok(token.New(token.Comma, ","))
		}
	}
	p.w.IndentPop()
	p.beginLine()
	p.tok(g.Close)
}
