package parser

import (
	"xunitify/internal/ast"
	"xunitify/internal/diag"
	"xunitify/internal/lexer"
	"xunitify/internal/source"
	"xunitify/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File *ast.File
	Bag  *diag.Bag
}

// Err returns a *ParseError when parsing reported any error.
func (r Result) Err() error {
	if r.Bag == nil || !r.Bag.HasErrors() {
		return nil
	}
	return &ParseError{Path: r.File.Source.Path, Bag: r.Bag}
}

// Parser: состояние парсера на один файл
type Parser struct {
	toks     []token.Token
	pos      int
	opts     Options
	bag      *diag.Bag
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile: входная точка для разбора одного файла.
// Диагностики всегда попадают в Bag результата и дублируются в opts.Reporter, если он задан.
func ParseFile(file *source.File, opts Options) Result {
	bag := diag.NewBag(0)
	p := Parser{opts: opts, bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: lexReporter{p: &p}})
	p.toks = lx.Tokenize()
	p.lastSpan = lx.EmptySpan()

	f := &ast.File{Source: file}
	f.Items = p.parseDecls(false)
	f.EOF = p.peek()
	return Result{File: f, Bag: bag}
}

// Parse parses a file and folds diagnostics into a *ParseError.
func Parse(file *source.File) (*ast.File, error) {
	res := ParseFile(file, Options{})
	if err := res.Err(); err != nil {
		return nil, err
	}
	return res.File, nil
}

// lexReporter направляет диагностики лексера через общий счётчик парсера
type lexReporter struct{ p *Parser }

func (r lexReporter) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string, _ []diag.Note) {
	r.p.report(code, sev, sp, msg)
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekAt смотрит на n токенов вперёд; за концом всегда EOF.
func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atWord(text string) bool {
	return p.peek().IsWord(text)
}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: для EOF указываем на позицию сразу после последнего токена
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем синтезированный.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.New(k, closerText(k)), false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		p.opts.CurrentErrors++
	}
	p.bag.Add(&diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: sp})
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
	return true
}

// skipStray съедает токен, который не может начать ничего осмысленного.
func (p *Parser) skipStray(code diag.Code, msg string) {
	p.err(code, msg+" \""+p.peek().Text+"\"")
	if p.peek().Kind.IsOpen() {
		p.parseGroup()
		return
	}
	p.advance()
}

func closerText(k token.Kind) string {
	switch k {
	case token.RParen:
		return ")"
	case token.RBrace:
		return "}"
	case token.RBracket:
		return "]"
	case token.Semicolon:
		return ";"
	case token.Colon:
		return ":"
	case token.Gt:
		return ">"
	default:
		return ""
	}
}
