package ast

import (
	"xunitify/internal/token"
)

// AttrList is one bracketed attribute section: [Target: A, B(x)].
type AttrList struct {
	Open   token.Token
	Target []token.Token // "assembly", ":" when present
	Attrs  []*Attr
	Close  token.Token
}

// Attr is a single attribute: a possibly qualified name and optional arguments.
type Attr struct {
	Name []token.Token
	Args *Group
}

// SimpleName returns the last name segment without the Attribute suffix,
// so NUnit.Framework.TestAttribute and Test compare equal.
func (a *Attr) SimpleName() string {
	for i := len(a.Name) - 1; i >= 0; i-- {
		t := a.Name[i]
		if t.Kind == token.Ident || t.Kind == token.Keyword {
			name := t.Text
			if len(name) > len("Attribute") && name[len(name)-len("Attribute"):] == "Attribute" {
				name = name[:len(name)-len("Attribute")]
			}
			return name
		}
	}
	return ""
}

// TypeKind tells which keyword introduced a type declaration.
type TypeKind uint8

const (
	TypeClass TypeKind = iota
	TypeStruct
	TypeInterface
	TypeRecord
	TypeEnum
)

// TypeDecl is a class, struct, record, interface or enum declaration.
type TypeDecl struct {
	Attrs      []*AttrList
	Modifiers  []token.Token
	Kind       TypeKind
	Keyword    []token.Token // "class", or "record" "struct"
	Name       token.Token
	TypeParams Tokens // "<T, U>" tokens, empty when not generic
	Params     *Group // primary constructor
	Colon      token.Token
	Bases      []Tokens
	Where      Tokens
	// Open is the zero token for body-less records ending in ';'.
	Open    token.Token
	Members []Member
	Enum    []Tokens
	Close   token.Token
	Semi    token.Token // optional ';' after the body
}

func (*TypeDecl) decl()   {}
func (*TypeDecl) member() {}

func (td *TypeDecl) First() token.Token {
	if len(td.Attrs) > 0 {
		return td.Attrs[0].Open
	}
	if len(td.Modifiers) > 0 {
		return td.Modifiers[0]
	}
	return td.Keyword[0]
}

func (td *TypeDecl) AppendType(n *TypeDecl) { td.Members = append(td.Members, n) }

// HasBody reports whether the declaration has a braced body.
func (td *TypeDecl) HasBody() bool { return td.Open.Kind == token.LBrace }

// AddBase appends a type to the base list, creating the list when absent.
func (td *TypeDecl) AddBase(base Tokens) {
	if len(td.Bases) == 0 {
		td.Colon = token.New(token.Colon, ":")
	}
	td.Bases = append(td.Bases, base)
}

// Member is a type member: *Method, *Field, *Property, *TypeDecl or *Raw.
type Member interface {
	member()
	First() token.Token
}

// Method covers methods, constructors, destructors and operators.
type Method struct {
	Attrs []*AttrList
	// Head runs from the first modifier to the name (type parameters included).
	Head    Tokens
	Params  *Group
	Trailer Tokens // constructor initializer and where clauses
	Body    *Block
	Arrow   *ExprBody
	Semi    token.Token // body-less declarations
}

func (*Method) member() {}

func (m *Method) First() token.Token {
	if len(m.Attrs) > 0 {
		return m.Attrs[0].Open
	}
	return FirstToken(m.Head)
}

// Name returns the identifier naming the method, skipping type parameters.
func (m *Method) Name() string {
	depth := 0
	for i := len(m.Head) - 1; i >= 0; i-- {
		t, ok := m.Head[i].(Tok)
		if !ok {
			continue
		}
		switch {
		case t.Kind == token.Gt:
			depth++
		case t.Kind == token.Lt:
			depth--
		case depth == 0 && (t.Kind == token.Ident || t.Kind == token.Keyword):
			return t.Text
		}
	}
	return ""
}

// Statements returns the body statements, lowering an expression body
// to a single expression statement.
func (m *Method) Statements() []Stmt {
	switch {
	case m.Body != nil:
		return m.Body.Stmts
	case m.Arrow != nil:
		return []Stmt{&ExprStmt{Expr: m.Arrow.Expr, Semi: token.New(token.Semicolon, ";")}}
	default:
		return nil
	}
}

// ExprBody is "=> expr;".
type ExprBody struct {
	Arrow token.Token
	Expr  Tokens
	Semi  token.Token
}

// Field covers fields, events without accessors and const declarations.
type Field struct {
	Attrs  []*AttrList
	Tokens Tokens
	Semi   token.Token
}

func (*Field) member() {}

func (f *Field) First() token.Token {
	if len(f.Attrs) > 0 {
		return f.Attrs[0].Open
	}
	return FirstToken(f.Tokens)
}

// Property covers properties, indexers and events with accessors.
type Property struct {
	Attrs     []*AttrList
	Head      Tokens
	Open      token.Token
	Accessors []*Accessor
	Close     token.Token
	Arrow     *ExprBody
	// Init holds "= value" after an accessor block; InitSemi ends it.
	Init     Tokens
	InitSemi token.Token
}

func (*Property) member() {}

func (p *Property) First() token.Token {
	if len(p.Attrs) > 0 {
		return p.Attrs[0].Open
	}
	return FirstToken(p.Head)
}

// Accessor is get/set/init/add/remove with its optional body.
type Accessor struct {
	Attrs []*AttrList
	Head  Tokens
	Body  *Block
	Arrow *ExprBody
	Semi  token.Token
}

// AttachLeading puts trivia in front of a member's first token after its
// attributes; used when every attribute section of the member was removed.
func AttachLeading(m Member, tr []token.Trivia) {
	if len(tr) == 0 {
		return
	}
	switch m := m.(type) {
	case *Method:
		PrependLeading(m.Head, tr)
	case *Field:
		PrependLeading(m.Tokens, tr)
	case *Property:
		PrependLeading(m.Head, tr)
	case *TypeDecl:
		if len(m.Modifiers) > 0 {
			m.Modifiers[0].Leading = append(append([]token.Trivia{}, tr...), m.Modifiers[0].Leading...)
		} else if len(m.Keyword) > 0 {
			m.Keyword[0].Leading = append(append([]token.Trivia{}, tr...), m.Keyword[0].Leading...)
		}
	}
}
