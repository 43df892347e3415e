package ast

import (
	"xunitify/internal/token"
)

// Guard is an assertion wrapped so that its failure message is forwarded
// to a diagnostic sink before the failure propagates unchanged:
//
//	try { <Call>; } catch { <Sink>.WriteLine(<Message>); throw; }
//
// It prints as the equivalent try statement.
type Guard struct {
	Call    Tokens
	Sink    string
	Message Tokens
	// Leading keeps the comments of the statement the guard replaced.
	Leading []token.Trivia
}

func (*Guard) stmt() {}

func (g *Guard) First() token.Token { return g.Lower().Keyword }

// Lower builds the try statement the guard stands for.
func (g *Guard) Lower() *Try {
	kw := token.Word("try")
	kw.Leading = g.Leading
	write := NewExprStmt(
		W(g.Sink), P(token.Dot, "."), W("WriteLine"),
		Paren(g.Message),
	)
	rethrow := NewExprStmt(W("throw"))
	return &Try{
		Keyword: kw,
		Body:    NewBlock(NewExprStmt(g.Call...)),
		Catches: []*Catch{{
			Keyword: token.Word("catch"),
			Body:    NewBlock(write, rethrow),
		}},
	}
}
