// Package token defines lexical token kinds and trivia for C# test sources.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text exactly (Start..End).
//   - Comments, whitespace and preprocessor lines are leading Trivia and never
//     appear in the main token stream.
//   - Contextual keywords (var, record, where, get, set, async, await, global,
//     nameof, when, ...) are identifiers; only reserved words are Keyword.
//   - '>' is always a single Gt token so that nested generic argument lists
//     close correctly; shift operators are recovered from adjacency.
package token
