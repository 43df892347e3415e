// Package ast holds the syntax tree of a C# test source file.
//
// The tree is structural down to statements and member headers. Expressions
// are kept as balanced token trees: parenthesised, bracketed and braced
// groups are nested and split on top-level commas, and lambda block bodies
// are statement blocks. Comments and preprocessor lines travel as leading
// trivia of the token that follows them.
package ast
