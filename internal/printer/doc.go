// Package printer renders an ast.File back to C# source.
//
// Layout is normalized: Allman braces, one member or statement per line,
// canonical spacing between tokens. Comments and preprocessor lines are
// kept; blank lines between members and statements follow the source.
// Output is stable: printing a re-parse of printed text yields the same
// bytes (see CheckRoundTrip).
package printer
