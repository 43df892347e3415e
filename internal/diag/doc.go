// Package diag defines the diagnostic model shared by the lexer, parser and
// rewrite passes.
//
// Diagnostic is the central record: Severity, a compact numeric Code with a
// stable string form (LEX/SYN/REW/IO ranges), a short Message, the Primary
// span and optional Notes. Producers emit through a Reporter; BagReporter
// aggregates into a Bag which supports limits, sorting and merging.
//
// Package diag does no IO. Rendering lives in Format (single-line form used
// by the CLI and tests).
package diag
