// Package diag defines the diagnostic model shared by the lexer, the parser
// and the IR builder.
//
// Producers emit through a Reporter (usually a BagReporter) and never format
// anything themselves; rendering lives in internal/graphfmt.
//
// A Diagnostic carries a Severity, a numeric Code with a stable string form
// (LEX/SYN/IR/IO prefixes, see codes.go), a short message, the primary span and
// optional notes pointing at related source.
//
// IR codes mirror the builder's error taxonomy one to one, so a failed or
// partially supported function body can be reported per occurrence while the
// driver keeps going with the remaining functions.
package diag
