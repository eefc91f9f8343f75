// Package diag defines the diagnostic model shared by every stage of the
// query linter.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: compact numeric identifier with a stable string ID (LEX1001,
//     SYN2003, VAL3002, PRF4001, INT9001) and a Kind name that mirrors the
//     diagnostic variant (LexerError, ParseError, InvalidWildcardPlacement,
//     PerformanceWarning, ...).
//   - Rule: name of the validation rule that produced the finding; empty for
//     lexer and parser failures.
//   - Message and Span: what is wrong and where.
//   - Notes: optional secondary locations.
//
// Errors and warnings are disjoint severities. A query that only carries
// warnings is still valid.
//
// # Emitting diagnostics
//
// Producers either build values directly (NewError, NewWarning) or go
// through a Reporter. BagReporter collects into a Bag, which supports
// bounded collection, filtering and a deterministic sort. Package diag does
// no formatting or IO; rendering lives in internal/diagfmt.
package diag
