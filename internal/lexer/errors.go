package lexer

import (
	"fmt"

	"bwqlint/internal/diag"
	"bwqlint/internal/source"
)

// Error is a fatal lexing failure. Lexing stops at the first one.
type Error struct {
	Code diag.Code
	Pos  source.Position
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// Diagnostic converts the failure into an error diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}

func (lx *Lexer) fail(code diag.Code, sp source.Span, msg string) *Error {
	err := &Error{Code: code, Pos: sp.Start, Span: sp, Msg: msg}
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(err.Diagnostic())
	}
	lx.err = err
	return err
}
