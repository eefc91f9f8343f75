package parser

import (
	"fmt"

	"bwqlint/internal/diag"
	"bwqlint/internal/source"
	"bwqlint/internal/token"
)

// Error is the single fatal failure of a parse.
type Error struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Msg)
}

// Diagnostic converts the failure into an error diagnostic.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}

// errAt records the first failure and always returns false so callers can
// write `return nil, p.errAt(...)`.
func (p *Parser) errAt(code diag.Code, sp source.Span, msg string) bool {
	if p.fail != nil {
		return false
	}
	p.fail = &Error{Code: code, Span: sp, Msg: msg}
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(p.fail.Diagnostic())
	}
	return false
}

// unexpected reports the current token as out of place.
func (p *Parser) unexpected() bool {
	tok := p.peek()
	switch tok.Kind {
	case token.RParen, token.RBracket, token.RBrace:
		return p.errAt(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("Unmatched closing '%s'", tok.Text))
	case token.EOF:
		return p.errAt(diag.SynExpectExpression, tok.Span, "Unexpected end of query")
	}
	return p.errAt(diag.SynUnexpectedToken, tok.Span, "Unexpected "+tok.String())
}

// expectClose consumes the closer for open or reports the mismatch.
func (p *Parser) expectClose(open token.Token, closer token.Kind) (token.Token, bool) {
	if p.at(closer) {
		return p.advance(), true
	}
	if p.at(token.EOF) {
		return token.Token{}, p.errAt(diag.SynUnclosedDelimiter, open.Span,
			fmt.Sprintf("Unclosed '%s': missing '%s'", open.Text, closer))
	}
	tok := p.peek()
	return token.Token{}, p.errAt(diag.SynUnexpectedToken, tok.Span,
		fmt.Sprintf("Expected '%s' to close '%s' at %s, found %s", closer, open.Text, open.Span.Start, tok))
}
