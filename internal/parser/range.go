package parser

import (
	"strconv"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/token"
)

// parseRange: '[' bound TO bound ']' | '{' bound TO bound '}'
// The caller sets Field when the range follows "field:".
func (p *Parser) parseRange() (*ast.RangeExpr, bool) {
	open := p.advance()
	closer := token.RBracket
	if open.Kind == token.LBrace {
		closer = token.RBrace
	}

	start, ok := p.parseBound(open, "start")
	if !ok {
		return nil, false
	}
	if !p.at(token.To) {
		if p.at(token.EOF) {
			return nil, p.errAt(diag.SynUnclosedDelimiter, open.Span, "Unclosed range: missing 'TO'")
		}
		return nil, p.errAt(diag.SynMalformedRange, p.peek().Span,
			"Expected 'TO' in range, found "+p.peek().String())
	}
	p.advance()
	end, ok := p.parseBound(open, "end")
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expectClose(open, closer)
	if !ok {
		return nil, false
	}
	return &ast.RangeExpr{
		Start:     start,
		End:       end,
		Inclusive: open.Kind == token.LBracket,
		Loc:       open.Span.Cover(closeTok.Span),
	}, true
}

func (p *Parser) parseBound(open token.Token, which string) (string, bool) {
	if p.at(token.EOF) {
		return "", p.errAt(diag.SynUnclosedDelimiter, open.Span, "Unclosed range: missing '"+which+"' bound")
	}
	if !p.atOr(token.Word, token.Number) {
		return "", p.errAt(diag.SynMalformedRange, p.peek().Span,
			"Expected range "+which+" bound, found "+p.peek().String())
	}
	text, _, _ := p.joinAdjacent()
	return text, true
}

// parseDistance accepts only plain non-negative integers that fit uint32.
func parseDistance(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
