package parser

import (
	"fmt"
	"strings"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/source"
	"bwqlint/internal/token"
)

// parseScopedExpr: scoped := field ':' operand | postfix
func (p *Parser) parseScopedExpr() (ast.Expr, bool) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Field:
		p.advance()
		return p.parseFieldOperand(tok, tok.Value)
	case tok.Kind == token.Word && p.peekN(1).Kind == token.Colon:
		p.advance()
		p.advance() // ':'
		return p.parseFieldOperand(tok, tok.Value)
	}
	return p.parsePostfixExpr()
}

// parseFieldOperand resolves the field name and parses what it scopes: a
// range binds the field directly, anything else becomes a FieldExpr.
func (p *Parser) parseFieldOperand(nameTok token.Token, name string) (ast.Expr, bool) {
	spec, ok := p.opts.Fields.Lookup(name)
	if !ok {
		return nil, p.errAt(diag.SynUnknownField, nameTok.Span, fmt.Sprintf("Unknown field '%s'", name))
	}
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	if p.atOr(token.LBracket, token.LBrace) {
		rng, ok := p.parseRange()
		if !ok {
			return nil, false
		}
		rng.Field = spec.Type
		rng.Loc = nameTok.Span.Cover(rng.Loc)
		return rng, true
	}
	if !startsOperand(p.peek().Kind) || p.at(token.Not) {
		if p.at(token.EOF) {
			return nil, p.errAt(diag.SynExpectExpression, p.peek().Span,
				fmt.Sprintf("Expected a value after '%s:'", name))
		}
		return nil, p.unexpected()
	}
	operand, ok := p.parsePostfixExpr()
	if !ok {
		return nil, false
	}
	return &ast.FieldExpr{
		Field:   spec.Type,
		Name:    name,
		Operand: operand,
		Loc:     nameTok.Span.Cover(operand.Span()),
	}, true
}

// parsePostfixExpr: postfix := atom ('~' NUMBER)?  (phrases and groups only)
func (p *Parser) parsePostfixExpr() (ast.Expr, bool) {
	atom, ok := p.parseAtom()
	if !ok {
		return nil, false
	}
	if !p.at(token.Tilde) || p.peekN(1).Kind != token.Number {
		return atom, true
	}
	switch a := atom.(type) {
	case *ast.GroupExpr:
	case *ast.TermExpr:
		if a.Term.Kind != ast.TermPhrase {
			return atom, true
		}
	default:
		return atom, true
	}
	p.advance() // '~'
	numTok := p.advance()
	dist, ok := parseDistance(numTok.Value)
	if !ok {
		return nil, p.errAt(diag.SynMalformedProximity, numTok.Span,
			fmt.Sprintf("Invalid proximity distance '%s': expected a non-negative integer", numTok.Value))
	}
	return &ast.ProximityExpr{
		Terms:    []ast.Expr{atom},
		Distance: dist,
		Loc:      atom.Span().Cover(numTok.Span),
	}, true
}

// parseAtom: term | phrase | hashtag | mention | '~' word | group | range
func (p *Parser) parseAtom() (ast.Expr, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Word, token.Number:
		return p.parseTerm()
	case token.QuotedString:
		p.advance()
		return &ast.TermExpr{Term: ast.Term{Kind: ast.TermPhrase, Value: tok.Value}, Loc: tok.Span}, true
	case token.Hashtag:
		p.advance()
		return &ast.TermExpr{Term: ast.Term{Kind: ast.TermHashtag, Value: tok.Value}, Loc: tok.Span}, true
	case token.Mention:
		p.advance()
		return &ast.TermExpr{Term: ast.Term{Kind: ast.TermMention, Value: tok.Value}, Loc: tok.Span}, true
	case token.Tilde:
		return p.parseCaseSensitive()
	case token.LParen:
		return p.parseGroup()
	case token.LBracket, token.LBrace:
		rng, ok := p.parseRange()
		if !ok {
			return nil, false
		}
		return rng, true
	}
	return nil, p.unexpected()
}

// parseTerm joins Word/Number tokens that touch each other ("19covid",
// "2024-01-01") into one term.
func (p *Parser) parseTerm() (ast.Expr, bool) {
	text, span, numeric := p.joinAdjacent()
	if numeric {
		return &ast.TermExpr{Term: ast.Term{Kind: ast.TermNumber, Value: text}, Loc: span}, true
	}
	return &ast.TermExpr{Term: ast.ClassifyWord(text), Loc: span}, true
}

// joinAdjacent consumes a run of Word/Number tokens with no gap between
// them. numeric is true when every piece was a Number.
func (p *Parser) joinAdjacent() (text string, span source.Span, numeric bool) {
	first := p.advance()
	span = first.Span
	numeric = first.Kind == token.Number
	if !p.touches(span) {
		return first.Text, span, numeric
	}
	var b strings.Builder
	b.WriteString(first.Text)
	for p.touches(span) {
		tok := p.advance()
		b.WriteString(tok.Text)
		numeric = numeric && tok.Kind == token.Number
		span = span.Cover(tok.Span)
	}
	return b.String(), span, numeric
}

func (p *Parser) touches(prev source.Span) bool {
	next := p.peek()
	return (next.Kind == token.Word || next.Kind == token.Number) &&
		next.Span.Start.Offset == prev.End.Offset
}

func (p *Parser) parseCaseSensitive() (ast.Expr, bool) {
	tilde := p.advance()
	if !p.at(token.Word) {
		return nil, p.errAt(diag.SynMalformedProximity, tilde.Span,
			"'~' must precede a word, or follow a phrase or group as ~N")
	}
	text, span, _ := p.joinAdjacent()
	return &ast.TermExpr{
		Term: ast.Term{Kind: ast.TermCaseSensitive, Value: text},
		Loc:  tilde.Span.Cover(span),
	}, true
}

// parseGroup: '(' expr ')'
func (p *Parser) parseGroup() (ast.Expr, bool) {
	open := p.advance()
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	if p.at(token.RParen) {
		return nil, p.errAt(diag.SynExpectExpression, open.Span.Cover(p.peek().Span), "Empty group '()'")
	}
	if p.at(token.EOF) {
		return nil, p.errAt(diag.SynUnclosedDelimiter, open.Span, "Unclosed '(': missing ')'")
	}
	inner, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expectClose(open, token.RParen)
	if !ok {
		return nil, false
	}
	return &ast.GroupExpr{Inner: inner, Loc: open.Span.Cover(closeTok.Span)}, true
}
