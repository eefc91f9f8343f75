package parser

import (
	"fmt"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/token"
)

// parseExpr is the entry point for a full boolean expression.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinaryExpr(precOr)
}

// parseBinaryExpr is a Pratt loop over OR, AND (explicit or implicit) and
// NEAR. All binary operators are left-associative.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		prec, implicit := p.binaryPrec()
		if prec == precNone || prec < minPrec {
			return left, true
		}

		var opTok token.Token
		if !implicit {
			opTok = p.advance()
			if p.at(token.EOF) {
				return nil, p.errAt(diag.SynExpectExpression, p.peek().Span,
					fmt.Sprintf("Expected expression after %s", opTok))
			}
		}

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}

		span := left.Span().Cover(right.Span())
		switch opTok.Kind {
		case token.Or:
			left = &ast.OrExpr{Left: left, Right: right, Loc: span}
		case token.Near, token.NearForward:
			left = &ast.ProximityExpr{
				Terms:    []ast.Expr{left, right},
				Distance: opTok.Distance,
				Forward:  opTok.Kind == token.NearForward,
				Infix:    true,
				Loc:      span,
			}
		default:
			left = &ast.AndExpr{Left: left, Right: right, Implicit: implicit, Loc: span}
		}
	}
}

// parseUnaryExpr: unary := NOT unary | scoped
func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	if !p.at(token.Not) {
		return p.parseScopedExpr()
	}
	notTok := p.advance()
	if !p.enter() {
		return nil, false
	}
	defer p.leave()

	if !startsOperand(p.peek().Kind) {
		if p.at(token.EOF) {
			return nil, p.errAt(diag.SynExpectExpression, p.peek().Span, "Expected expression after NOT")
		}
		return nil, p.unexpected()
	}
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	return &ast.NotExpr{Operand: operand, Loc: notTok.Span.Cover(operand.Span())}, true
}

func (p *Parser) enter() bool {
	p.depth++
	if p.depth > p.opts.MaxDepth {
		return p.errAt(diag.SynNestingTooDeep, p.peek().Span,
			fmt.Sprintf("Query nesting exceeds the maximum depth of %d", p.opts.MaxDepth))
	}
	return true
}

func (p *Parser) leave() {
	p.depth--
}
