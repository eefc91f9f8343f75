package parser

import "bwqlint/internal/token"

// Precedence of binary operators; higher binds tighter.
// NOT, field scopes and atoms bind tighter than all of these.
const (
	precNone = 0
	precOr   = 1 // OR
	precAnd  = 2 // AND, juxtaposition
	precNear = 3 // NEAR/n, NEAR/nf
)

// binaryPrec returns the precedence of the operator at the cursor and
// whether it is an implicit AND (no operator token to consume).
func (p *Parser) binaryPrec() (prec int, implicit bool) {
	switch tok := p.peek(); tok.Kind {
	case token.Or:
		return precOr, false
	case token.And:
		return precAnd, false
	case token.Near, token.NearForward:
		return precNear, false
	default:
		if startsOperand(tok.Kind) {
			return precAnd, true
		}
	}
	return precNone, false
}

// startsOperand reports whether a token of kind k can begin an operand.
func startsOperand(k token.Kind) bool {
	switch k {
	case token.Word, token.Number, token.QuotedString, token.Hashtag, token.Mention,
		token.Tilde, token.LParen, token.LBracket, token.LBrace, token.Not, token.Field:
		return true
	default:
		return false
	}
}
