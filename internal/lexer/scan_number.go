package lexer

import "bwqlint/internal/token"

// scanNumber consumes an optional leading '-' and then digits and dots
// greedily, so "-3.14" and "1.2.3" are single tokens.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Pos()
	if r, _ := lx.cursor.Peek(); r == '-' {
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.Peek()
		if !isDigit(r) && r != '.' {
			break
		}
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	return token.Token{Kind: token.Number, Span: lx.cursor.SpanFrom(start), Text: text, Value: text}
}
