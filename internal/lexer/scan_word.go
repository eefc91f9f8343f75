package lexer

import (
	"bwqlint/internal/token"
)

// scanWord consumes a maximal run of word characters and only then decides
// what the run is: an operator keyword, NEAR/n, NEAR/nf or a plain word.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Pos()
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.Peek()
		if !isWordContinue(r) {
			break
		}
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	tok := token.Token{Kind: token.Word, Span: lx.cursor.SpanFrom(start), Text: text, Value: text}

	if k, ok := token.LookupKeyword(text); ok {
		tok.Kind = k
		return tok
	}
	if k, dist, ok := token.ClassifyNear(text); ok {
		tok.Kind = k
		tok.Distance = dist
	}
	return tok
}
