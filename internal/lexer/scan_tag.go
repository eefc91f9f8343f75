package lexer

import "bwqlint/internal/token"

// scanTag reads '#' or '@' followed by letters, digits, '_', '*' and '?'.
// An empty body is still a token; the validator reports it.
func (lx *Lexer) scanTag(k token.Kind) token.Token {
	start := lx.cursor.Pos()
	lx.cursor.Bump() // sigil
	bodyOff := lx.cursor.Off
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.Peek()
		if !isTagContinue(r) {
			break
		}
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	return token.Token{
		Kind:  k,
		Span:  lx.cursor.SpanFrom(start),
		Text:  text,
		Value: string(lx.file.Content[bodyOff:lx.cursor.Off]),
	}
}
