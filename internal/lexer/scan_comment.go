package lexer

import "bwqlint/internal/token"

// scanCommentBody runs right after "<<<". It emits the body up to the next
// ">>>" as one CommentText token, then the closing delimiter. An unclosed
// comment simply runs to EOF; the parser reports it.
func (lx *Lexer) scanCommentBody() token.Token {
	if lx.cursor.HasPrefix(">>>") {
		lx.inComment = false
		return lx.scanFixed(token.CommentEnd, 3)
	}
	if lx.cursor.EOF() {
		lx.inComment = false
		return lx.eof()
	}
	start := lx.cursor.Pos()
	for !lx.cursor.EOF() && !lx.cursor.HasPrefix(">>>") {
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	return token.Token{Kind: token.CommentText, Span: lx.cursor.SpanFrom(start), Text: text, Value: text}
}
