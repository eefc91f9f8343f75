package lexer

import (
	"bwqlint/internal/diag"
	"bwqlint/internal/source"
	"bwqlint/internal/token"
)

// scanString reads "..." verbatim. There are no escapes and newlines are
// allowed inside the phrase. A missing closing quote is reported at the
// opening quote.
func (lx *Lexer) scanString() (token.Token, error) {
	start := lx.cursor.Pos()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		if r, _ := lx.cursor.Peek(); r == '"' {
			lx.cursor.Bump()
			text := lx.cursor.Text(start)
			return token.Token{
				Kind:  token.QuotedString,
				Span:  lx.cursor.SpanFrom(start),
				Text:  text,
				Value: text[1 : len(text)-1],
			}, nil
		}
		lx.cursor.Bump()
	}
	// EOF без закрывающей кавычки
	quote := source.NewSpan(start, source.Position{Line: start.Line, Column: start.Column + 1, Offset: start.Offset + 1})
	return token.Token{}, lx.fail(diag.LexUnterminatedString, quote, "Unterminated quoted string")
}
