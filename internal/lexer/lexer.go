package lexer

import (
	"fmt"

	"bwqlint/internal/diag"
	"bwqlint/internal/source"
	"bwqlint/internal/token"
)

// Lexer scans one query left to right. It is not safe for concurrent use;
// create one lexer per query.
type Lexer struct {
	file      *source.File
	cursor    Cursor
	opts      Options
	look      *token.Token
	inComment bool
	emitted   int
	err       *Error
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Tokenize lexes a whole query. On failure no tokens are returned.
func Tokenize(text string) ([]token.Token, error) {
	return TokenizeFile(source.NewVirtual("<query>", text), Options{})
}

// TokenizeFile lexes f with opts. The result always ends with EOF.
func TokenizeFile(f *source.File, opts Options) ([]token.Token, error) {
	lx := New(f, opts)
	toks := make([]token.Token, 0, len(f.Content)/4+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next returns the next token. After EOF it keeps returning EOF; after an
// error it keeps returning the same error.
func (lx *Lexer) Next() (token.Token, error) {
	if lx.err != nil {
		return token.Token{}, lx.err
	}
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok, nil
	}

	tok, err := lx.scan()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind != token.EOF {
		lx.emitted++
		if lx.opts.MaxTokens > 0 && lx.emitted > lx.opts.MaxTokens {
			msg := fmt.Sprintf("query has more than %d tokens", lx.opts.MaxTokens)
			return token.Token{}, lx.fail(diag.LexTooManyTokens, tok.Span, msg)
		}
	}
	return tok, nil
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (token.Token, error) {
	tok, err := lx.Next()
	if err != nil {
		return tok, err
	}
	lx.look = &tok
	return tok, nil
}

func (lx *Lexer) scan() (token.Token, error) {
	if lx.inComment {
		return lx.scanCommentBody(), nil
	}

	for {
		if lx.cursor.EOF() {
			return lx.eof(), nil
		}
		r, _ := lx.cursor.Peek()
		if !isSpace(r) {
			break
		}
		ws := lx.skipWhitespace()
		if lx.opts.KeepWhitespace {
			return ws, nil
		}
	}

	r, _ := lx.cursor.Peek()
	switch {
	case r == '"':
		return lx.scanString()
	case r == '<' && lx.cursor.HasPrefix("<<<"):
		lx.inComment = true
		return lx.scanFixed(token.CommentStart, 3), nil
	case r == '>' && lx.cursor.HasPrefix(">>>"):
		return lx.scanFixed(token.CommentEnd, 3), nil
	case r == '#':
		return lx.scanTag(token.Hashtag), nil
	case r == '@':
		return lx.scanTag(token.Mention), nil
	case isDigit(r):
		return lx.scanNumber(), nil
	case r == '-' && isDigit(rune(lx.cursor.PeekByte(1))):
		return lx.scanNumber(), nil
	case isWordStart(r):
		return lx.scanWord(), nil
	}
	if k, ok := punct[r]; ok {
		return lx.scanFixed(k, 1), nil
	}
	return token.Token{}, lx.unexpected()
}

var punct = map[rune]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	'~': token.Tilde,
	':': token.Colon,
}

// scanFixed consumes n single-byte runes as one token of kind k.
func (lx *Lexer) scanFixed(k token.Kind, n int) token.Token {
	start := lx.cursor.Pos()
	for range n {
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start), Text: text, Value: text}
}

func (lx *Lexer) skipWhitespace() token.Token {
	start := lx.cursor.Pos()
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.Peek()
		if !isSpace(r) {
			break
		}
		lx.cursor.Bump()
	}
	text := lx.cursor.Text(start)
	return token.Token{Kind: token.Whitespace, Span: lx.cursor.SpanFrom(start), Text: text, Value: text}
}

func (lx *Lexer) unexpected() *Error {
	start := lx.cursor.Pos()
	r := lx.cursor.Bump()
	return lx.fail(diag.LexUnknownChar, lx.cursor.SpanFrom(start), fmt.Sprintf("Unexpected character '%c'", r))
}

func (lx *Lexer) eof() token.Token {
	return token.Token{Kind: token.EOF, Span: source.Single(lx.cursor.Pos())}
}
