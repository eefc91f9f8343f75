package parser

import (
	"slices"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/lexer"
	"bwqlint/internal/source"
	"bwqlint/internal/token"
)

// DefaultMaxDepth bounds group/NOT/field nesting when Options.MaxDepth is 0.
const DefaultMaxDepth = 256

type Options struct {
	// MaxDepth bounds nesting of groups, NOT and field scopes.
	MaxDepth int
	// Fields resolves field names; nil means ast.DefaultFields().
	Fields *ast.FieldRegistry
	// Reporter, when set, also receives the parse failure as a diagnostic.
	Reporter diag.Reporter
}

// Parser holds the state for one query. Parsing stops at the first error.
type Parser struct {
	toks  []token.Token
	pos   int
	opts  Options
	depth int
	fail  *Error
}

// Parse builds the query tree from a token stream produced by the lexer.
// Comment tokens are dropped first. The result is either a tree or exactly
// one *Error.
func Parse(toks []token.Token, opts Options) (ast.Expr, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Fields == nil {
		opts.Fields = ast.DefaultFields()
	}
	p := &Parser{opts: opts}

	stripped, err := p.stripComments(toks)
	if err != nil {
		return nil, err
	}
	p.toks = stripped

	expr, ok := p.parseQuery()
	if !ok {
		return nil, p.fail
	}
	return expr, nil
}

// ParseQuery lexes and parses text with default options.
func ParseQuery(text string) (ast.Expr, error) {
	toks, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	return Parse(toks, Options{})
}

// parseQuery: query := expr EOF
func (p *Parser) parseQuery() (ast.Expr, bool) {
	if p.at(token.EOF) {
		return nil, p.errAt(diag.SynEmptyQuery, p.peek().Span, "Query is empty")
	}
	expr, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if !p.at(token.EOF) {
		return nil, p.unexpected()
	}
	return expr, true
}

// stripComments removes <<< ... >>> and whitespace tokens and guarantees a
// trailing EOF.
func (p *Parser) stripComments(toks []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(toks)+1)
	var open *token.Token
	for i := range toks {
		tok := toks[i]
		switch tok.Kind {
		case token.Whitespace:
			continue
		case token.CommentStart:
			if open == nil {
				open = &toks[i]
			}
			continue
		case token.CommentText:
			continue
		case token.CommentEnd:
			if open == nil {
				p.errAt(diag.SynUnexpectedToken, tok.Span, "Unexpected '>>>' outside of a comment")
				return nil, p.fail
			}
			open = nil
			continue
		case token.EOF:
			if open != nil {
				p.errAt(diag.SynUnclosedComment, open.Span, "Unclosed comment: missing '>>>'")
				return nil, p.fail
			}
			out = append(out, tok)
			return out, nil
		}
		if open == nil {
			out = append(out, tok)
		}
	}
	if open != nil {
		p.errAt(diag.SynUnclosedComment, open.Span, "Unclosed comment: missing '>>>'")
		return nil, p.fail
	}
	end := source.StartPosition
	if len(toks) > 0 {
		end = toks[len(toks)-1].Span.End
	}
	return append(out, token.Token{Kind: token.EOF, Span: source.Single(end)}), nil
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN looks n tokens ahead, clamping at EOF.
func (p *Parser) peekN(n int) token.Token {
	i := min(p.pos+n, len(p.toks)-1)
	return p.toks[i]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) advance() token.Token {
	tok := p.toks[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}
