package driver

import (
	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/lexer"
	"bwqlint/internal/parser"
	"bwqlint/internal/source"
	"bwqlint/internal/token"
)

type TokenizeResult struct {
	File *source.File
	// Tokens scanned before any failure; ends with EOF on success.
	Tokens []token.Token
	Fatal  *diag.Diagnostic
}

// Tokenize lexes f for the `tokenize` command. Unlike lexer.TokenizeFile
// it keeps the tokens scanned before a failure.
func Tokenize(f *source.File, keepWhitespace bool) *TokenizeResult {
	res := &TokenizeResult{File: f}
	lx := lexer.New(f, lexer.Options{KeepWhitespace: keepWhitespace})
	for {
		tok, err := lx.Next()
		if err != nil {
			d := fatalDiagnostic(err)
			res.Fatal = &d
			return res
		}
		res.Tokens = append(res.Tokens, tok)
		if tok.Kind == token.EOF {
			return res
		}
	}
}

type ParseResult struct {
	File  *source.File
	Root  ast.Expr
	Fatal *diag.Diagnostic
}

// Parse lexes and parses f for the `parse` command.
func Parse(f *source.File, opts Options) *ParseResult {
	opts = opts.withDefaults()
	res := &ParseResult{File: f}
	toks, err := lexer.TokenizeFile(f, lexer.Options{})
	if err == nil {
		res.Root, err = parser.Parse(toks, parser.Options{MaxDepth: opts.MaxDepth, Fields: opts.Fields})
	}
	if err != nil {
		d := fatalDiagnostic(err)
		res.Fatal = &d
	}
	return res
}
