package lexer

import (
	"bwqlint/internal/diag"
)

type Options struct {
	// KeepWhitespace emits Whitespace tokens (one per run) instead of
	// dropping them. The parser never accepts them.
	KeepWhitespace bool
	// MaxTokens bounds the number of emitted tokens, EOF excluded. 0 means no limit.
	MaxTokens int
	// Reporter, when set, also receives the fatal lexer error as a diagnostic.
	Reporter diag.Reporter
}
