package rules

import (
	"strings"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
)

// ShortTermRule rejects empty terms and warns about wildcards right after a
// hashtag or mention sigil.
type ShortTermRule struct{}

func NewShortTermRule() validate.Rule { return &ShortTermRule{} }

func (r *ShortTermRule) Name() string { return "short-term" }

func (r *ShortTermRule) Description() string {
	return "empty words, phrases, hashtags and mentions"
}

func (r *ShortTermRule) CanValidate(node ast.Expr) bool {
	_, ok := node.(*ast.TermExpr)
	return ok
}

func (r *ShortTermRule) Validate(node ast.Expr, _ *validate.Context) validate.Result {
	te := node.(*ast.TermExpr)
	value := te.Term.Value
	empty := strings.TrimSpace(value) == ""
	var res validate.Result

	switch te.Term.Kind {
	case ast.TermWord:
		if empty {
			res.Error(diag.ValEmptyTerm, te.Loc, "Word cannot be empty")
		}
	case ast.TermPhrase:
		if empty {
			res.Error(diag.ValEmptyTerm, te.Loc, "Quoted phrase cannot be empty")
		}
	case ast.TermHashtag:
		tagCheck(&res, te, empty, "Hashtag", '#')
	case ast.TermMention:
		tagCheck(&res, te, empty, "Mention", '@')
	}
	return res
}

func tagCheck(res *validate.Result, te *ast.TermExpr, empty bool, what string, sigil byte) {
	switch {
	case empty:
		res.Error(diag.ValEmptyTerm, te.Loc, what+" cannot be empty")
	case strings.HasPrefix(te.Term.Value, "*") || strings.HasPrefix(te.Term.Value, "?"):
		res.Warn(diag.PerfTagWildcard, te.Loc,
			"Wildcard usage after '"+string(sigil)+"' is discouraged and may lead to unexpected results")
	}
}
