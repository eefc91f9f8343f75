package rules

import (
	"strings"
	"unicode/utf8"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
)

// maxReplacementChars is the largest number of '?' accepted without a warning.
const maxReplacementChars = 3

// WildcardPerformanceRule rejects leading and overly broad wildcards and
// warns about terms with many replacement characters.
type WildcardPerformanceRule struct{}

func NewWildcardPerformanceRule() validate.Rule { return &WildcardPerformanceRule{} }

func (r *WildcardPerformanceRule) Name() string { return "wildcard-performance" }

func (r *WildcardPerformanceRule) Description() string {
	return "leading wildcards, single-character wildcard prefixes and many '?' characters"
}

func (r *WildcardPerformanceRule) CanValidate(node ast.Expr) bool {
	te, ok := node.(*ast.TermExpr)
	return ok && (te.Term.Kind == ast.TermWildcard || te.Term.Kind == ast.TermReplacement)
}

func (r *WildcardPerformanceRule) Validate(node ast.Expr, _ *validate.Context) validate.Result {
	te := node.(*ast.TermExpr)
	value := te.Term.Value
	var res validate.Result

	switch te.Term.Kind {
	case ast.TermWildcard:
		if strings.HasPrefix(value, "*") {
			res.Error(diag.ValInvalidWildcardPlacement, te.Loc,
				"Wildcards cannot be placed at the beginning of a term")
		}
		first, _, _ := strings.Cut(value, "*")
		if utf8.RuneCountInString(first) == 1 && strings.HasSuffix(value, "*") {
			res.Error(diag.ValBroadWildcard, te.Loc,
				"This wildcard matches too many unique terms. Please make it more specific.")
		}
	case ast.TermReplacement:
		if strings.Count(value, "?") > maxReplacementChars {
			res.Warn(diag.PerfReplacement, te.Loc, "Multiple replacement characters may impact performance")
		}
	}
	return res
}
