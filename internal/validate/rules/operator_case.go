package rules

import (
	"fmt"
	"strings"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/token"
	"bwqlint/internal/validate"
)

// OperatorCaseRule warns about words that look like operators but are not
// upper case, so they are searched for as plain words.
type OperatorCaseRule struct{}

func NewOperatorCaseRule() validate.Rule { return &OperatorCaseRule{} }

func (r *OperatorCaseRule) Name() string { return "operator-case" }

func (r *OperatorCaseRule) Description() string {
	return "lower-case and, or, not, to and near/N used as search terms"
}

func (r *OperatorCaseRule) CanValidate(node ast.Expr) bool {
	te, ok := node.(*ast.TermExpr)
	return ok && te.Term.Kind == ast.TermWord
}

func (r *OperatorCaseRule) Validate(node ast.Expr, _ *validate.Context) validate.Result {
	te := node.(*ast.TermExpr)
	var res validate.Result

	suggestion, ok := operatorSpelling(te.Term.Value)
	if ok {
		res.Warn(diag.ValWarning, te.Loc, fmt.Sprintf(
			"'%s' is searched as a word; operators must be upper case ('%s')", te.Term.Value, suggestion))
	}
	return res
}

// operatorSpelling returns the operator a word was probably meant to be.
// For near/N only the prefix is upper-cased; the suggestion must lex as an
// operator.
func operatorSpelling(word string) (string, bool) {
	if upper := strings.ToUpper(word); upper != word {
		if _, ok := token.LookupKeyword(upper); ok {
			return upper, true
		}
	}
	n := len(token.NearPrefix)
	if len(word) <= n || word[:n] == token.NearPrefix || !strings.EqualFold(word[:n], token.NearPrefix) {
		return "", false
	}
	suggestion := token.NearPrefix + word[n:]
	if _, _, ok := token.ClassifyNear(suggestion); !ok {
		return "", false
	}
	return suggestion, true
}
