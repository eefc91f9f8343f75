package rules

import (
	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
)

// PureNegationRule rejects queries that only exclude content. The check
// covers the whole tree, so it runs once at the query root; for any other
// node Validate returns an empty result.
type PureNegationRule struct{}

func NewPureNegationRule() validate.Rule { return &PureNegationRule{} }

func (r *PureNegationRule) Name() string { return "pure-negation" }

func (r *PureNegationRule) Description() string {
	return "queries made only of NOT clauses"
}

// CanValidate accepts the node shapes a negation-only query can have. The
// root is not known from the node alone, so non-root nodes pass here and
// are skipped in Validate.
func (r *PureNegationRule) CanValidate(node ast.Expr) bool {
	switch node.(type) {
	case *ast.NotExpr, *ast.GroupExpr, *ast.AndExpr, *ast.OrExpr:
		return true
	}
	return false
}

func (r *PureNegationRule) Validate(node ast.Expr, ctx *validate.Context) validate.Result {
	var res validate.Result
	if ctx == nil || node != ctx.Root {
		return res
	}
	if onlyNegations(node) {
		res.Error(diag.ValPureNegation, node.Span(),
			"Query must contain at least one positive term; NOT alone excludes everything")
	}
	return res
}

func onlyNegations(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.NotExpr:
		return true
	case *ast.GroupExpr:
		return onlyNegations(n.Inner)
	case *ast.AndExpr:
		return onlyNegations(n.Left) && onlyNegations(n.Right)
	case *ast.OrExpr:
		return onlyNegations(n.Left) && onlyNegations(n.Right)
	}
	return false
}
