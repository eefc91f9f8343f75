package rules

import (
	"fmt"
	"strings"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
)

// MaxProximityDistance is the largest distance accepted without a warning.
const MaxProximityDistance = 100

// ProximityDistanceRule checks proximity distances and ~N applied to a
// phrase that has nothing to spread apart.
type ProximityDistanceRule struct{}

func NewProximityDistanceRule() validate.Rule { return &ProximityDistanceRule{} }

func (r *ProximityDistanceRule) Name() string { return "proximity-distance" }

func (r *ProximityDistanceRule) Description() string {
	return "zero or very large proximity distances and ~N on single words"
}

func (r *ProximityDistanceRule) CanValidate(node ast.Expr) bool {
	_, ok := node.(*ast.ProximityExpr)
	return ok
}

func (r *ProximityDistanceRule) Validate(node ast.Expr, _ *validate.Context) validate.Result {
	prox := node.(*ast.ProximityExpr)
	var res validate.Result

	switch {
	case prox.Distance == 0:
		res.Warn(diag.ValWarning, prox.Loc,
			"Proximity distance 0 only matches adjacent words; use a quoted phrase instead")
	case prox.Distance > MaxProximityDistance:
		res.Warn(diag.PerfNearDistance, prox.Loc,
			fmt.Sprintf("Proximity distance %d exceeds %d and may impact performance", prox.Distance, MaxProximityDistance))
	}

	if !prox.Infix && len(prox.Terms) == 1 {
		if te, ok := prox.Terms[0].(*ast.TermExpr); ok && te.Term.Kind == ast.TermPhrase &&
			len(strings.Fields(te.Term.Value)) < 2 {
			res.Warn(diag.ValWarning, prox.Loc, "Proximity search needs at least two words in the phrase")
		}
	}
	return res
}
