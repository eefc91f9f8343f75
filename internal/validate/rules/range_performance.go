package rules

import (
	"strconv"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
)

// maxFollowers is the largest follower count that can realistically match.
const maxFollowers = 1_000_000_000

// RangePerformanceRule checks authorFollowers ranges with integer bounds.
// Non-integer bounds are left to range-bounds.
type RangePerformanceRule struct{}

func NewRangePerformanceRule() validate.Rule { return &RangePerformanceRule{} }

func (r *RangePerformanceRule) Name() string { return "range-performance" }

func (r *RangePerformanceRule) Description() string {
	return "negative or unrealistically large follower ranges"
}

func (r *RangePerformanceRule) CanValidate(node ast.Expr) bool {
	rng, ok := node.(*ast.RangeExpr)
	return ok && rng.Field == ast.FieldAuthorFollowers
}

func (r *RangePerformanceRule) Validate(node ast.Expr, _ *validate.Context) validate.Result {
	rng := node.(*ast.RangeExpr)
	var res validate.Result

	start, err1 := strconv.ParseInt(rng.Start, 10, 64)
	end, err2 := strconv.ParseInt(rng.End, 10, 64)
	if err1 != nil || err2 != nil {
		return res
	}
	if start < 0 || end < 0 {
		res.Error(diag.ValRangeError, rng.Loc, "Follower counts cannot be negative")
	}
	if end > maxFollowers {
		res.Warn(diag.PerfLargeRange, rng.Loc, "Very large follower counts may not match any results")
	}
	return res
}
