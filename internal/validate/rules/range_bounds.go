package rules

import (
	"fmt"
	"strconv"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
)

// openBound marks an unbounded side of a range.
const openBound = "*"

// RangeBoundsRule checks that a range is scoped to a field that supports
// ranges and that its bounds are well-formed and ordered.
type RangeBoundsRule struct{}

func NewRangeBoundsRule() validate.Rule { return &RangeBoundsRule{} }

func (r *RangeBoundsRule) Name() string { return "range-bounds" }

func (r *RangeBoundsRule) Description() string {
	return "unscoped ranges, non-numeric bounds and reversed bounds"
}

func (r *RangeBoundsRule) CanValidate(node ast.Expr) bool {
	_, ok := node.(*ast.RangeExpr)
	return ok
}

func (r *RangeBoundsRule) Validate(node ast.Expr, ctx *validate.Context) validate.Result {
	rng := node.(*ast.RangeExpr)
	var res validate.Result

	if rng.Field == ast.FieldNone {
		res.Error(diag.ValError, rng.Loc, "Range must be scoped to a field, e.g. authorFollowers:[0 TO 100]")
		return res
	}
	spec, ok := ctx.FieldSpec(rng.Field)
	if !ok || !spec.HasFlag(ast.FieldFlagRange) {
		res.Error(diag.ValError, rng.Loc, fmt.Sprintf("Field '%s' does not support ranges", rng.Field))
		return res
	}

	if rng.Start == openBound && rng.End == openBound {
		res.Warn(diag.ValWarning, rng.Loc, "Range with two open bounds matches every value")
		return res
	}
	if !spec.Numeric() {
		return res
	}

	start, startOK := r.bound(&res, rng, rng.Start)
	end, endOK := r.bound(&res, rng, rng.End)
	if !startOK || !endOK {
		return res
	}
	switch {
	case start > end:
		res.Error(diag.ValRangeError, rng.Loc,
			fmt.Sprintf("Range start %d is greater than range end %d", start, end))
	case start == end && !rng.Inclusive:
		res.Warn(diag.ValWarning, rng.Loc,
			fmt.Sprintf("Exclusive range {%d TO %d} cannot match anything", start, end))
	}
	return res
}

// bound parses one side. ok is false for open or invalid bounds; invalid
// ones are reported.
func (r *RangeBoundsRule) bound(res *validate.Result, rng *ast.RangeExpr, s string) (int64, bool) {
	if s == openBound {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		res.Error(diag.ValRangeError, rng.Loc,
			fmt.Sprintf("Range bound '%s' is not an integer", s))
		return 0, false
	}
	return n, true
}
