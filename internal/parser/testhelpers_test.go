package parser

import (
	"fmt"
	"strings"

	"bwqlint/internal/ast"
)

// sexpr renders a tree compactly for assertions.
func sexpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.TermExpr:
		return fmt.Sprintf("%s:%s", n.Term.Kind, n.Term.Value)
	case *ast.AndExpr:
		op := "and"
		if n.Implicit {
			op = "and~"
		}
		return fmt.Sprintf("(%s %s %s)", op, sexpr(n.Left), sexpr(n.Right))
	case *ast.OrExpr:
		return fmt.Sprintf("(or %s %s)", sexpr(n.Left), sexpr(n.Right))
	case *ast.NotExpr:
		return fmt.Sprintf("(not %s)", sexpr(n.Operand))
	case *ast.GroupExpr:
		return fmt.Sprintf("(group %s)", sexpr(n.Inner))
	case *ast.FieldExpr:
		return fmt.Sprintf("(%s %s)", n.Field, sexpr(n.Operand))
	case *ast.RangeExpr:
		open, closeBr := "{", "}"
		if n.Inclusive {
			open, closeBr = "[", "]"
		}
		return fmt.Sprintf("(range %s %s%s %s%s)", n.Field, open, n.Start, n.End, closeBr)
	case *ast.ProximityExpr:
		parts := make([]string, 0, len(n.Terms))
		for _, t := range n.Terms {
			parts = append(parts, sexpr(t))
		}
		kind := "near"
		if n.Forward {
			kind = "nearf"
		}
		return fmt.Sprintf("(%s/%d %s)", kind, n.Distance, strings.Join(parts, " "))
	}
	return "?"
}
