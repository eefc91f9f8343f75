package ast

import (
	"bwqlint/internal/source"
)

// Expr is any node of the query tree.
type Expr interface {
	Span() source.Span
	// Children returns the direct sub-expressions in source order.
	Children() []Expr
	exprNode()
}

type TermExpr struct {
	Term Term
	Loc  source.Span
}

// AndExpr joins two operands. Implicit is set when the operands were only
// separated by whitespace.
type AndExpr struct {
	Left, Right Expr
	Implicit    bool
	Loc         source.Span
}

type OrExpr struct {
	Left, Right Expr
	Loc         source.Span
}

type NotExpr struct {
	Operand Expr
	Loc     source.Span
}

// GroupExpr is a parenthesised sub-query.
type GroupExpr struct {
	Inner Expr
	Loc   source.Span
}

// FieldExpr scopes Operand to a metadata field, e.g. title:(apple OR pear).
type FieldExpr struct {
	Field   FieldType
	Name    string // as written in the query
	Operand Expr
	Loc     source.Span
}

// RangeExpr is [Start TO End] (Inclusive) or {Start TO End}. Field is
// FieldNone when the range is not preceded by a field.
type RangeExpr struct {
	Field     FieldType
	Start     string
	End       string
	Inclusive bool
	Loc       source.Span
}

// ProximityExpr requires Terms to appear within Distance words of each
// other; Forward additionally requires source order.
type ProximityExpr struct {
	Terms    []Expr
	Distance uint32
	Forward  bool
	// Infix is set for NEAR/n operators, clear for a trailing ~n.
	Infix bool
	Loc   source.Span
}

func (e *TermExpr) Span() source.Span      { return e.Loc }
func (e *AndExpr) Span() source.Span       { return e.Loc }
func (e *OrExpr) Span() source.Span        { return e.Loc }
func (e *NotExpr) Span() source.Span       { return e.Loc }
func (e *GroupExpr) Span() source.Span     { return e.Loc }
func (e *FieldExpr) Span() source.Span     { return e.Loc }
func (e *RangeExpr) Span() source.Span     { return e.Loc }
func (e *ProximityExpr) Span() source.Span { return e.Loc }

func (e *TermExpr) Children() []Expr      { return nil }
func (e *AndExpr) Children() []Expr       { return []Expr{e.Left, e.Right} }
func (e *OrExpr) Children() []Expr        { return []Expr{e.Left, e.Right} }
func (e *NotExpr) Children() []Expr       { return []Expr{e.Operand} }
func (e *GroupExpr) Children() []Expr     { return []Expr{e.Inner} }
func (e *FieldExpr) Children() []Expr     { return []Expr{e.Operand} }
func (e *RangeExpr) Children() []Expr     { return nil }
func (e *ProximityExpr) Children() []Expr { return e.Terms }

func (*TermExpr) exprNode()      {}
func (*AndExpr) exprNode()       {}
func (*OrExpr) exprNode()        {}
func (*NotExpr) exprNode()       {}
func (*GroupExpr) exprNode()     {}
func (*FieldExpr) exprNode()     {}
func (*RangeExpr) exprNode()     {}
func (*ProximityExpr) exprNode() {}

// NodeName returns a short name for the node type, used in dumps and traces.
func NodeName(e Expr) string {
	switch e.(type) {
	case *TermExpr:
		return "Term"
	case *AndExpr:
		return "And"
	case *OrExpr:
		return "Or"
	case *NotExpr:
		return "Not"
	case *GroupExpr:
		return "Group"
	case *FieldExpr:
		return "Field"
	case *RangeExpr:
		return "Range"
	case *ProximityExpr:
		return "Proximity"
	case nil:
		return "<nil>"
	}
	return "Unknown"
}

// Unwrap strips any number of enclosing groups.
func Unwrap(e Expr) Expr {
	for {
		g, ok := e.(*GroupExpr)
		if !ok {
			return e
		}
		e = g.Inner
	}
}
