package validate

import (
	"bwqlint/internal/ast"
)

// Rule is one independent check.
//
// CanValidate must be a pure predicate on the node shape and must agree
// with what Validate handles. Validate reports findings through the Result
// and never aborts the pass.
type Rule interface {
	Name() string
	CanValidate(node ast.Expr) bool
	Validate(node ast.Expr, ctx *Context) Result
}

// Describer is implemented by rules that can explain themselves.
type Describer interface {
	Description() string
}

// RuleSet is an ordered collection of rules. Order is significant: it is the
// per-node invocation order.
type RuleSet []Rule

// Names returns the rule names in registration order.
func (rs RuleSet) Names() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

// Find returns the rule with the given name.
func (rs RuleSet) Find(name string) (Rule, bool) {
	for _, r := range rs {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}
