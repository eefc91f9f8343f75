package validate

import (
	"fmt"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
)

// Lint runs rules over root and returns every finding in engine order.
// A nil ctx is replaced by NewContext(root, nil).
func Lint(root ast.Expr, rules RuleSet, ctx *Context) []diag.Diagnostic {
	if root == nil {
		return nil
	}
	if ctx == nil {
		ctx = NewContext(root, nil)
	}
	if ctx.Root == nil {
		ctx.Root = root
	}
	if ctx.Fields == nil {
		ctx.Fields = ast.DefaultFields()
	}

	var out []diag.Diagnostic
	ast.Walk(root, func(node ast.Expr) bool {
		for _, rule := range rules {
			res, ok := run(rule, node, ctx)
			if !ok {
				continue
			}
			name := rule.Name()
			for _, d := range res.Errors {
				out = append(out, d.WithRule(name))
			}
			for _, d := range res.Warnings {
				out = append(out, d.WithRule(name))
			}
		}
		return true
	})
	return out
}

// LintBag runs Lint and collects into a bag of at most limit diagnostics.
func LintBag(root ast.Expr, rules RuleSet, ctx *Context, limit int) *diag.Bag {
	bag := diag.NewBag(limit)
	bag.AddAll(Lint(root, rules, ctx))
	return bag
}

// run invokes one rule on one node. A panicking rule becomes a single
// internal warning at the node instead of aborting the pass.
func run(rule Rule, node ast.Expr, ctx *Context) (res Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			res.Warn(diag.IntRulePanic, node.Span(),
				fmt.Sprintf("rule %q failed on %s node: %v", rule.Name(), ast.NodeName(node), r))
			ok = true
		}
	}()
	if !rule.CanValidate(node) {
		return Result{}, false
	}
	return rule.Validate(node, ctx), true
}
