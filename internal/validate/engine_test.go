package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/parser"
)

// recordRule reports one warning per term and records the visit order.
type recordRule struct {
	name   string
	visits *[]string
}

func (r recordRule) Name() string { return r.name }

func (r recordRule) CanValidate(node ast.Expr) bool {
	_, ok := node.(*ast.TermExpr)
	return ok
}

func (r recordRule) Validate(node ast.Expr, _ *Context) Result {
	te := node.(*ast.TermExpr)
	*r.visits = append(*r.visits, r.name+":"+te.Term.Value)
	var res Result
	res.Warn(diag.ValWarning, node.Span(), r.name+" saw "+te.Term.Value)
	if te.Term.Value == "bad" {
		res.Error(diag.ValError, node.Span(), r.name+" rejects bad")
	}
	return res
}

type panicRule struct{}

func (panicRule) Name() string                  { return "boom" }
func (panicRule) CanValidate(node ast.Expr) bool { return true }
func (panicRule) Validate(ast.Expr, *Context) Result {
	panic("unreachable variant")
}

func parse(t *testing.T, q string) ast.Expr {
	t.Helper()
	expr, err := parser.ParseQuery(q)
	require.NoError(t, err)
	return expr
}

func TestLintOrder(t *testing.T) {
	var visits []string
	rules := RuleSet{
		recordRule{name: "first", visits: &visits},
		recordRule{name: "second", visits: &visits},
	}
	out := Lint(parse(t, "a OR (bad c)"), rules, nil)

	assert.Equal(t, []string{
		"first:a", "second:a",
		"first:bad", "second:bad",
		"first:c", "second:c",
	}, visits)

	var msgs []string
	for _, d := range out {
		msgs = append(msgs, d.Message)
	}
	// errors precede warnings within one rule invocation
	assert.Equal(t, []string{
		"first saw a", "second saw a",
		"first rejects bad", "first saw bad",
		"second rejects bad", "second saw bad",
		"first saw c", "second saw c",
	}, msgs)
	assert.Equal(t, "first", out[0].Rule)
	assert.Equal(t, "second", out[1].Rule)
}

func TestLintDeterministic(t *testing.T) {
	var visits []string
	rules := RuleSet{recordRule{name: "r", visits: &visits}}
	root := parse(t, `x y "z" NOT w`)
	first := Lint(root, rules, nil)
	for range 5 {
		assert.Equal(t, first, Lint(root, rules, nil))
	}
}

func TestLintRecoversPanics(t *testing.T) {
	var visits []string
	rules := RuleSet{panicRule{}, recordRule{name: "after", visits: &visits}}
	out := Lint(parse(t, "a b"), rules, nil)

	// three nodes for the panic rule, two terms for the recorder
	var panics int
	for _, d := range out {
		if d.Code == diag.IntRulePanic {
			panics++
			assert.Equal(t, diag.SevWarning, d.Severity)
			assert.Contains(t, d.Message, "unreachable variant")
		}
	}
	assert.Equal(t, 3, panics)
	assert.Equal(t, []string{"after:a", "after:b"}, visits)
}

func TestWithSeverity(t *testing.T) {
	var visits []string
	rule := WithSeverity(recordRule{name: "lvl", visits: &visits}, diag.SevError)
	assert.Equal(t, "lvl", rule.Name())

	out := Lint(parse(t, "a"), RuleSet{rule}, nil)
	require.Len(t, out, 1)
	assert.Equal(t, diag.SevError, out[0].Severity)
	assert.Equal(t, diag.ValWarning, out[0].Code)

	down := WithSeverity(recordRule{name: "lvl", visits: &visits}, diag.SevWarning)
	out = Lint(parse(t, "bad"), RuleSet{down}, nil)
	require.Len(t, out, 2)
	for _, d := range out {
		assert.Equal(t, diag.SevWarning, d.Severity)
	}
}

func TestLintNil(t *testing.T) {
	assert.Nil(t, Lint(nil, RuleSet{}, nil))
}

func TestRuleSetLookup(t *testing.T) {
	var visits []string
	rs := RuleSet{recordRule{name: "a", visits: &visits}, recordRule{name: "b", visits: &visits}}
	assert.Equal(t, []string{"a", "b"}, rs.Names())
	_, ok := rs.Find("b")
	assert.True(t, ok)
	_, ok = rs.Find("c")
	assert.False(t, ok)
}

func TestLintBagLimit(t *testing.T) {
	var visits []string
	bag := LintBag(parse(t, "a b c d"), RuleSet{recordRule{name: "r", visits: &visits}}, nil, 2)
	assert.Equal(t, 2, bag.Len())
}

func TestRuleSetFingerprint(t *testing.T) {
	var visits []string
	a := recordRule{name: "a", visits: &visits}
	b := recordRule{name: "b", visits: &visits}

	assert.Equal(t, "a,b", RuleSet{a, b}.Fingerprint())
	assert.Equal(t, "a,b=ERROR", RuleSet{a, WithSeverity(b, diag.SevError)}.Fingerprint())
	assert.NotEqual(t, RuleSet{a, b}.Fingerprint(), RuleSet{b, a}.Fingerprint())
	assert.Equal(t, "", RuleSet{}.Fingerprint())
}
