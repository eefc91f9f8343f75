package validate

import (
	"strings"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
)

// WithSeverity wraps rule so that every finding is reported at sev.
// Findings keep their code; they move between Errors and Warnings.
func WithSeverity(rule Rule, sev diag.Severity) Rule {
	return &leveled{Rule: rule, sev: sev}
}

type leveled struct {
	Rule
	sev diag.Severity
}

func (l *leveled) Validate(node ast.Expr, ctx *Context) Result {
	res := l.Rule.Validate(node, ctx)
	var out Result
	for _, group := range [][]diag.Diagnostic{res.Errors, res.Warnings} {
		for _, d := range group {
			d.Severity = l.sev
			if l.sev >= diag.SevError {
				out.Errors = append(out.Errors, d)
			} else {
				out.Warnings = append(out.Warnings, d)
			}
		}
	}
	return out
}

// Unwrap returns the wrapped rule.
func (l *leveled) Unwrap() Rule {
	return l.Rule
}

// Description forwards to the wrapped rule when it has one.
func (l *leveled) Description() string {
	if d, ok := l.Rule.(Describer); ok {
		return d.Description()
	}
	return ""
}

// Fingerprint identifies the rule selection and severity overrides of rs.
// It changes whenever the same query could lint differently.
func (rs RuleSet) Fingerprint() string {
	var sb strings.Builder
	for i, r := range rs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(r.Name())
		if l, ok := r.(*leveled); ok {
			sb.WriteByte('=')
			sb.WriteString(l.sev.String())
		}
	}
	return sb.String()
}
