package rules

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
)

// FieldValueRule checks scalar values of typed fields: language and country
// codes, booleans, enums and integers.
type FieldValueRule struct{}

func NewFieldValueRule() validate.Rule { return &FieldValueRule{} }

func (r *FieldValueRule) Name() string { return "field-value" }

func (r *FieldValueRule) Description() string {
	return "language, country, boolean, enum and integer field values"
}

func (r *FieldValueRule) CanValidate(node ast.Expr) bool {
	_, ok := node.(*ast.FieldExpr)
	return ok
}

func (r *FieldValueRule) Validate(node ast.Expr, ctx *validate.Context) validate.Result {
	fe := node.(*ast.FieldExpr)
	var res validate.Result

	spec, ok := ctx.FieldSpec(fe.Field)
	if !ok || spec.Value == ast.ValueText {
		return res
	}
	ast.Walk(fe.Operand, func(e ast.Expr) bool {
		te, ok := e.(*ast.TermExpr)
		if !ok {
			return true
		}
		switch te.Term.Kind {
		case ast.TermWildcard, ast.TermReplacement:
			return true
		}
		if msg := checkValue(spec, te.Term.Value); msg != "" {
			res.Error(diag.ValFieldValue, te.Loc, msg)
		}
		return true
	})
	return res
}

// checkValue returns a message for an invalid value, "" when it is fine.
func checkValue(spec ast.FieldSpec, value string) string {
	v := strings.TrimSpace(value)
	switch spec.Value {
	case ast.ValueInteger:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Sprintf("Value '%s' for %s must be an integer", value, spec.Name)
		}
		if n < 0 {
			return fmt.Sprintf("Value %d for %s cannot be negative", n, spec.Name)
		}
	case ast.ValueBool:
		if v != "true" && v != "false" {
			return fmt.Sprintf("Value '%s' for %s must be true or false", value, spec.Name)
		}
	case ast.ValueEnum:
		if !slices.Contains(spec.Enum, strings.ToLower(v)) {
			return fmt.Sprintf("Value '%s' for %s must be one of: %s", value, spec.Name, strings.Join(spec.Enum, ", "))
		}
	case ast.ValueLanguage:
		if len(v) != 2 {
			return fmt.Sprintf("Language '%s' must be a two-letter ISO 639-1 code such as 'en'", value)
		}
		if _, err := language.ParseBase(v); err != nil {
			return fmt.Sprintf("Unknown language code '%s'", value)
		}
	case ast.ValueCountry:
		region, err := language.ParseRegion(v)
		if err != nil || !region.IsCountry() {
			return fmt.Sprintf("Unknown country code '%s': expected an ISO 3166 code such as 'gb' or 'usa'", value)
		}
	}
	return ""
}
