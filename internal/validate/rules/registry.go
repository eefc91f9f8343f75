package rules

import (
	"fmt"
	"sort"
	"strings"

	"bwqlint/internal/diag"
	"bwqlint/internal/validate"
)

type ruleConstructor func() validate.Rule

// allRuleConstructors lists every built-in rule in registration order.
var allRuleConstructors = []struct {
	name string
	ctor ruleConstructor
}{
	{"wildcard-performance", NewWildcardPerformanceRule},
	{"short-term", NewShortTermRule},
	{"range-performance", NewRangePerformanceRule},
	{"range-bounds", NewRangeBoundsRule},
	{"proximity-distance", NewProximityDistanceRule},
	{"pure-negation", NewPureNegationRule},
	{"field-value", NewFieldValueRule},
	{"operator-case", NewOperatorCaseRule},
}

// Special override values for Build.
const (
	// SeverityOff disables a rule.
	SeverityOff = "off"
	// SeverityDefault keeps the rule's own severities.
	SeverityDefault = "default"
)

// Names returns all built-in rule names in registration order.
func Names() []string {
	out := make([]string, len(allRuleConstructors))
	for i, rc := range allRuleConstructors {
		out[i] = rc.name
	}
	return out
}

// Default returns every built-in rule with its own severities.
func Default() validate.RuleSet {
	rs := make(validate.RuleSet, 0, len(allRuleConstructors))
	for _, rc := range allRuleConstructors {
		rs = append(rs, rc.ctor())
	}
	return rs
}

// Build returns the built-in rules with overrides applied. An override maps
// a rule name to "off", "default", "error", "warning" or "info". Registration order is
// kept regardless of the override order.
func Build(overrides map[string]string) (validate.RuleSet, error) {
	known := make(map[string]bool, len(allRuleConstructors))
	for _, rc := range allRuleConstructors {
		known[rc.name] = true
	}
	var unknown []string
	for name := range overrides {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown rule(s): %s (available: %s)",
			strings.Join(unknown, ", "), strings.Join(Names(), ", "))
	}

	rs := make(validate.RuleSet, 0, len(allRuleConstructors))
	for _, rc := range allRuleConstructors {
		level, ok := overrides[rc.name]
		if !ok || level == "" || strings.EqualFold(level, SeverityDefault) {
			rs = append(rs, rc.ctor())
			continue
		}
		if strings.EqualFold(level, SeverityOff) {
			continue
		}
		sev, err := diag.ParseSeverity(level)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rc.name, err)
		}
		rs = append(rs, validate.WithSeverity(rc.ctor(), sev))
	}
	return rs, nil
}

// Describe returns the description of a rule, or "" when it has none.
func Describe(r validate.Rule) string {
	if d, ok := r.(validate.Describer); ok {
		return d.Description()
	}
	return ""
}
