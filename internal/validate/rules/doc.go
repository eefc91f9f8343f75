// Package rules contains the built-in validation rules and the registry
// that assembles them into an ordered validate.RuleSet.
package rules
