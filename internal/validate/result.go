package validate

import (
	"bwqlint/internal/diag"
	"bwqlint/internal/source"
)

// Result accumulates the findings of one rule on one node.
type Result struct {
	Errors   []diag.Diagnostic
	Warnings []diag.Diagnostic
}

// Error records an error finding.
func (r *Result) Error(code diag.Code, sp source.Span, msg string) {
	r.Errors = append(r.Errors, diag.NewError(code, sp, msg))
}

// Warn records a warning finding.
func (r *Result) Warn(code diag.Code, sp source.Span, msg string) {
	r.Warnings = append(r.Warnings, diag.NewWarning(code, sp, msg))
}

// Merge appends other's findings to r.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

func (r Result) Empty() bool {
	return len(r.Errors) == 0 && len(r.Warnings) == 0
}

// Len returns the number of findings.
func (r Result) Len() int {
	return len(r.Errors) + len(r.Warnings)
}
