package driver

import (
	"bwqlint/internal/ast"
	"bwqlint/internal/diag"
	"bwqlint/internal/observ"
	"bwqlint/internal/source"
)

// Report is the outcome of linting one query.
type Report struct {
	// Name is the file path, "<stdin>" or "<query>".
	Name string
	File *source.File
	// Root is nil when lexing or parsing failed, or on a cache hit.
	Root ast.Expr
	// Fatal holds the single lexer or parser failure, if any. It is also
	// the first entry of Diagnostics.
	Fatal *diag.Diagnostic
	// Diagnostics in engine order.
	Diagnostics []diag.Diagnostic
	// Truncated is set when MaxDiagnostics dropped findings.
	Truncated bool
	// Cached is set when the diagnostics came from the disk cache.
	Cached bool
	// Timing is filled when Options.Timings is set.
	Timing *observ.Report
	// Err is an I/O failure reading the query; nothing else is set then.
	Err error
}

// HasErrors reports whether the query failed to lint cleanly.
func (r *Report) HasErrors() bool {
	if r == nil {
		return false
	}
	if r.Err != nil || r.Fatal != nil {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics at sev.
func (r *Report) Count(sev diag.Severity) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Summary totals a batch of reports.
type Summary struct {
	Files    int
	Failed   int // files with errors
	Errors   int
	Warnings int
	Infos    int
	Cached   int
}

// Summarize totals reports.
func Summarize(reports []*Report) Summary {
	var s Summary
	for _, r := range reports {
		if r == nil {
			continue
		}
		s.Files++
		if r.HasErrors() {
			s.Failed++
		}
		if r.Err != nil {
			s.Errors++
		}
		if r.Cached {
			s.Cached++
		}
		s.Errors += r.Count(diag.SevError)
		s.Warnings += r.Count(diag.SevWarning)
		s.Infos += r.Count(diag.SevInfo)
	}
	return s
}

// TimingSummary merges the per-query timings of reports.
func TimingSummary(reports []*Report) observ.Report {
	var total observ.Report
	for _, r := range reports {
		if r != nil && r.Timing != nil {
			total = total.Merge(*r.Timing)
		}
	}
	return total
}
