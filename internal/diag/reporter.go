package diag

import "bwqlint/internal/source"

// Reporter receives diagnostics from a producer.
// Implementations: BagReporter (stores into a Bag) and NopReporter.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, span source.Span, msg string) {
	if r != nil {
		r.Report(NewError(code, span, msg))
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, span source.Span, msg string) {
	if r != nil {
		r.Report(NewWarning(code, span, msg))
	}
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(d)
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Diagnostic) {}
