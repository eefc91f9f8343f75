package diag

import (
	"bwqlint/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Rule     string
	Message  string
	Span     source.Span
	Notes    []Note
}

func New(sev Severity, code Code, span source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Span:     span,
		Message:  msg,
	}
}

func NewError(code Code, span source.Span, msg string) Diagnostic {
	return New(SevError, code, span, msg)
}

func NewWarning(code Code, span source.Span, msg string) Diagnostic {
	return New(SevWarning, code, span, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithRule(rule string) Diagnostic {
	d.Rule = rule
	return d
}

// Kind is shorthand for d.Code.Kind().
func (d Diagnostic) Kind() string {
	return d.Code.Kind()
}

func (d Diagnostic) IsError() bool {
	return d.Severity >= SevError
}
