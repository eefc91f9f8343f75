package diagfmt

import (
	"encoding/json"
	"io"

	"bwqlint/internal/diag"
	"bwqlint/internal/source"
)

// PositionJSON is a 1-based line/column plus a 0-based byte offset.
type PositionJSON struct {
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
	Offset uint32 `json:"offset"`
}

type SpanJSON struct {
	Start PositionJSON `json:"start"`
	End   PositionJSON `json:"end"`
}

type NoteJSON struct {
	Message string    `json:"message"`
	Span    *SpanJSON `json:"span,omitempty"`
}

// DiagnosticJSON is the stable per-diagnostic schema.
type DiagnosticJSON struct {
	Severity string     `json:"severity"`
	Kind     string     `json:"kind"`
	Code     string     `json:"code"`
	Rule     string     `json:"rule,omitempty"`
	Message  string     `json:"message"`
	Span     SpanJSON   `json:"span"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

type FileJSON struct {
	Path        string           `json:"path"`
	Error       string           `json:"error,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
}

// DiagnosticsOutput is the root of JSON output.
type DiagnosticsOutput struct {
	Files    []FileJSON `json:"files"`
	Count    int        `json:"count"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
}

func makePosition(p source.Position) PositionJSON {
	return PositionJSON{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func makeSpan(sp source.Span) SpanJSON {
	return SpanJSON{Start: makePosition(sp.Start), End: makePosition(sp.End)}
}

// MakeDiagnosticJSON converts one diagnostic.
func MakeDiagnosticJSON(d diag.Diagnostic, includeNotes bool) DiagnosticJSON {
	out := DiagnosticJSON{
		Severity: d.Severity.String(),
		Kind:     d.Kind(),
		Code:     d.Code.ID(),
		Rule:     d.Rule,
		Message:  d.Message,
		Span:     makeSpan(d.Span),
	}
	if includeNotes && len(d.Notes) > 0 {
		out.Notes = make([]NoteJSON, len(d.Notes))
		for i, n := range d.Notes {
			out.Notes[i] = NoteJSON{Message: n.Msg}
			if n.Span.Start.Line > 0 {
				sp := makeSpan(n.Span)
				out.Notes[i].Span = &sp
			}
		}
	}
	return out
}

// BuildDiagnosticsOutput assembles the JSON document without encoding it.
func BuildDiagnosticsOutput(files []FileDiagnostics, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]FileJSON, 0, len(files))}
	for _, fd := range files {
		fj := FileJSON{
			Path:        fd.displayPath(opts.PathMode, opts.BaseDir),
			Diagnostics: make([]DiagnosticJSON, 0, len(fd.Diagnostics)),
		}
		if fd.Err != nil {
			fj.Error = fd.Err.Error()
			out.Errors++
		}
		items := fd.Diagnostics
		if opts.Max > 0 && opts.Max < len(items) {
			items = items[:opts.Max]
		}
		for _, d := range items {
			fj.Diagnostics = append(fj.Diagnostics, MakeDiagnosticJSON(d, opts.IncludeNotes))
			switch d.Severity {
			case diag.SevError:
				out.Errors++
			case diag.SevWarning:
				out.Warnings++
			}
		}
		out.Count += len(fj.Diagnostics)
		out.Files = append(out.Files, fj)
	}
	return out
}

// JSON writes the diagnostics of all files as one JSON document.
func JSON(w io.Writer, files []FileDiagnostics, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildDiagnosticsOutput(files, opts))
}
