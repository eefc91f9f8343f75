package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bwqlint/internal/diag"
	"bwqlint/internal/lexer"
	"bwqlint/internal/observ"
	"bwqlint/internal/parser"
	"bwqlint/internal/source"
	"bwqlint/internal/token"
	"bwqlint/internal/trace"
	"bwqlint/internal/validate"
)

// Lint lints an in-memory query. name labels the report ("<query>" if empty).
func Lint(ctx context.Context, name, text string, opts Options) *Report {
	if name == "" {
		name = "<query>"
	}
	return LintSource(ctx, source.NewVirtual(name, text), opts)
}

// LintFile loads and lints one query file. A read failure is returned in
// Report.Err.
func LintFile(ctx context.Context, path string, opts Options) *Report {
	f, err := source.Load(path)
	if err != nil {
		return &Report{Name: path, Err: err}
	}
	return LintSource(ctx, f, opts)
}

// LintSource runs lex -> parse -> validate over f.
func LintSource(ctx context.Context, f *source.File, opts Options) *Report {
	opts = opts.withDefaults()
	rep := &Report{Name: f.Path, File: f}
	if err := ctx.Err(); err != nil {
		rep.Err = err
		return rep
	}

	ctx, span := trace.Start(ctx, trace.ScopeQuery, "query:"+f.Path)
	defer func() {
		span.WithExtra("diagnostics", strconv.Itoa(len(rep.Diagnostics)))
		span.End(verdict(rep))
	}()

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}

	raw, fatal, cached := lookupCache(ctx, timer, f, opts)
	if !cached {
		raw, fatal = runPipeline(ctx, timer, f, opts, rep)
		storeCache(ctx, timer, f, opts, raw, fatal)
	}
	rep.Cached = cached

	finish(rep, raw, fatal, opts)
	if timer != nil {
		tr := timer.Report()
		rep.Timing = &tr
	}
	return rep
}

// runPipeline returns the raw findings; fatal marks raw[0] as the
// lexer/parser failure.
func runPipeline(ctx context.Context, timer *observ.Timer, f *source.File, opts Options, rep *Report) ([]diag.Diagnostic, bool) {
	var (
		toks []token.Token
		err  error
	)
	pass(ctx, timer, "lex", func() string {
		toks, err = lexer.TokenizeFile(f, lexer.Options{})
		return strconv.Itoa(len(toks)) + " tokens"
	})
	if err != nil {
		return []diag.Diagnostic{fatalDiagnostic(err)}, true
	}

	pass(ctx, timer, "parse", func() string {
		rep.Root, err = parser.Parse(toks, parser.Options{MaxDepth: opts.MaxDepth, Fields: opts.Fields})
		return ""
	})
	if err != nil {
		return []diag.Diagnostic{fatalDiagnostic(err)}, true
	}

	var found []diag.Diagnostic
	pass(ctx, timer, "validate", func() string {
		vctx := &validate.Context{Root: rep.Root, Fields: opts.Fields, Source: f}
		found = validate.Lint(rep.Root, opts.Rules, vctx)
		return strconv.Itoa(len(found)) + " findings"
	})
	for _, d := range found {
		trace.Point(ctx, trace.ScopeRule, d.Rule, d.Code.ID()+" "+d.Span.String())
	}
	return found, false
}

// pass runs fn as a timed, traced phase.
func pass(ctx context.Context, timer *observ.Timer, name string, fn func() string) {
	_, span := trace.Start(ctx, trace.ScopePass, name)
	idx := timer.Begin(name)
	note := fn()
	timer.End(idx, note)
	span.End(note)
}

// fatalDiagnostic converts a lexer or parser failure into its diagnostic.
func fatalDiagnostic(err error) diag.Diagnostic {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Diagnostic()
	}
	var parseErr *parser.Error
	if errors.As(err, &parseErr) {
		return parseErr.Diagnostic()
	}
	return diag.NewError(diag.SynUnexpectedToken, source.Span{}, fmt.Sprintf("parse failed: %v", err))
}

// finish applies the warning policy and the diagnostics cap.
func finish(rep *Report, raw []diag.Diagnostic, fatal bool, opts Options) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	for _, d := range raw {
		if d.Severity < diag.SevError {
			if opts.NoWarnings {
				continue
			}
			if opts.WarningsAsErrors {
				d.Severity = diag.SevError
			}
		}
		if !bag.Add(d) {
			rep.Truncated = true
		}
	}
	rep.Diagnostics = bag.Items()
	if fatal && len(rep.Diagnostics) > 0 {
		rep.Fatal = &rep.Diagnostics[0]
	}
}

func verdict(rep *Report) string {
	switch {
	case rep.Err != nil:
		return "error: " + rep.Err.Error()
	case rep.Fatal != nil:
		return "fatal " + rep.Fatal.Code.ID()
	case rep.Cached:
		return "cached"
	default:
		return "ok"
	}
}
