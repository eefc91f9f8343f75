package main

import (
	"fmt"
	"io"

	"bwqlint/internal/diagfmt"
	"bwqlint/internal/driver"
	"bwqlint/internal/validate"
	"bwqlint/internal/validate/rules"
	"bwqlint/internal/version"
)

type renderOpts struct {
	format   string
	color    bool
	quiet    bool
	pathMode diagfmt.PathMode
	// rules feed SARIF rule descriptions
	rules validate.RuleSet
	args  []string
	max   int
}

func toFileDiagnostics(reports []*driver.Report) []diagfmt.FileDiagnostics {
	files := make([]diagfmt.FileDiagnostics, 0, len(reports))
	for _, r := range reports {
		if r == nil {
			continue
		}
		files = append(files, fileDiagnostics(r))
	}
	return files
}

func fileDiagnostics(r *driver.Report) diagfmt.FileDiagnostics {
	return diagfmt.FileDiagnostics{
		Path:        r.Name,
		Source:      r.File,
		Diagnostics: r.Diagnostics,
		Err:         r.Err,
	}
}

// renderReports writes reports in the selected format. Pretty and short
// output end with a totals line unless quiet.
func renderReports(w io.Writer, reports []*driver.Report, ro renderOpts) error {
	switch ro.format {
	case "json":
		files := toFileDiagnostics(reports)
		return diagfmt.JSON(w, files, diagfmt.JSONOpts{
			PathMode:     ro.pathMode,
			IncludeNotes: true,
			Indent:       true,
		})
	case "sarif":
		return diagfmt.Sarif(w, toFileDiagnostics(reports), sarifMeta(ro))
	case "pretty", "short":
		for _, r := range reports {
			if r == nil {
				continue
			}
			if err := renderOne(w, r, ro); err != nil {
				return err
			}
		}
		if ro.quiet {
			return nil
		}
		sum := driver.Summarize(reports)
		return diagfmt.Summary(w, diagfmt.Totals{Files: sum.Files, Errors: sum.Errors, Warnings: sum.Warnings}, ro.color)
	default:
		return fmt.Errorf("unknown format: %s", ro.format)
	}
}

func renderOne(w io.Writer, rep *driver.Report, ro renderOpts) error {
	fd := fileDiagnostics(rep)
	var err error
	if ro.format == "short" {
		err = diagfmt.Short(w, fd, ro.pathMode, "")
	} else {
		err = diagfmt.Pretty(w, fd, diagfmt.PrettyOpts{
			Color:     ro.color,
			Context:   1,
			PathMode:  ro.pathMode,
			ShowNotes: true,
		})
	}
	if err != nil {
		return err
	}
	if rep.Truncated && !ro.quiet {
		_, err = fmt.Fprintf(w, "%s: further diagnostics suppressed (--max-diagnostics %d)\n", rep.Name, ro.max)
	}
	return err
}

func sarifMeta(ro renderOpts) diagfmt.SarifRunMeta {
	descriptions := make(map[string]string, len(ro.rules))
	for _, r := range ro.rules {
		descriptions[r.Name()] = rules.Describe(r)
	}
	return diagfmt.SarifRunMeta{
		ToolName:         "bwqlint",
		ToolVersion:      version.Version,
		InvocationArgs:   ro.args,
		RuleDescriptions: descriptions,
		PathMode:         ro.pathMode,
	}
}
