package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bwqlint/internal/diag"
	"bwqlint/internal/source"
)

type palette struct {
	err, warn, info, code, gutter, note, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgGreen),
		path:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.note, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty prints the diagnostics of one query in the order given:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message> [rule]
//	   1 | source line
//	     | ^~~~
//
// Notes follow with "= note:" when ShowNotes is set.
func Pretty(w io.Writer, fd FileDiagnostics, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	path := fd.displayPath(opts.PathMode, opts.BaseDir)

	if fd.Err != nil {
		_, err := fmt.Fprintf(w, "%s: %s %s\n", pal.path.Sprint(path), pal.err.Sprint("ERROR"), fd.Err)
		return err
	}

	for _, d := range fd.Diagnostics {
		if err := prettyOne(w, path, fd.Source, d, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, path string, src *source.File, d diag.Diagnostic, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	sev := pal.severity(d.Severity)

	loc := path
	if d.Span.Start.Line > 0 {
		loc = fmt.Sprintf("%s:%d:%d", path, d.Span.Start.Line, d.Span.Start.Column)
	}
	fmt.Fprintf(&sb, "%s: %s %s: %s", pal.path.Sprint(loc), sev.Sprint(d.Severity.String()), pal.code.Sprint(d.Code.ID()), d.Message)
	if d.Rule != "" {
		fmt.Fprintf(&sb, " [%s]", d.Rule)
	}
	sb.WriteByte('\n')

	if src != nil && d.Span.Start.Line > 0 {
		writeSnippet(&sb, src, d.Span, opts, pal, sev)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString("  ")
			sb.WriteString(pal.note.Sprint("= note:"))
			sb.WriteByte(' ')
			sb.WriteString(n.Msg)
			if n.Span.Start.Line > 0 {
				fmt.Fprintf(&sb, " (at %s)", n.Span.Start)
			}
			sb.WriteByte('\n')
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSnippet(sb *strings.Builder, src *source.File, sp source.Span, opts PrettyOpts, pal palette, sev *color.Color) {
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	line := sp.Start.Line
	first := line
	if opts.Context > 0 && uint32(opts.Context) < line {
		first = line - uint32(opts.Context)
	} else if opts.Context > 0 {
		first = 1
	}
	width := len(strconv.FormatUint(uint64(line), 10))

	blank := strings.Repeat(" ", width+1)
	for l := first; l <= line; l++ {
		fmt.Fprintf(sb, "%s %s %s\n", pal.gutter.Sprintf("%*d", width+1, l), pal.gutter.Sprint("|"), expandTabs(src.Line(l), tab))
	}

	text := []rune(src.Line(line))
	col := int(sp.Start.Column) - 1
	col = max(0, min(col, len(text)))
	end := len(text)
	if sp.End.Line == line {
		end = max(col, min(int(sp.End.Column)-1, len(text)))
	}
	pad := runewidth.StringWidth(expandTabs(string(text[:col]), tab))
	under := runewidth.StringWidth(expandTabs(string(text[col:end]), tab))
	if under < 1 {
		under = 1
	}
	marker := "^" + strings.Repeat("~", under-1)
	fmt.Fprintf(sb, "%s %s %s%s\n", blank, pal.gutter.Sprint("|"), strings.Repeat(" ", pad), sev.Sprint(marker))
}

func expandTabs(s string, width int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

// Totals is the closing line of a pretty or short report.
type Totals struct {
	Files    int
	Errors   int
	Warnings int
}

// Summary prints e.g. "2 errors, 1 warning in 3 files".
func Summary(w io.Writer, t Totals, colored bool) error {
	pal := newPalette(colored)
	errs := plural(t.Errors, "error")
	warns := plural(t.Warnings, "warning")
	if t.Errors > 0 {
		errs = pal.err.Sprint(errs)
	}
	if t.Warnings > 0 {
		warns = pal.warn.Sprint(warns)
	}
	_, err := fmt.Fprintf(w, "%s, %s in %s\n", errs, warns, plural(t.Files, "file"))
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
