package diagfmt

import (
	"fmt"
	"io"
	"strings"
)

// Short prints one line per diagnostic, suitable for editors and grep:
//
//	path:line:col: severity CODE: message (rule)
func Short(w io.Writer, fd FileDiagnostics, mode PathMode, baseDir string) error {
	path := fd.displayPath(mode, baseDir)
	if fd.Err != nil {
		_, err := fmt.Fprintf(w, "%s: error: %v\n", path, fd.Err)
		return err
	}
	var sb strings.Builder
	for _, d := range fd.Diagnostics {
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s",
			path, d.Span.Start.Line, d.Span.Start.Column,
			strings.ToLower(d.Severity.String()), d.Code.ID(), d.Message)
		if d.Rule != "" {
			fmt.Fprintf(&sb, " (%s)", d.Rule)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
