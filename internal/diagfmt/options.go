package diagfmt

import (
	"bwqlint/internal/diag"
	"bwqlint/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths as given on the command line.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode converts a flag value to a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown above the reported one.
	Context  int
	PathMode PathMode
	BaseDir  string // for PathModeRelative; empty means cwd
	// TabWidth expands tabs in snippets (0 means 4).
	TabWidth  int
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode PathMode
	BaseDir  string
	// Max caps the printed diagnostics per file; 0 means all.
	Max          int
	IncludeNotes bool
	Indent       bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
	// RuleDescriptions maps rule names to their one-line descriptions.
	RuleDescriptions map[string]string
	PathMode         PathMode
	BaseDir          string
}

// FileDiagnostics is the unit every renderer consumes: one query and its
// findings.
type FileDiagnostics struct {
	// Path labels the query when Source is nil.
	Path        string
	Source      *source.File
	Diagnostics []diag.Diagnostic
	// Err is a load failure; Diagnostics is empty then.
	Err error
}

func (fd FileDiagnostics) displayPath(mode PathMode, baseDir string) string {
	if fd.Source == nil {
		return fd.Path
	}
	return fd.Source.DisplayPath(mode.String(), baseDir)
}
