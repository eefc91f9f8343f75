package driver

import (
	"strconv"

	"bwqlint/internal/ast"
	"bwqlint/internal/parser"
	"bwqlint/internal/validate"
	"bwqlint/internal/validate/rules"
)

// QueryExt is the extension picked up when a directory is linted.
const QueryExt = ".bwq"

// Options controls a lint run.
type Options struct {
	// Rules to run; nil means rules.Default().
	Rules validate.RuleSet
	// Fields resolves field names; nil means ast.DefaultFields().
	Fields *ast.FieldRegistry
	// MaxDiagnostics caps findings per query (0 means no cap).
	MaxDiagnostics int
	// MaxDepth bounds parser nesting (0 means parser default).
	MaxDepth int
	// Jobs bounds parallel linting in LintPaths (0 means GOMAXPROCS).
	Jobs int

	// NoWarnings drops warnings and infos from reports.
	NoWarnings bool
	// WarningsAsErrors raises warnings to errors.
	WarningsAsErrors bool

	// Cache, when set, short-circuits queries linted before.
	Cache *DiskCache
	// Timings records per-phase durations into Report.Timing.
	Timings bool
	// Progress receives per-file events from LintPaths.
	Progress ProgressSink
}

func (o Options) withDefaults() Options {
	if o.Rules == nil {
		o.Rules = rules.Default()
	}
	if o.Fields == nil {
		o.Fields = ast.DefaultFields()
	}
	return o
}

// cacheFingerprint covers every option that changes raw findings: the
// rules, the parser depth limit and the field registry.
func (o Options) cacheFingerprint() string {
	depth := o.MaxDepth
	if depth <= 0 {
		depth = parser.DefaultMaxDepth
	}
	return o.Rules.Fingerprint() + "\x00depth=" + strconv.Itoa(depth) + "\x00fields=" + o.Fields.Fingerprint()
}
