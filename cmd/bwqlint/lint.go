package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bwqlint/internal/diagfmt"
	"bwqlint/internal/driver"
)

// errFindings makes the process exit with status 1 without an extra
// message; the findings were already printed.
var errFindings = errors.New("lint found errors")

func isSilentExit(err error) bool {
	return errors.Is(err, errFindings)
}

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [paths...]",
	Short: "Lint query files, directories or an inline query",
	Long: `Lint checks boolean search queries. Directories are searched recursively
for *.bwq files, "-" reads a single query from stdin, and --query lints the
given text. The exit status is 1 when any error is reported.`,
	RunE: withRuntime(runLint),
}

func init() {
	lintCmd.Flags().StringP("query", "q", "", "lint this query text instead of files")
	lintCmd.Flags().String("format", "", "output format (pretty|short|json|sarif); default from config")
	lintCmd.Flags().IntP("jobs", "j", 0, "number of files linted in parallel (0 = config or GOMAXPROCS)")
	lintCmd.Flags().Bool("no-warnings", false, "report errors only")
	lintCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	lintCmd.Flags().Bool("cache", false, "reuse results for unchanged queries")
	lintCmd.Flags().Bool("watch", false, "re-lint files when they change")
	lintCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	lintCmd.Flags().String("path-mode", "auto", "path display (auto|absolute|relative|basename)")
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cmd, cfg)
	if err != nil {
		return err
	}

	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return fmt.Errorf("failed to get query flag: %w", err)
	}
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := resolveFormat(formatFlag, cfg)
	if err != nil {
		return err
	}
	if jobs, _ := cmd.Flags().GetInt("jobs"); jobs > 0 {
		opts.Jobs = jobs
	}
	opts.NoWarnings, _ = cmd.Flags().GetBool("no-warnings")
	opts.WarningsAsErrors, _ = cmd.Flags().GetBool("warnings-as-errors")
	if opts.NoWarnings && opts.WarningsAsErrors {
		return errors.New("--no-warnings and --warnings-as-errors are mutually exclusive")
	}
	watch, _ := cmd.Flags().GetBool("watch")
	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	pathModeFlag, _ := cmd.Flags().GetString("path-mode")
	pathMode, ok := diagfmt.ParsePathMode(pathModeFlag)
	if !ok {
		return fmt.Errorf("invalid --path-mode value %q (expected auto|absolute|relative|basename)", pathModeFlag)
	}
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	logger, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if useCache, _ := cmd.Flags().GetBool("cache"); useCache || cfg.Cache {
		opts.Cache = openCache(cfg, logger)
	}
	if cfg.Path != "" {
		logger.Debug("config loaded", zap.String("path", cfg.Path))
	}

	ro := renderOpts{
		format:   format,
		color:    format == "pretty" && useColor(cmd, os.Stdout),
		quiet:    quiet,
		pathMode: pathMode,
		rules:    opts.Rules,
		args:     os.Args,
		max:      opts.MaxDiagnostics,
	}
	out := cmd.OutOrStdout()

	var reports []*driver.Report
	switch {
	case query != "":
		if len(args) > 0 {
			return errors.New("--query cannot be combined with paths")
		}
		reports = []*driver.Report{driver.Lint(ctx, "<query>", query, opts)}
	case len(args) == 1 && args[0] == "-":
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		reports = []*driver.Report{driver.Lint(ctx, "<stdin>", string(text), opts)}
	case len(args) == 0:
		return errors.New("nothing to lint: pass paths, \"-\" for stdin, or --query")
	default:
		files, err := driver.CollectPaths(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no %s files found", driver.QueryExt)
		}
		if watch {
			return runWatch(ctx, out, args, files, opts, ro, logger)
		}
		if shouldUseTUI(mode, len(files)) && format != "json" && format != "sarif" {
			reports, err = runLintWithUI(ctx, "bwqlint lint", files, opts)
		} else {
			reports, err = driver.LintPaths(ctx, files, opts)
		}
		if err != nil {
			return err
		}
	}

	if err := renderReports(out, reports, ro); err != nil {
		return err
	}
	if opts.Timings {
		fmt.Fprint(cmd.ErrOrStderr(), driver.TimingSummary(reports).Summary())
	}
	for _, r := range reports {
		if r.HasErrors() {
			return errFindings
		}
	}
	return nil
}

// runWatch lints files once, then re-lints every changed query until
// interrupted.
func runWatch(ctx context.Context, out io.Writer, paths, files []string, opts driver.Options, ro renderOpts, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if ro.format == "json" || ro.format == "sarif" {
		return fmt.Errorf("--watch supports pretty and short output only")
	}
	reports, err := driver.LintPaths(ctx, files, opts)
	if err != nil {
		return err
	}
	if err := renderReports(out, reports, ro); err != nil {
		return err
	}

	w, err := driver.NewWatcher(paths, opts, logger, func(rep *driver.Report) {
		if len(rep.Diagnostics) == 0 && rep.Err == nil && !ro.quiet {
			fmt.Fprintf(out, "%s: ok\n", rep.Name)
			return
		}
		if err := renderOne(out, rep, ro); err != nil {
			logger.Warn("render failed", zap.String("path", rep.Name), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	logger.Info("watching for changes", zap.Strings("paths", paths))
	return w.Run(ctx)
}
