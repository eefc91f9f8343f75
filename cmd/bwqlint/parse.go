package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bwqlint/internal/diag"
	"bwqlint/internal/diagfmt"
	"bwqlint/internal/driver"
	"bwqlint/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file.bwq|-]",
	Short: "Print the syntax tree of a query",
	Long:  `Parse builds the syntax tree of a query without running any rules`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  withRuntime(runParse),
}

func init() {
	addInputFlags(parseCmd)
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "tree", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	f, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	result := driver.Parse(f, driver.Options{})
	if result.Fatal != nil {
		return reportFatal(cmd, f.Path, f, result.Fatal)
	}

	out := cmd.OutOrStdout()
	switch format {
	case "tree":
		return diagfmt.FormatASTTree(out, result.Root)
	case "json":
		return diagfmt.FormatASTJSON(out, result.Root)
	default:
		return diagfmt.FormatASTPretty(out, result.Root)
	}
}

// reportFatal prints a lexer or parser failure to stderr and turns it into
// exit status 1.
func reportFatal(cmd *cobra.Command, path string, f *source.File, fatal *diag.Diagnostic) error {
	if fatal == nil {
		return nil
	}
	fd := diagfmt.FileDiagnostics{Path: path, Source: f, Diagnostics: []diag.Diagnostic{*fatal}}
	opts := diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr), Context: 1, ShowNotes: true}
	if err := diagfmt.Pretty(cmd.ErrOrStderr(), fd, opts); err != nil {
		return err
	}
	return errFindings
}
