package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bwqlint/internal/source"
)

// addInputFlags registers --query for commands that take one query.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "use this query text instead of a file")
}

// readSource returns the single query named by --query, "-" (stdin) or a
// file argument.
func readSource(cmd *cobra.Command, args []string) (*source.File, error) {
	query, err := cmd.Flags().GetString("query")
	if err != nil {
		return nil, fmt.Errorf("failed to get query flag: %w", err)
	}
	switch {
	case query != "":
		if len(args) > 0 {
			return nil, errors.New("--query cannot be combined with a file argument")
		}
		return source.NewVirtual("<query>", query), nil
	case len(args) == 0:
		return nil, errors.New("expected a file, \"-\" for stdin, or --query")
	case args[0] == "-":
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return source.NewVirtual("<stdin>", string(text)), nil
	default:
		return source.Load(args[0])
	}
}
