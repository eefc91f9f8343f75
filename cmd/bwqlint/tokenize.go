package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bwqlint/internal/diagfmt"
	"bwqlint/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.bwq|-]",
	Short: "Print the tokens of a query",
	Long:  `Tokenize breaks a query down into the tokens the parser sees`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  withRuntime(runTokenize),
}

func init() {
	addInputFlags(tokenizeCmd)
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("keep-whitespace", false, "include whitespace tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	keepWhitespace, err := cmd.Flags().GetBool("keep-whitespace")
	if err != nil {
		return fmt.Errorf("failed to get keep-whitespace flag: %w", err)
	}

	f, err := readSource(cmd, args)
	if err != nil {
		return err
	}
	result := driver.Tokenize(f, keepWhitespace)

	// Выводим токены в выбранном формате
	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	return reportFatal(cmd, f.Path, result.File, result.Fatal)
}
