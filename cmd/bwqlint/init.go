package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"bwqlint/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter bwqlint config",
	Long: `Init writes bwqlint.toml (or .bwqlint.yaml with --yaml) listing every
built-in rule at its default severity. If [dir] is omitted, the current
directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config")
	initCmd.Flags().Bool("yaml", false, "write .bwqlint.yaml instead of bwqlint.toml")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}
	asYAML, err := cmd.Flags().GetBool("yaml")
	if err != nil {
		return fmt.Errorf("failed to get yaml flag: %w", err)
	}

	name := config.TOMLName
	if asYAML {
		name = config.YAMLName
	}
	path := filepath.Join(dir, name)
	if err := config.Write(path, config.Starter(), force); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
