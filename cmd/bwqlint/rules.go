package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bwqlint/internal/validate/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in rules",
	Long:  `Rules lists every built-in rule and whether the active config enables it`,
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().Bool("json", false, "print the list as JSON")
}

type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

func runRules(cmd *cobra.Command, _ []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("failed to get json flag: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	infos := collectRules(cfg.RuleOverrides())
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}
	return printRules(cmd.OutOrStdout(), infos)
}

// collectRules lists the registry with the configured severity of each rule.
func collectRules(overrides map[string]string) []ruleInfo {
	all := rules.Default()
	out := make([]ruleInfo, 0, len(all))
	for _, r := range all {
		sev := overrides[r.Name()]
		if sev == "" {
			sev = rules.SeverityDefault
		}
		out = append(out, ruleInfo{Name: r.Name(), Description: rules.Describe(r), Severity: sev})
	}
	return out
}

func printRules(w io.Writer, infos []ruleInfo) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RULE\tSEVERITY\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Severity, info.Description)
	}
	return tw.Flush()
}
