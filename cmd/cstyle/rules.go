package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cstyle/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule catalog with defaults",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleParamJSON struct {
	Name    string `json:"name"`
	Default any    `json:"default"`
}

type ruleJSON struct {
	Name     string          `json:"name"`
	Title    string          `json:"title"`
	Severity string          `json:"severity"`
	Enabled  bool            `json:"enabled"`
	Params   []ruleParamJSON `json:"params,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	catalog := rules.Catalog()
	switch format {
	case "json":
		payload := make([]ruleJSON, 0, len(catalog))
		for _, desc := range catalog {
			rj := ruleJSON{
				Name:     desc.Code.ID(),
				Title:    desc.Title,
				Severity: desc.DefaultSeverity.String(),
				Enabled:  desc.DefaultEnabled,
			}
			for _, p := range desc.Params {
				rj.Params = append(rj.Params, ruleParamJSON{Name: p.Name, Default: p.Default})
			}
			payload = append(payload, rj)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	case "pretty":
		fmt.Printf("%-32s %-8s %-8s %s\n", "RULE", "SEV", "ENABLED", "TITLE")
		for _, desc := range catalog {
			fmt.Printf("%-32s %-8s %-8t %s\n",
				desc.Code.ID(), desc.DefaultSeverity, desc.DefaultEnabled, desc.Title)
			for _, p := range desc.Params {
				fmt.Printf("%-32s   %s = %v\n", "", p.Name, p.Default)
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
