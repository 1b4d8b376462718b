package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TRrajputDEV/Pixels-sub000/internal/config"
	"github.com/TRrajputDEV/Pixels-sub000/internal/discovery"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "pixels",
	Short:         "Pixels video API and content discovery tooling",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, backfillCmd, classifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadRules returns the rule table at path, or the embedded table when path is empty.
func loadRules(path string) (*discovery.RuleTable, error) {
	if path == "" {
		return discovery.DefaultRules(), nil
	}
	table, err := discovery.LoadRules(path)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}
	return table, nil
}

// rulesPath prefers the --rules flag over RULES_FILE.
func rulesPath(cmd *cobra.Command, cfg *config.Config) string {
	if p, _ := cmd.Flags().GetString("rules"); p != "" {
		return p
	}
	return cfg.RulesFile
}
