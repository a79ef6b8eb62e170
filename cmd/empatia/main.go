// Package main provides the entry point for the empatia CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/empatia-tech/empatia/cmd/empatia/commands"
	"github.com/empatia-tech/empatia/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "empatia",
		Short: "Empatia - code empathy analysis between repositories",
		Long: `Empatia scores how readable and maintainable a codebase is across
eight quality categories, and compares a candidate repository against a
reference one.

Commands:
  analyze   Analyze a local project directory
  compare   Compare two GitHub repositories`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "empatia %s (commit: %s, built: %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}
