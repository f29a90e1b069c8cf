package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shortdoom/audit-compare/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	cli.Version = version
	cli.Commit = commit
	cli.BuildDate = date

	rootCmd := &cobra.Command{
		Use:   "audit-compare",
		Short: "Compare two repository trees file by file",
		Long: `audit-compare clones or opens two repository trees, classifies
every file as identical, differing or one-sided, and renders each
differing pair as a side-by-side line diff with unified edit scripts
for the audit trail.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.NewCompareCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
