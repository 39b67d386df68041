package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/romtools/romtrace/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "romtrace",
		Short: "Trace extracted ROM archives back to repository history",
		Long: `romtrace compares an extracted firmware archive against a git working
tree and its history: it finds the revision each file last matched, the
closest revision for files that match nothing, and the newest baseline
commit the whole archive could correspond to. It also bundles flat
comparison helpers for property files, blob lists, logs, kernel modules
and vendor interface manifests.`,
		Version:       cli.VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	cli.AddGlobalFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewMatchCommand())
	rootCmd.AddCommand(cli.NewClosestCommand())
	rootCmd.AddCommand(cli.NewPropsCommand())
	rootCmd.AddCommand(cli.NewPropListCommand())
	rootCmd.AddCommand(cli.NewLogsCommand())
	rootCmd.AddCommand(cli.NewDupesCommand())
	rootCmd.AddCommand(cli.NewModulesCommand())
	rootCmd.AddCommand(cli.NewManifestCommand())
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
