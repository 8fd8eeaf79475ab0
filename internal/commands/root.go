// Package commands wires the ledger engine to its cobra CLI surface.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "daybook",
		Short:   "Double-entry bookkeeping on a local ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("data", defaultDataDir(), "data directory holding daybook.yaml and the ledger database")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand())
	rootCmd.AddCommand(newVoucherCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newDashboardCommand())

	return rootCmd
}

func defaultDataDir() string {
	if dir := os.Getenv("DAYBOOK_DATA"); dir != "" {
		return dir
	}
	return "."
}

func dataDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("data")
	return dir
}
