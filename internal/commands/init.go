package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/daybook-dev/daybook/internal/config"
	"github.com/daybook-dev/daybook/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string
	var seedChart bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new set of books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dataDir(cmd)
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, seedChart)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&seedChart, "seed-chart", false, "install a starter chart of accounts")

	return cmd
}

func runInit(dir, name string, seedChart bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	cfg := config.Default(name)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Opening creates the database file and the schema.
	st, err := store.Open(cfg.DatabasePath(dir))
	if err != nil {
		return err
	}
	defer st.Close()

	if seedChart {
		if err := st.SeedDefaultChart(); err != nil {
			return fmt.Errorf("seeding chart of accounts: %w", err)
		}
	}

	verdict, err := st.IntegrityCheck()
	if err != nil {
		return err
	}
	if verdict != "ok" {
		return fmt.Errorf("database integrity check reported: %s", verdict)
	}

	fmt.Printf("Initialized books for %s at %s\n", name, dir)
	return nil
}
