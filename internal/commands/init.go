package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/solobank-dev/solobank/internal/config"
	"github.com/solobank-dev/solobank/internal/seed"
	"github.com/solobank-dev/solobank/internal/store"
)

func newInitCommand() *cobra.Command {
	var dbPath string
	var fixturesDir string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a bank deployment with config, schema, and demo data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), absDir, dbPath, fixturesDir)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "solobank.db", "database file, relative to the directory")
	cmd.Flags().StringVar(&fixturesDir, "fixtures", "", "CSV fixtures directory (built-in demo data when empty)")

	return cmd
}

func runInit(ctx context.Context, dir, dbPath, fixturesDir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(dbPath)
	cfg.Seed.FixturesDir = fixturesDir
	if err := config.Save(filepath.Join(dir, "solobank.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Open creates the database and applies migrations.
	st, err := store.Open(filepath.Join(dir, dbPath))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	ds := seed.Builtin()
	if fixturesDir != "" {
		ds, err = seed.FromDir(fixturesDir)
		if err != nil {
			return fmt.Errorf("loading fixtures: %w", err)
		}
	}
	if err := st.Seed(ctx, ds); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	fmt.Printf("Initialized bank at %s (%d customers, %d accounts)\n", dir, len(ds.Customers), len(ds.Accounts))
	return nil
}
