package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solobank-dev/solobank/internal/buildinfo"
	"github.com/solobank-dev/solobank/internal/config"
	"github.com/solobank-dev/solobank/internal/ledger"
	"github.com/solobank-dev/solobank/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var cfgPath string

	rootCmd := &cobra.Command{
		Use:     "solobank",
		Short:   "Demo bank ledger and credit decision engine",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "solobank.yaml", "path to the config file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newServeCommand(&cfgPath))
	rootCmd.AddCommand(newTransferCommand(&cfgPath))
	rootCmd.AddCommand(newApprovalsCommand(&cfgPath))
	rootCmd.AddCommand(newAssessCommand(&cfgPath))

	return rootCmd
}

// openLedger loads the config and opens the ledger service over its database.
// Callers must Close the returned store.
func openLedger(cfgPath string) (*config.Config, *store.Store, *ledger.Service, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return cfg, st, ledger.NewService(st), nil
}
