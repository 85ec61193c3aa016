package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/solobank-dev/solobank/internal/assess"
)

func newAssessCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "assess <customer-id> <requested-limit>",
		Short: "Run a credit limit increase assessment for a customer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requested, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing requested limit: %w", err)
			}

			cfg, st, svc, err := openLedger(*cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			customer, err := svc.Store().GetCustomer(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			assessor := assess.NewClient(cfg.Assessor.URL, cfg.Assessor.Timeout())
			result, err := assessor.Assess(cmd.Context(), assess.InputFromCustomer(customer, requested))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
