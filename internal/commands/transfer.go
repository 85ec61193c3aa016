package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/solobank-dev/solobank/internal/id"
	"github.com/solobank-dev/solobank/internal/ledger"
)

func newTransferCommand(cfgPath *string) *cobra.Command {
	var description string
	var requestKey string

	cmd := &cobra.Command{
		Use:   "transfer <from-account> <to-account> <amount>",
		Short: "Move funds between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("parsing amount: %w", err)
			}
			if requestKey == "" {
				requestKey = id.NewRequestKey()
			}

			_, st, svc, err := openLedger(*cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			result, err := svc.Transfer(cmd.Context(), ledger.TransferParams{
				FromAccountID: args[0],
				ToAccountID:   args[1],
				Amount:        amount,
				Description:   description,
				RequestKey:    requestKey,
			})
			if err != nil {
				return err
			}

			if result.Duplicate {
				fmt.Printf("Already processed (transfer %d)\n", result.TransferID)
			}
			fmt.Printf("Transferred $%s from %s ($%s) to %s ($%s)\n",
				amount.StringFixed(2),
				args[0], result.FromBalance.StringFixed(2),
				args[1], result.ToBalance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "transfer description")
	cmd.Flags().StringVar(&requestKey, "request-key", "", "idempotency key, generated when empty; repeats with the same key are not re-applied")

	return cmd
}
