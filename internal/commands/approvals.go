package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/solobank-dev/solobank/internal/ledger"
)

func newApprovalsCommand(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "List and resolve pending approvals",
	}

	cmd.AddCommand(newApprovalsListCommand(cfgPath))
	cmd.AddCommand(newApprovalsResolveCommand(cfgPath))

	return cmd
}

func newApprovalsListCommand(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all pending approvals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, svc, err := openLedger(*cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			approvals, err := svc.Store().AllPendingApprovals(cmd.Context())
			if err != nil {
				return err
			}
			if len(approvals) == 0 {
				fmt.Println("No pending approvals")
				return nil
			}
			for _, a := range approvals {
				fmt.Printf("%d\t%s\t%s\t$%s\t%s\n",
					a.ID, a.CustomerID, a.Type, a.Amount.StringFixed(2), a.Description)
			}
			return nil
		},
	}
}

func newApprovalsResolveCommand(cfgPath *string) *cobra.Command {
	var resolvedBy string

	cmd := &cobra.Command{
		Use:   "resolve <approval-id> <approve|deny>",
		Short: "Approve or deny a pending approval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			approvalID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing approval id: %w", err)
			}

			_, st, svc, err := openLedger(*cfgPath)
			if err != nil {
				return err
			}
			defer st.Close()

			result, err := svc.ResolveApproval(cmd.Context(), approvalID, ledger.Action(args[1]), resolvedBy)
			if err != nil {
				return err
			}

			fmt.Printf("Approval %d: %s\n", result.ApprovalID, result.Status)
			if result.LimitChange != nil {
				fmt.Printf("Credit limit for %s: $%s -> $%s\n",
					result.LimitChange.CustomerID,
					result.LimitChange.PreviousLimit.StringFixed(2),
					result.LimitChange.NewLimit.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resolvedBy, "by", "admin", "who resolved the approval")

	return cmd
}
