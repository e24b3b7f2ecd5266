package main

import (
	"fmt"

	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/platform/logger"
	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show a user's budget and check it against the transaction log",
	Long: `Prints the initial and current budget of a user, then replays the
transaction log and checks that the oldest entry starts from the initial
budget and that the newest entry ends on the current budget.`,
	Example: `  nexkeepctl budget --email ana@example.com`,
	Args:    cobra.NoArgs,
	RunE:    runBudget,
}

func init() {
	budgetCmd.Flags().String("email", "", "Email of the user (required)")
	_ = budgetCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("budget")
	emailAddr, _ := cmd.Flags().GetString("email")

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	user, err := a.services.User.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", emailAddr, err)
	}
	budget, err := a.services.Ledger.GetBudget(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("failed to read budget: %w", err)
	}
	history, err := a.services.Ledger.ListTransactions(ctx, user.UserID, dto.ListTransactionsParams{})
	if err != nil {
		return fmt.Errorf("failed to read transactions: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "user:           %s (%s)\n", user.Email, user.UserID)
	fmt.Fprintf(out, "initial budget: %s\n", budget.BudgetInitial.StringFixed(2))
	fmt.Fprintf(out, "current budget: %s\n", budget.Current.StringFixed(2))
	fmt.Fprintf(out, "transactions:   %d\n", len(history.Transactions))

	if err := checkRunningBudget(budget.BudgetInitial, budget.Current, history.Transactions); err != nil {
		log.Error().Err(err).Str("user_id", user.UserID).Msg("Budget mismatch")
		return err
	}
	log.Info().Str("user_id", user.UserID).Msg("Budget consistent")
	fmt.Fprintln(out, "status:         consistent")
	return nil
}
