package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SscSPs/nexkeep/internal/dto"
	"github.com/SscSPs/nexkeep/internal/platform/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a local account",
	Example: `  # Prompt for the password
  nexkeepctl create-user --email ana@example.com --name "Ana"

  # Start with a budget of 1500
  nexkeepctl create-user --email ana@example.com --budget 1500`,
	Args: cobra.NoArgs,
	RunE: runCreateUser,
}

func init() {
	createUserCmd.Flags().String("email", "", "Email address (required)")
	createUserCmd.Flags().String("name", "", "Display name")
	createUserCmd.Flags().String("password", "", "Password (prompted when omitted)")
	createUserCmd.Flags().String("budget", "", "Initial budget")
	_ = createUserCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(createUserCmd)
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("create-user")
	emailAddr, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	password, _ := cmd.Flags().GetString("password")
	budgetFlag, _ := cmd.Flags().GetString("budget")

	req := dto.RegisterRequest{Email: emailAddr, Name: name}
	if budgetFlag != "" {
		b, err := decimal.NewFromString(budgetFlag)
		if err != nil {
			return fmt.Errorf("invalid --budget %q: %w", budgetFlag, err)
		}
		req.InitialBudget = &b
	}

	if password == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Password: ")
		var err error
		password, err = readPassword(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	req.Password = password

	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	user, err := a.services.User.CreateUser(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	log.Info().Str("user_id", user.UserID).Msg("User created")
	fmt.Fprintf(cmd.OutOrStdout(), "User %s created with ID %s\n", user.Email, user.UserID)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// Pipes and tests.
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
