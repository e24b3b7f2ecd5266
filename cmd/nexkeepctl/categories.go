package main

import (
	"fmt"

	"github.com/SscSPs/nexkeep/internal/platform/logger"
	"github.com/spf13/cobra"
)

const systemActor = "system"

var seedCategoriesCmd = &cobra.Command{
	Use:   "seed-categories",
	Short: "Insert the default income and expense categories that are missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("seed-categories")
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		n, err := a.services.Category.SeedDefaultCategories(cmd.Context(), systemActor)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		log.Info().Int("inserted", n).Msg("Categories seeded")
		fmt.Fprintf(cmd.OutOrStdout(), "%d categories inserted\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCategoriesCmd)
}
