package main

import (
	"fmt"

	"github.com/SscSPs/nexkeep/internal/platform/config"
	"github.com/SscSPs/nexkeep/internal/platform/logger"
	"github.com/SscSPs/nexkeep/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd, 0)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migrations",
	Example: `  # Roll back the most recent migration
  nexkeepctl migrate down

  # Roll back three migrations
  nexkeepctl migrate down --steps 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		return runMigrate(cmd, -steps)
	},
}

func init() {
	migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back")
	migrateCmd.PersistentFlags().String("source", "", "Migration source URL (defaults to MIGRATIONS_PATH)")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, steps int) error {
	log := logger.WithComponent("migrate")
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = cfg.MigrationsPath
	}

	res, err := database.Migrate(cfg.DatabaseURL, source, steps)
	if err != nil {
		return err
	}
	log.Info().
		Str("source", source).
		Int("steps", steps).
		Uint("version", res.Version).
		Bool("dirty", res.Dirty).
		Bool("changed", res.Changed).
		Msg("Migration finished")
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty=%t)\n", res.Version, res.Dirty)
	return nil
}
