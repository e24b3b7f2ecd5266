package main

import (
	"context"
	"fmt"
	"os"

	"github.com/SscSPs/nexkeep/internal/adapters/email"
	"github.com/SscSPs/nexkeep/internal/adapters/pdf"
	"github.com/SscSPs/nexkeep/internal/adapters/storage"
	portssvc "github.com/SscSPs/nexkeep/internal/core/ports/services"
	"github.com/SscSPs/nexkeep/internal/core/services"
	"github.com/SscSPs/nexkeep/internal/platform/config"
	"github.com/SscSPs/nexkeep/internal/platform/logger"
	"github.com/SscSPs/nexkeep/internal/repositories/database/pgsql"
	"github.com/SscSPs/nexkeep/pkg/database"
	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "nexkeepctl",
	Short: "Administration commands for the NexKeep backend",
	Long: `nexkeepctl runs maintenance tasks against the NexKeep database:
schema migrations, account creation, category seeding and budget checks.

Configuration is read from the same environment variables (and .env file)
as the API server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		return logger.Setup(logger.Config{Level: level, Format: format, Output: os.Stderr})
	},
}

// Execute runs the root command.
func Execute() {
	log := logger.WithComponent("cmd")
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "Log format (console or json)")
}

// app is the wiring shared by commands that need the services.
type app struct {
	cfg      *config.Config
	services *portssvc.ServiceContainer
	close    func()
}

// openApp connects to the database and builds the services. Outbound email
// and file storage are disabled: nothing run from here sends mail or stores files.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return nil, err
	}
	svc := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), services.Gateways{
		Notifier: email.LogNotifier{},
		Files:    storage.DisabledStore{},
		Renderer: pdf.NewInvoiceRenderer(),
	})
	return &app{cfg: cfg, services: svc, close: pool.Close}, nil
}
