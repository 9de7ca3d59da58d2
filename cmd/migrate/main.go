package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quiz-league/internal/config"
	"quiz-league/internal/database"
	"quiz-league/internal/logger"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Apply or roll back the quiz-league schema",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ./config/config.yaml)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error { return m.Up() })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations; without steps every migration is rolled back",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			return withMigrator(func(m *database.Migrator) error { return m.Down(steps) })
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	})

	return cmd
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadConfigFromFile(configPath)
	}
	return config.LoadConfig()
}

func withMigrator(fn func(m *database.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Printf("logger init failed, continuing with no-op logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewPostgresDB(cfg.GetDSN(), 1)
	if err != nil {
		return err
	}
	migrator, err := database.NewMigrator(db.DB)
	if err != nil {
		db.Close()
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			logger.Get().Warn("Failed to close migrator", zap.Error(err))
		}
	}()
	return fn(migrator)
}
