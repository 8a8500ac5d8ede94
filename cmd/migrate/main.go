package main

// Run database migrations:
//   go run ./cmd/migrate up

import (
	"context"
	"database/sql"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"docassist/internal/shared/config"
	"docassist/internal/shared/storage/db"
	"docassist/internal/shared/telemetry"
)

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Apply, roll back or inspect database migrations",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		return telemetry.Init(cfg.LogLevel, cfg.LogFormat)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.Sync()
	},
}

func init() {
	rootCmd.AddCommand(
		migrationCmd("up", "Apply all pending migrations", db.RunMigrations),
		migrationCmd("down", "Roll back the most recent migration", db.RollbackMigration),
		migrationCmd("status", "Print the state of every migration", db.MigrationStatus),
	)
}

func migrationCmd(use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			if cfg.DatabaseURL == "" {
				return eris.New("DATABASE_URL is required")
			}
			ctx := cmd.Context()

			opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
			sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
			if err != nil {
				return eris.Wrap(err, "connect database")
			}
			defer sqlDB.Close()

			if err := run(ctx, sqlDB); err != nil {
				return eris.Wrapf(err, "migrate %s", use)
			}
			telemetry.Info("migrate.done", map[string]any{"command": use})
			return nil
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
