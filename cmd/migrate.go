package cmd

import (
	"log/slog"

	"freelancehub/config"
	"freelancehub/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the database schema and seed the default admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		// Open runs the migrations.
		db, err := database.Open(cfg)
		if err != nil {
			return err
		}

		if err := database.SeedDefaultAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return err
		}

		slog.Info("database migrated", slog.String("driver", cfg.DatabaseDriver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
