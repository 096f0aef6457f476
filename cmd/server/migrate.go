// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regrada-ai/aidebt-be/internal/config"
	"github.com/regrada-ai/aidebt-be/internal/migrations"
	"github.com/regrada-ai/aidebt-be/internal/storage/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or roll back database migrations",
	Args:  cobra.MaximumNArgs(1),
	ValidArgs: []string{
		"up",
		"down",
	},
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	direction := "up"
	if len(args) == 1 {
		direction = args[0]
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("migrations only apply to postgres storage, got %q", cfg.Storage)
	}

	ctx := cmd.Context()
	db, err := postgres.Open(ctx, cfg.DatabaseURL, cfg.DatabaseDebug)
	if err != nil {
		return err
	}
	defer db.Close()

	entry := log.WithField("component", "migrate")
	switch direction {
	case "up":
		return migrations.Up(ctx, db, entry)
	case "down":
		return migrations.Down(ctx, db, entry)
	default:
		return fmt.Errorf("unknown direction %q, want up or down", direction)
	}
}
