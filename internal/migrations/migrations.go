// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package migrations

import (
	"context"
	"embed"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed *.sql
var sqlMigrations embed.FS

// Migrations holds the embedded schema migrations
var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.Discover(sqlMigrations); err != nil {
		panic(err)
	}
}

// Up applies every pending migration
func Up(ctx context.Context, db *bun.DB, log *logrus.Entry) error {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	if err := migrator.Lock(ctx); err != nil {
		return fmt.Errorf("failed to lock migrations: %w", err)
	}
	defer migrator.Unlock(ctx) //nolint:errcheck

	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if group.IsZero() {
		log.Info("no new migrations to run")
	} else {
		log.WithField("group", group.String()).Info("migrated")
	}
	return nil
}

// Down rolls back the last migration group
func Down(ctx context.Context, db *bun.DB, log *logrus.Entry) error {
	migrator := migrate.NewMigrator(db, Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	group, err := migrator.Rollback(ctx)
	if err != nil {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	if group.IsZero() {
		log.Info("no migrations to roll back")
	} else {
		log.WithField("group", group.String()).Info("rolled back")
	}
	return nil
}
