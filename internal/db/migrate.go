package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

func withGoose(pool *pgxpool.Pool, fn func(*goose.Provider) error) error {
	fsys, err := fs.Sub(migrations, "migrations")

	if err != nil {
		return err
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	defer sqlDB.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, sqlDB, fsys)

	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	return fn(provider)
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	return withGoose(pool, func(p *goose.Provider) error {
		results, err := p.Up(ctx)

		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}

		for _, r := range results {
			log.InfoContext(ctx, "migration applied",
				"version", r.Source.Version,
				"file", filepath.Base(r.Source.Path),
				"duration_ms", r.Duration.Milliseconds(),
			)
		}

		return nil
	})
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	return withGoose(pool, func(p *goose.Provider) error {
		r, err := p.Down(ctx)

		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}

		log.InfoContext(ctx, "migration rolled back", "version", r.Source.Version)

		return nil
	})
}

type MigrationStatus struct {
	Version int64
	File    string
	Applied bool
}

func MigrationsStatus(ctx context.Context, pool *pgxpool.Pool) ([]MigrationStatus, error) {
	var out []MigrationStatus

	err := withGoose(pool, func(p *goose.Provider) error {
		statuses, err := p.Status(ctx)

		if err != nil {
			return fmt.Errorf("migration status: %w", err)
		}

		for _, s := range statuses {
			out = append(out, MigrationStatus{
				Version: s.Source.Version,
				File:    filepath.Base(s.Source.Path),
				Applied: s.State == goose.StateApplied,
			})
		}

		return nil
	})

	return out, err
}
