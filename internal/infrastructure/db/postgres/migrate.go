package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	zlog "github.com/rs/zerolog/log"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationsFS,
		Root:       "migrations",
	}
}

// Migrate applies all pending up migrations. ctx bounds how long the caller waits.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	return run(ctx, db, migrate.Up, 0)
}

// Rollback undoes at most steps migrations (0 means all).
func Rollback(ctx context.Context, db *sql.DB, steps int) (int, error) {
	return run(ctx, db, migrate.Down, steps)
}

func run(ctx context.Context, db *sql.DB, dir migrate.MigrationDirection, max int) (int, error) {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := migrate.ExecMax(db, "postgres", migrationSource(), dir, max)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("migration timeout: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return 0, fmt.Errorf("db migrations have failed: %w", res.err)
		}
		zlog.Info().Int("count", res.n).Str("direction", directionName(dir)).Msg("applied migrations")
		return res.n, nil
	}
}

func directionName(d migrate.MigrationDirection) string {
	if d == migrate.Down {
		return "down"
	}
	return "up"
}
