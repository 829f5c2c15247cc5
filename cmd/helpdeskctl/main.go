package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/baechuer/helpdesk/internal/application/user"
	"github.com/baechuer/helpdesk/internal/config"
	"github.com/baechuer/helpdesk/internal/infrastructure/db/postgres"
	"github.com/baechuer/helpdesk/internal/logger"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

const commandTimeout = time.Minute

type app struct {
	dsn string

	openDB   func(dsn string) (*sql.DB, error)
	migrate  func(ctx context.Context, db *sql.DB) (int, error)
	rollback func(ctx context.Context, db *sql.DB, steps int) (int, error)
	users    func(db *sql.DB) user.UserRepo
}

func defaultApp() *app {
	return &app{
		openDB:   func(dsn string) (*sql.DB, error) { return config.NewDB(dsn, false) },
		migrate:  postgres.Migrate,
		rollback: postgres.Rollback,
		users:    func(db *sql.DB) user.UserRepo { return postgres.NewUserRepo(db) },
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "helpdeskctl",
		Short:         "Administrative tasks for the helpdesk service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.dsn, "dsn", os.Getenv("DATABASE_URL"), "postgres connection string (default $DATABASE_URL)")

	root.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the helpdeskctl version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
		newMigrateCmd(a),
		newUserCmd(a),
	)
	return root
}

// withDB opens the database, runs fn and closes it again.
func (a *app) withDB(cmd *cobra.Command, fn func(ctx context.Context, db *sql.DB) error) error {
	if a.dsn == "" {
		return fmt.Errorf("missing database dsn: set --dsn or DATABASE_URL")
	}
	db, err := a.openDB(a.dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	return fn(ctx, db)
}

func main() {
	_ = godotenv.Load()
	logger.Init()

	if err := newRootCmd(defaultApp()).Execute(); err != nil {
		logger.Logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
