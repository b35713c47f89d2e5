package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/medeu/storefront/migrations"
	"github.com/medeu/storefront/pkg/database"
	"github.com/medeu/storefront/pkg/logger"
	"github.com/medeu/storefront/pkg/migrate"
)

// migrationLockID keys the Postgres advisory lock that keeps concurrent
// deploys from racing each other through the migration set.
const migrationLockID = 7342941264532189

func main() {
	logger.Init("storefront-migrate", os.Getenv("ENVIRONMENT") != "production")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := database.ConfigFromEnv()

	// A plain database/sql connection holds the advisory lock for the
	// lifetime of the run. GORM gets its own connection for the migrations
	// themselves.
	lockDB, err := database.NewPostgresConnection(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer lockDB.Close()

	ctx := context.Background()

	// Advisory locks are connection scoped, so lock and unlock must run on
	// the same pinned connection.
	lockConn, err := lockDB.Conn(ctx)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get lock connection")
	}
	defer lockConn.Close()

	if err := acquireLock(ctx, lockConn); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to acquire migration lock")
	}
	defer releaseLock(ctx, lockConn)

	db, err := database.NewGormConnection(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	runner, err := migrate.NewRunner(db, migrations.All())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to build migration runner")
	}

	switch os.Args[1] {
	case "up":
		applied, err := runner.Up(ctx)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Migration failed")
		}
		logger.Logger.Info().Int("applied", applied).Msg("Migrations applied")

	case "down":
		n := 1
		if len(os.Args) > 2 {
			n, err = strconv.Atoi(os.Args[2])
			if err != nil || n < 1 {
				logger.Logger.Fatal().Str("arg", os.Args[2]).Msg("down expects a positive step count")
			}
		}
		reverted, err := runner.Down(ctx, n)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Rollback failed")
		}
		logger.Logger.Info().Int("reverted", reverted).Msg("Migrations reverted")

	case "status":
		statuses, err := runner.Statuses(ctx)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to read migration status")
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied " + s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-40s %s\n", s.ID, state)
		}

	default:
		usage()
		os.Exit(2)
	}
}

func acquireLock(ctx context.Context, conn *sql.Conn) error {
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return fmt.Errorf("pg_advisory_lock: %w", err)
	}
	return nil
}

func releaseLock(ctx context.Context, conn *sql.Conn) {
	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_unlock($1)", migrationLockID); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to release migration lock")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate <up | down [n] | status>")
}
