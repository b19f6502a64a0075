package db

import (
	"database/sql"
	"log"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

// Migrate runs the database migrations against an already-initialized pool.
func Migrate(conn *sql.DB) error {
	migrationsDir, err := filepath.Abs("db/migrations")
	if err != nil {
		return errors.Wrap(err, "failed to get absolute path to migrations directory")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set dialect")
	}

	if err := goose.Up(conn, migrationsDir); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}

	log.Println("database migration check complete. All migrations are up to date")
	return nil
}
