package database

import (
	"database/sql"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// MigrationResult reports what a migration run did.
type MigrationResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Migrate applies migrations from sourceURL (e.g. "file://migrations").
// steps == 0 applies every pending up migration; a negative value rolls back that many.
func Migrate(databaseURL, sourceURL string, steps int) (res MigrationResult, err error) {
	// golang-migrate needs a database/sql handle; pgx/v5/stdlib registers "pgx".
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return res, fmt.Errorf("open database for migrations: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return res, fmt.Errorf("ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return res, fmt.Errorf("create postgres migration driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return res, fmt.Errorf("create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if steps == 0 {
		err = m.Up()
	} else {
		err = m.Steps(steps)
	}
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		err = nil
	case err != nil:
		return res, fmt.Errorf("apply migrations: %w", err)
	default:
		res.Changed = true
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return res, fmt.Errorf("read migration version: %w", verr)
	}
	res.Version, res.Dirty = version, dirty
	return res, nil
}
