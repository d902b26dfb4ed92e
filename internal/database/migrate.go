package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"lingo-days/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("could not open embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration. An up-to-date schema is not an error.
func MigrateUp(db *sql.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not apply migrations: %w", err)
	}
	logVersion(m)
	return nil
}

// MigrateDown rolls back one migration, or all of them when all is set.
func MigrateDown(db *sql.DB, all bool) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if all {
		err = m.Down()
	} else {
		err = m.Steps(-1)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not roll back migrations: %w", err)
	}
	logVersion(m)
	return nil
}

// Version reports the applied schema version. ok is false on an empty database.
func Version(db *sql.DB) (version uint, dirty bool, ok bool, err error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, false, false, err
	}
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, fmt.Errorf("could not read schema version: %w", err)
	}
	return version, dirty, true, nil
}

func logVersion(m *migrate.Migrate) {
	version, dirty, err := m.Version()
	if err != nil {
		logger.Get().Info("Schema has no applied migrations")
		return
	}
	logger.Get().Info("Schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
