package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies all pending migrations to the database at path. A
// dedicated connection is used because closing the migrator closes it.
func MigrateUp(path string) error {
	return runMigrations(path, func(m *migrate.Migrate) error { return m.Up() })
}

func MigrateDown(path string) error {
	return runMigrations(path, func(m *migrate.Migrate) error { return m.Down() })
}

// MigrationVersion reports the applied schema version; version 0 with
// dirty=false means no migration has run.
func MigrationVersion(path string) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := runMigrations(path, func(m *migrate.Migrate) error {
		v, d, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		version, dirty = v, d
		return err
	})
	return version, dirty, err
}

func runMigrations(path string, step func(*migrate.Migrate) error) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open migration db: %w", err)
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
