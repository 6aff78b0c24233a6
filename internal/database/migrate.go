package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// migrationFiles holds the schema, compiled into the binary so migrations do not
// depend on the working directory.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationResult describes the schema state after RunMigrations.
type MigrationResult struct {
	Version uint // Current schema version
	Applied bool // Whether any migration ran
	Forced  bool // Whether a dirty version was forced clean first
}

func newMigrate(dbURL string) (*migrate.Migrate, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// RunMigrations applies all pending migrations.
// A database left dirty by a failed run is forced back to its recorded version first.
func RunMigrations(dbURL string) (*MigrationResult, error) {
	m, err := newMigrate(dbURL)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	result := &MigrationResult{}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to read migration version: %w", err)
	}

	if dirty {
		if err := m.Force(int(version)); err != nil {
			return nil, fmt.Errorf("failed to force version: %w", err)
		}
		result.Forced = true
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
	case err != nil:
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	default:
		result.Applied = true
	}

	version, _, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to read migration version: %w", err)
	}
	result.Version = version

	return result, nil
}

// GetMigrationVersion returns the current migration version and dirty flag.
func GetMigrationVersion(dbURL string) (uint, bool, error) {
	m, err := newMigrate(dbURL)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	return m.Version()
}

// RollbackMigration rolls back the last migration.
func RollbackMigration(dbURL string) error {
	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}
