package database

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"catalogstats/internal/logging"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations for the store named by dsn.
func RunMigrations(dsn string) error {
	m, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, _ := m.Version()
	logging.Info().Uint("version", version).Bool("dirty", dirty).Msg("✅ migrations applied")
	return nil
}

// RollbackMigrations reverts the given number of migration steps.
func RollbackMigrations(dsn string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("migration down: steps must be positive, got %d", steps)
	}
	m, err := newMigrate(dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down: %w", err)
	}
	logging.Info().Int("steps", steps).Msg("migrations rolled back")
	return nil
}

func newMigrate(dsn string) (*migrate.Migrate, error) {
	dialect, target, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dialect, target))
	if err != nil {
		return nil, fmt.Errorf("migration init: %w", err)
	}
	return m, nil
}

// migrateURL converts a catalog DSN into the URL scheme golang-migrate
// registers for the driver.
func migrateURL(dialect Dialect, target string) string {
	if dialect == DialectPostgres {
		_, rest, _ := strings.Cut(target, "://")
		return "pgx5://" + rest
	}
	return "sqlite://" + target
}
