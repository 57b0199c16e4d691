package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Register the pgx/v5 database driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending schema migrations. The databaseURL is
// the same postgres:// URL the pool uses; the scheme is rewritten to pgx5://
// for golang-migrate.
func RunMigrations(databaseURL string) error {
	const op = "storage.postgres.RunMigrations"

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("%s: failed to create migration source: %w", op, err)
	}

	migrateURL := databaseURL
	if rest, found := strings.CutPrefix(databaseURL, "postgres://"); found {
		migrateURL = "pgx5://" + rest
	} else if rest, found := strings.CutPrefix(databaseURL, "postgresql://"); found {
		migrateURL = "pgx5://" + rest
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL)
	if err != nil {
		_ = source.Close()
		return fmt.Errorf("%s: failed to initialize migrator: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: failed to apply migrations: %w", op, err)
	}

	return nil
}
