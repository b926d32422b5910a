package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Direction selects which way Migrate moves the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// MigrationStatus reports the schema version after a migration run.
type MigrationStatus struct {
	Version uint
	Dirty   bool
	Changed bool
}

func newMigrator(databaseURL string) (*migrate.Migrate, func(), error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, func() { m.Close() }, nil
}

// Migrate applies (or reverts) every embedded migration.
func Migrate(databaseURL string, dir Direction, logger *zap.Logger) (MigrationStatus, error) {
	m, closeFn, err := newMigrator(databaseURL)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer closeFn()

	switch dir {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return MigrationStatus{}, fmt.Errorf("unknown migration direction %q", dir)
	}

	status := MigrationStatus{Changed: true}
	if errors.Is(err, migrate.ErrNoChange) {
		status.Changed = false
	} else if err != nil {
		return MigrationStatus{}, fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		return MigrationStatus{}, fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	}
	status.Version = version
	status.Dirty = dirty

	logger.Info("migrations finished",
		zap.String("direction", string(dir)),
		zap.Uint("version", version),
		zap.Bool("changed", status.Changed),
	)
	return status, nil
}

// Version reports the current schema version without changing it.
func Version(databaseURL string) (MigrationStatus, error) {
	m, closeFn, err := newMigrator(databaseURL)
	if err != nil {
		return MigrationStatus{}, err
	}
	defer closeFn()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return MigrationStatus{}, nil
	}
	if err != nil {
		return MigrationStatus{}, fmt.Errorf("failed to get migration version: %w", err)
	}
	return MigrationStatus{Version: version, Dirty: dirty}, nil
}
