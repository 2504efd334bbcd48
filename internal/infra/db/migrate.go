package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"hotel-booking/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationSet selects the schema owned by one service.
type MigrationSet string

const (
	RoomMigrations        MigrationSet = "migrations/rooms"
	ReservationMigrations MigrationSet = "migrations/reservations"
)

// RunMigrations applies all pending migrations of the given set. Each set keeps its own
// version table so both services can share one database.
func RunMigrations(cfg config.DBConfig, set MigrationSet) error {
	db, err := sql.Open("postgres", cfg.BuildDSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	sourceDriver, err := iofs.New(migrationsFS, string(set))
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: "schema_migrations_" + path.Base(string(set)),
	})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	slog.Info("migrations applied", "set", string(set), "version", version, "dirty", dirty)

	return nil
}
