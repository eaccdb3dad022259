package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mrlokans/library-manager/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// schemaMigrationsTable is the version table both migrate drivers write to.
const schemaMigrationsTable = "schema_migrations"

type schemaMigration struct {
	Version int64
	Dirty   bool
}

// sqlDrivers names the database/sql driver each store is reopened with.
var sqlDrivers = map[string]string{
	config.DriverSQLite:   "sqlite3",
	config.DriverPostgres: "pgx",
}

// newMigrator runs on its own *sql.DB. The postgres migrate driver pins a
// connection until Close, and Close also closes the pool it was given, so
// sharing the application pool would either leak a connection or close it.
func (d *Database) newMigrator() (*migrate.Migrate, error) {
	sqlDriver, ok := sqlDrivers[d.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", d.Driver)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+d.Driver)
	if err != nil {
		return nil, fmt.Errorf("loading %s migrations: %w", d.Driver, err)
	}

	sqlDB, err := sql.Open(sqlDriver, d.dsn)
	if err != nil {
		return nil, fmt.Errorf("opening migration connection: %w", err)
	}

	var driver migratedb.Driver
	switch d.Driver {
	case config.DriverSQLite:
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	case config.DriverPostgres:
		driver, err = migratepg.WithInstance(sqlDB, &migratepg.Config{})
	}
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, d.Driver, driver)
	if err != nil {
		driver.Close()
		return nil, err
	}
	return m, nil
}

// closeMigrator releases the migrator's private connection pool.
func closeMigrator(m *migrate.Migrate) {
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		log.Printf("Error closing migrator: source=%v database=%v", srcErr, dbErr)
	}
}

// MigrateUp applies every pending migration. An up-to-date schema is not an error.
func (d *Database) MigrateUp() error {
	m, err := d.newMigrator()
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating up: %w", err)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func (d *Database) MigrateDown() error {
	m, err := d.newMigrator()
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("migrating down: %w", err)
	}
	return nil
}

// SchemaVersion returns the applied migration version and whether it is dirty.
// It reads the version table directly so health checks do not open a pool.
func (d *Database) SchemaVersion() (uint, bool, error) {
	var rows []schemaMigration
	if err := d.DB.Table(schemaMigrationsTable).Limit(1).Find(&rows).Error; err != nil {
		return 0, false, fmt.Errorf("reading schema version: %w", err)
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	return uint(rows[0].Version), rows[0].Dirty, nil
}
