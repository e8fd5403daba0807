package sqldb

import (
	"context"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/martijn/boatapi/internal/infrastructure/sqldb/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// driverNames maps our driver names to database/sql driver names.
var driverNames = map[string]string{
	DriverSQLite:   "sqlite",
	DriverPostgres: "pgx",
}

// gooseDialects maps our driver names to goose dialects.
var gooseDialects = map[string]string{
	DriverSQLite:   "sqlite3",
	DriverPostgres: "postgres",
}

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

type DB struct {
	*sqlx.DB
	driver string
}

// Open connects to the database and prepares the connection. It does not
// run migrations; call Migrate for that.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	sqlDriver, ok := driverNames[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sqlx.ConnectContext(ctx, sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		if err := configureSQLite(ctx, db, dsn); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &DB{DB: db, driver: driver}, nil
}

// New opens the database and applies all pending migrations.
func New(ctx context.Context, driver, dsn string) (*DB, error) {
	db, err := Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func configureSQLite(ctx context.Context, db *sqlx.DB, dsn string) error {
	// Every connection to :memory: gets its own empty database.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrency (allows concurrent reads/writes)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set busy timeout to handle concurrent access from the CLI and the server
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

// Migrate applies the embedded goose migrations for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(gooseDialects[db.driver]); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB.DB, db.driver); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Driver returns the driver name the database was opened with.
func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Close() error {
	return db.DB.Close()
}
