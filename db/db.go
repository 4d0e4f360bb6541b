// Package db implements relational storage for users, categories,
// transactions and budgets on top of database/sql. Production runs on
// PostgreSQL; SQLite backs local development and the test suite. The
// schema is managed by embedded golang-migrate migrations, one set per
// dialect.
package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var (
	// ErrNotFound is returned when an entity does not exist or is not
	// visible to the requesting user. Callers map it to a 404 without
	// leaking which of the two it was.
	ErrNotFound = errors.New("not found")

	// ErrCategoryInUse rejects deleting a category that transactions
	// still reference.
	ErrCategoryInUse = errors.New("category is used in transactions")

	// ErrEmailTaken rejects registering an email twice.
	ErrEmailTaken = errors.New("email already registered")
)

//go:embed migrations
var migrationsFS embed.FS

// Storage wraps a single process-wide connection pool. It is constructed
// once at startup and released at graceful shutdown.
type Storage struct {
	DB     *sql.DB
	driver string
}

// NewStorage opens the pool for the given driver, verifies connectivity
// and brings the schema up to date.
func NewStorage(driver, dsn string) (*Storage, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// modernc/sqlite allows one writer; a second pooled connection
		// would also see a different database for :memory: DSNs.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Storage{DB: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// migrate applies the embedded migrations for the active dialect against
// the already-open pool.
func (s *Storage) migrate() error {
	src, err := iofs.New(migrationsFS, "migrations/"+s.driver)
	if err != nil {
		return fmt.Errorf("open migration source: %w", err)
	}

	var m *migrate.Migrate
	switch s.driver {
	case DriverPostgres:
		d, err := migratepg.WithInstance(s.DB, &migratepg.Config{})
		if err != nil {
			return fmt.Errorf("create postgres migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, s.driver, d)
		if err != nil {
			return fmt.Errorf("create migrate instance: %w", err)
		}
	case DriverSQLite:
		d, err := migratesqlite.WithInstance(s.DB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("create sqlite migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, s.driver, d)
		if err != nil {
			return fmt.Errorf("create migrate instance: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// rebind rewrites ? placeholders to $1..$n for postgres. Queries are
// written once with ? and must not reuse a placeholder.
func (s *Storage) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
