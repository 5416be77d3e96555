package kv

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Dialect holds the statements that differ between SQL databases.
type Dialect struct {
	Name   string
	Create string
	Select string
	Upsert string
}

var (
	// SQLite is the dialect of modernc.org/sqlite.
	SQLite = Dialect{
		Name:   "sqlite",
		Create: `CREATE TABLE IF NOT EXISTS kv_store (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at INTEGER NOT NULL)`,
		Select: `SELECT value FROM kv_store WHERE key = ?`,
		Upsert: `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	}
	// Postgres is the dialect of lib/pq.
	Postgres = Dialect{
		Name:   "postgres",
		Create: `CREATE TABLE IF NOT EXISTS kv_store (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at BIGINT NOT NULL)`,
		Select: `SELECT value FROM kv_store WHERE key = $1`,
		Upsert: `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, $3) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	}
)

// SQL is a Store backed by a single kv_store table.
type SQL struct {
	db      *sql.DB
	dialect Dialect
	log     zerolog.Logger
	now     func() time.Time
}

// NewSQL wraps an open database and creates the table if needed.
func NewSQL(ctx context.Context, db *sql.DB, dialect Dialect, log zerolog.Logger) (*SQL, error) {
	if _, err := db.ExecContext(ctx, dialect.Create); err != nil {
		return nil, fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return &SQL{
		db:      db,
		dialect: dialect,
		log:     log.With().Str("component", "kv.sql").Str("dialect", dialect.Name).Logger(),
		now:     time.Now,
	}, nil
}

// OpenSQLite opens, or creates, the SQLite database file at path.
func OpenSQLite(ctx context.Context, path string, log zerolog.Logger) (*SQL, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	// a single connection keeps writes serialized.
	db.SetMaxOpenConns(1)
	s, err := NewSQL(ctx, db, SQLite, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenPostgres connects to the PostgreSQL database at dsn.
func OpenPostgres(ctx context.Context, dsn string, log zerolog.Logger) (*SQL, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database %s: %w", Redact(dsn), err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to postgres %s: %w", Redact(dsn), err)
	}
	s, err := NewSQL(ctx, db, Postgres, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Get returns the value stored for key. It returns false when there is no row.
func (s *SQL) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.Select, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set inserts or replaces the value of key.
func (s *SQL) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, string(value), s.now().Unix()); err != nil {
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	s.log.Debug().Str("key", key).Int("bytes", len(value)).Msg("stored")
	return nil
}

// Close closes the database.
func (s *SQL) Close() error { return s.db.Close() }
