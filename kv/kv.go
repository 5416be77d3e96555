// Package kv provides the key-value stores the portfolio state is saved to.
//
// Every store keeps opaque values under string keys. Get reports false, with
// no error, for an absent key.
package kv

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// Store is a key-value store that holds resources until closed.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// ErrUnsupportedScheme is returned by Open for an unknown URL scheme.
var ErrUnsupportedScheme = errors.New("unsupported state scheme")

// Open opens the store described by rawURL:
//
//	dir://path or a plain path   one JSON file per key in a directory
//	mem://                       in memory, lost on exit
//	sqlite://file.db             a SQLite database
//	postgres://user@host/db      a PostgreSQL database
//	redis://host:6379/0          a Redis server
func Open(ctx context.Context, rawURL string, log zerolog.Logger) (Store, error) {
	scheme, rest, ok := strings.Cut(rawURL, "://")
	if !ok {
		return NewDir(rawURL, log), nil
	}
	switch scheme {
	case "dir", "file":
		return NewDir(rest, log), nil
	case "mem", "memory":
		return NewMemory(), nil
	case "sqlite", "sqlite3":
		return OpenSQLite(ctx, rest, log)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, rawURL, log)
	case "redis", "rediss":
		return OpenRedis(ctx, rawURL, log)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedScheme, scheme)
	}
}

// Redact returns rawURL without its password, for logging.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.User == nil {
		return rawURL
	}
	return u.Redacted()
}
