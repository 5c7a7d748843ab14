// Package storage picks the one backend the process runs with.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/landaireal/landai-rent/internal/domain"
	"github.com/landaireal/landai-rent/internal/storage/memory"
	"github.com/landaireal/landai-rent/internal/storage/postgres"
	"github.com/landaireal/landai-rent/internal/storage/sqlstore"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendSQLite   = "sqlite"
)

type Options struct {
	// DatabaseURL empty selects the in-memory backend.
	DatabaseURL string
	AutoMigrate bool
}

// Handle owns the chosen backend. Store is already instrumented.
type Handle struct {
	Store   domain.Storage
	Backend string
	// CacheNamespace scopes shared cache keys to this store. Database
	// backends leave it empty so every process shares entries; a memory
	// store's ids mean nothing outside this process and get a unique one.
	CacheNamespace string
	close          func() error
}

func (h *Handle) Close() error {
	if h == nil || h.close == nil {
		return nil
	}
	return h.close()
}

// Backend maps a connection string to a backend name.
func Backend(databaseURL string) (string, error) {
	if databaseURL == "" {
		return BackendMemory, nil
	}
	scheme, _, ok := strings.Cut(databaseURL, ":")
	if !ok {
		return "", fmt.Errorf("database url %q has no scheme", redact(databaseURL))
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return BackendPostgres, nil
	case "mysql":
		return BackendMySQL, nil
	case "sqlite", "sqlite3":
		return BackendSQLite, nil
	}
	return "", fmt.Errorf("unsupported database scheme %q", scheme)
}

// Open builds the backend once; there is no fallback between backends.
func Open(ctx context.Context, opts Options) (*Handle, error) {
	backend, err := Backend(opts.DatabaseURL)
	if err != nil {
		return nil, err
	}

	type migrator interface{ Migrate(context.Context) error }
	var (
		store  domain.Storage
		mig    migrator
		closer func() error
	)
	switch backend {
	case BackendMemory:
		store = memory.New()
	case BackendPostgres:
		pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: opts.DatabaseURL})
		if err != nil {
			return nil, err
		}
		repo, err := postgres.New(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		store, mig = repo, repo
		closer = func() error { pool.Close(); return nil }
	case BackendMySQL, BackendSQLite:
		open, dialect := sqlstore.OpenMySQL, sqlstore.MySQL
		if backend == BackendSQLite {
			open, dialect = sqlstore.OpenSQLite, sqlstore.SQLite
		}
		db, err := open(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		repo := sqlstore.New(db, dialect)
		store, mig = repo, repo
		closer = db.Close
	}

	if opts.AutoMigrate && mig != nil {
		if err := mig.Migrate(ctx); err != nil {
			if closer != nil {
				_ = closer()
			}
			return nil, err
		}
	}
	h := &Handle{Store: Instrument(backend, store), Backend: backend, close: closer}
	if backend == BackendMemory {
		h.CacheNamespace = "mem-" + uuid.NewString()
	}
	return h, nil
}

// redact hides the password part of a URL-ish connection string.
func redact(s string) string {
	at := strings.LastIndex(s, "@")
	if at < 0 {
		return s
	}
	return "***" + s[at:]
}
