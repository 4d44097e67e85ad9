package sqlite

import (
	"context"
	"fmt"

	"recipesql/internal/ddl"
	"recipesql/internal/storage"
	sqliteddl "recipesql/internal/storage/sqlite/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

// wrappedRepo adapts *sqlite.Repository to the storage.Repository interface,
// adding a Close method that calls the cleanup function returned by
// NewRepository.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

// Ensure wrappedRepo satisfies the interface at compile time.
var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("sqlite", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		dsn := cfg.DSN
		if dsn == "" {
			dsn = MemoryDSN
		}
		r, closeFn, err := newRepository(ctx, Config{DSN: dsn})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("sqlite", EnsureTable)
}

// EnsureTable renders t in the SQLite dialect and executes it on repo.
func EnsureTable(ctx context.Context, repo storage.Repository, t ddl.TableDef) error {
	stmt, err := sqliteddl.BuildCreateTableSQL(t)
	if err != nil {
		return fmt.Errorf("sqlite: build DDL: %w", err)
	}
	return repo.Exec(ctx, stmt)
}
