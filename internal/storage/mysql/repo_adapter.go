package mysql

import (
	"context"
	"fmt"

	"recipesql/internal/ddl"
	"recipesql/internal/storage"
	mysqlddl "recipesql/internal/storage/mysql/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

var _ storage.Repository = (*wrappedRepo)(nil)

// init registers the "mysql" backend with the factory.
func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("mysql", EnsureTable)
}

// EnsureTable renders t in the MySQL dialect and executes it on repo.
func EnsureTable(ctx context.Context, repo storage.Repository, t ddl.TableDef) error {
	stmt, err := mysqlddl.BuildCreateTableSQL(t)
	if err != nil {
		return fmt.Errorf("mysql: build DDL: %w", err)
	}
	return repo.Exec(ctx, stmt)
}

// wrappedRepo adapts *mysql.Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Close closes the pinned connection and the pool.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}
