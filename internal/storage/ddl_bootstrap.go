package storage

import (
	"context"
	"fmt"
	"sync"

	"recipesql/internal/ddl"
)

// DDLBootstrapper is a backend-specific function that renders the CREATE
// TABLE statement for t in the backend's dialect and applies it via
// repo.Exec.
//
// Backends register their implementation for a given storage kind at init
// time.
type DDLBootstrapper func(ctx context.Context, repo Repository, t ddl.TableDef) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for the given storage
// kind. It is typically called from backend packages' init() functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable locates the DDLBootstrapper for kind and invokes it.
//
// If no DDL bootstrapper has been registered for the storage kind, an error
// is returned.
func EnsureTable(ctx context.Context, kind string, repo Repository, t ddl.TableDef) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo, t)
}
