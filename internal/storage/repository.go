// Package storage contains the sink contracts used to execute a generated
// script against a database, and the registry that maps a storage kind
// ("mysql", "sqlite") to its implementation.
//
// Backends register themselves from init; importing
// recipesql/internal/storage/all enables every built-in backend.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository executes SQL statements against one database session. Session
// state set by one statement (e.g. SET NAMES) is visible to the next.
type Repository interface {
	Exec(ctx context.Context, stmt string) error
	Close()
}

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "mysql".
	Kind string

	// DSN is the backend specific connection string.
	DSN string
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	factoryMu sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) the factory for kind.
func Register(kind string, f Factory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[kind] = f
}

// New opens a Repository using the factory registered for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	factoryMu.RLock()
	f, ok := factories[cfg.Kind]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unsupported storage.kind=%s (registered: %v)", cfg.Kind, ListKinds())
	}
	return f(ctx, cfg)
}

// ListKinds returns the registered kinds, sorted. The slice is a copy.
func ListKinds() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Counter is implemented by repositories that can report a table's row count.
type Counter interface {
	Count(ctx context.Context, table string) (int64, error)
}
