// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories and DDL bootstrappers with the
// storage package.
//
// Importing this package makes the following storage kinds available:
//
//   - "mysql"  (recipesql/internal/storage/mysql)
//   - "sqlite" (recipesql/internal/storage/sqlite)
//
// Typical usage (in cmd/recipesql or a similar wiring layer):
//
//	import (
//	    _ "recipesql/internal/storage/all" // enable all built-in backends
//
//	    "recipesql/internal/storage"
//	)
//
//	repo, err := storage.New(ctx, storage.Config{Kind: "mysql", DSN: dsn})
//	if err != nil {
//	    // handle error
//	}
//	defer repo.Close()
//	err = storage.EnsureTable(ctx, "mysql", repo, s.Table)
package all

import (
	_ "recipesql/internal/storage/mysql"
	_ "recipesql/internal/storage/sqlite"
)
