package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"recipesql/internal/script"
	"recipesql/internal/storage"
)

// Report summarizes a Verify run.
type Report struct {
	// Statements is the number of INSERT statements executed.
	Statements int
	// Rows is the row count of the table afterwards.
	Rows int64
}

// Verify loads the INSERT statements of s into a fresh in-memory SQLite
// database holding s.Table, then checks one row landed per statement.
//
// The MySQL session preamble and trailer are skipped; they have no SQLite
// equivalent and do not affect the row literals.
func Verify(ctx context.Context, s *script.Script, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	repo, err := storage.New(ctx, storage.Config{Kind: "sqlite", DSN: MemoryDSN})
	if err != nil {
		return Report{}, err
	}
	defer repo.Close()

	if err := storage.EnsureTable(ctx, "sqlite", repo, s.Table); err != nil {
		return Report{}, fmt.Errorf("sqlite verify: create table: %w", err)
	}

	n, err := storage.ExecAll(ctx, repo, s.Inserts, 0, logger)
	rep := Report{Statements: n}
	if err != nil {
		return rep, fmt.Errorf("sqlite verify: %w", err)
	}

	counter, ok := repo.(storage.Counter)
	if !ok {
		return rep, fmt.Errorf("sqlite verify: repository %T cannot count rows", repo)
	}
	rows, err := counter.Count(ctx, s.Table.FQN)
	if err != nil {
		return rep, fmt.Errorf("sqlite verify: %w", err)
	}
	rep.Rows = rows
	if rows != int64(len(s.Inserts)) {
		return rep, fmt.Errorf("sqlite verify: table has %d rows, want %d", rows, len(s.Inserts))
	}
	return rep, nil
}
