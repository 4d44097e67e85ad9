package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultProgressEvery is the statement interval between progress log lines.
const DefaultProgressEvery = 1000

// ExecAll executes stmts in order on repo and returns the number of
// statements that succeeded. It stops at the first failure, returning an
// error that names the failing statement's position.
//
// A progress line is logged every progressEvery statements (DefaultProgressEvery
// when <= 0) and once at the end, with running totals and statements/sec since
// the previous line.
func ExecAll(
	ctx context.Context,
	repo Repository,
	stmts []string,
	progressEvery int,
	logger *zap.Logger,
) (int, error) {
	if repo == nil {
		return 0, fmt.Errorf("storage: repository must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if progressEvery <= 0 {
		progressEvery = DefaultProgressEvery
	}

	var (
		done     int
		start    = time.Now()
		lastTS   = start
		lastDone int
	)

	report := func(final bool) {
		now := time.Now()
		sinceLast := now.Sub(lastTS)
		sps := float64(0)
		if sinceLast > 0 {
			sps = float64(done-lastDone) / sinceLast.Seconds()
		}
		logger.Info("exec progress",
			zap.Int("executed", done),
			zap.Int("total", len(stmts)),
			zap.Float64("stmts_per_sec", sps),
			zap.Duration("elapsed", now.Sub(start).Truncate(time.Millisecond)),
			zap.Bool("final", final),
		)
		lastTS = now
		lastDone = done
	}

	for i, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if err := repo.Exec(ctx, stmt); err != nil {
			logger.Error("exec failed", zap.Int("statement", i+1), zap.Error(err))
			return done, fmt.Errorf("storage: statement %d of %d: %w", i+1, len(stmts), err)
		}
		done++
		if done%progressEvery == 0 && done < len(stmts) {
			report(false)
		}
	}
	report(true)
	return done, nil
}
