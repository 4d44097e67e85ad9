package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"recipesql/internal/config"
	"recipesql/internal/datasource"
	"recipesql/internal/datasource/file"
	"recipesql/internal/datasource/httpds"
	"recipesql/internal/metrics"
	"recipesql/internal/parser/json"
	"recipesql/internal/script"
	"recipesql/internal/storage"
	sink "recipesql/internal/storage/file"
	"recipesql/internal/storage/sqlite"
)

// completionMessage is printed on stdout once the script has been written
// and every optional step succeeded.
const completionMessage = "SQL file generated successfully with proper NULL handling!"

// run executes one conversion: read and decode the input, render the
// script, write it atomically, then verify and apply when configured.
//
// Input problems fail before the output path is touched.
func run(ctx context.Context, cfg config.Config, logger *zap.Logger, stdout io.Writer) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	job := cfg.Metrics.Job

	var data []byte
	err := metrics.Step(job, "read", func() (err error) {
		data, err = datasource.ReadAll(ctx, openInput(cfg.Input), cfg.Input.Path)
		return err
	})
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var doc *json.Document
	err = metrics.Step(job, "parse", func() (err error) {
		doc, err = json.Parse(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", cfg.Input.Path, err)
	}
	logger.Info("records decoded", zap.String("input", cfg.Input.Path), zap.Int("records", doc.Len()))
	metrics.RecordRecords(job, "decoded", int64(doc.Len()))

	var s *script.Script
	err = metrics.Step(job, "build", func() (err error) {
		s, err = script.Build(doc, script.Options{SQLMode: cfg.SQLMode, Logger: logger})
		return err
	})
	if err != nil {
		return err
	}

	var res sink.Result
	err = metrics.Step(job, "write", func() (err error) {
		res, err = sink.WriteAtomic(cfg.Output.Path, s)
		return err
	})
	if err != nil {
		return err
	}
	logger.Info("script written",
		zap.String("output", res.Path),
		zap.Int64("bytes", res.Bytes),
		zap.Int("inserts", len(s.Inserts)),
		zap.String("xxh3", res.Digest),
	)
	metrics.RecordRecords(job, "written", int64(len(s.Inserts)))

	if cfg.Verify {
		var rep sqlite.Report
		err = metrics.Step(job, "verify", func() (err error) {
			rep, err = sqlite.Verify(ctx, s, logger)
			return err
		})
		if err != nil {
			return err
		}
		logger.Info("sqlite verify passed", zap.Int("statements", rep.Statements), zap.Int64("rows", rep.Rows))
		metrics.RecordRecords(job, "verified", rep.Rows)
	}

	if cfg.Apply.Enabled() {
		err = metrics.Step(job, "apply", func() error {
			n, err := apply(ctx, cfg.Apply, s, logger)
			metrics.RecordRecords(job, "applied", int64(n))
			return err
		})
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(stdout, completionMessage)
	return err
}

// openInput returns the source for in.Path: an HTTP source for http(s)
// URLs, the local filesystem otherwise.
func openInput(in config.Input) datasource.Source {
	if httpds.IsURL(in.Path) {
		return httpds.NewSource(httpds.NewClient(httpds.Config{
			MaxRetries:         in.MaxRetries,
			InsecureSkipVerify: in.InsecureSkipVerify,
		}), in.Path)
	}
	return file.NewLocal(in.Path)
}

// apply runs s against the configured backend on one session: the session
// preamble, the table through the backend's DDL bootstrapper, then the
// inserts and trailer. It logs the resulting table size.
//
// It returns the number of statements executed.
func apply(ctx context.Context, a config.Apply, s *script.Script, logger *zap.Logger) (int, error) {
	repo, err := storage.New(ctx, storage.Config{Kind: a.Kind, DSN: a.DSN})
	if err != nil {
		return 0, fmt.Errorf("apply: %w", err)
	}
	defer repo.Close()

	target := a.Kind
	if t, ok := repo.(interface{ Target() string }); ok {
		target = t.Target()
	}

	n, err := storage.ExecAll(ctx, repo, s.Preamble, storage.DefaultProgressEvery, logger)
	if err != nil {
		return n, fmt.Errorf("apply to %s: preamble: %w", target, err)
	}
	if err := storage.EnsureTable(ctx, a.Kind, repo, s.Table); err != nil {
		return n, fmt.Errorf("apply to %s: create table: %w", target, err)
	}
	n++

	rest := make([]string, 0, len(s.Inserts)+len(s.Trailer))
	rest = append(rest, s.Inserts...)
	rest = append(rest, s.Trailer...)
	m, err := storage.ExecAll(ctx, repo, rest, storage.DefaultProgressEvery, logger)
	n += m
	if err != nil {
		return n, fmt.Errorf("apply to %s: %w", target, err)
	}

	fields := []zap.Field{zap.String("target", target), zap.Int("statements", n)}
	if c, ok := repo.(storage.Counter); ok {
		rows, err := c.Count(ctx, s.Table.FQN)
		if err != nil {
			return n, fmt.Errorf("apply to %s: %w", target, err)
		}
		fields = append(fields, zap.Int64("table_rows", rows))
	}
	logger.Info("script applied", fields...)
	return n, nil
}
