package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"recipesql/internal/config"
	"recipesql/internal/script"
)

func noEnv(string) string { return "" }

func TestParseArgs_Defaults(t *testing.T) {
	cfg, opts, err := parseArgs(nil, noEnv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.False(t, opts.validate)
	assert.False(t, opts.verbose)
}

func TestParseArgs_Flags(t *testing.T) {
	cfg, opts, err := parseArgs([]string{
		"-input", "in.json",
		"-output", "out.sql",
		"-sql-mode", "NO_BACKSLASH_ESCAPES",
		"-verify",
		"-apply-dsn", "root@tcp(localhost:3306)/recipes_db",
		"-validate", "-v",
	}, noEnv, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "in.json", cfg.Input.Path)
	assert.Equal(t, "out.sql", cfg.Output.Path)
	assert.Equal(t, "NO_BACKSLASH_ESCAPES", cfg.SQLMode)
	assert.True(t, cfg.Verify)
	assert.Equal(t, config.Apply{Kind: "mysql", DSN: "root@tcp(localhost:3306)/recipes_db"}, cfg.Apply)
	assert.True(t, opts.validate)
	assert.True(t, opts.verbose)
}

// TestParseArgs_FlagsOverrideFile verifies only explicitly set flags replace
// config file values.
func TestParseArgs_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
	  "input": {"path": "file-in.json"},
	  "output": {"path": "file-out.sql"},
	  "verify": true
	}`), 0o644))

	cfg, _, err := parseArgs([]string{"-config", path, "-output", "flag-out.sql"}, noEnv, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "file-in.json", cfg.Input.Path)
	assert.Equal(t, "flag-out.sql", cfg.Output.Path)
	assert.True(t, cfg.Verify)
	assert.Equal(t, script.DefaultSQLMode, cfg.SQLMode)
}

func TestParseArgs_EnvDSN(t *testing.T) {
	env := func(k string) string {
		if k == envApplyDSN {
			return "env@tcp(db:3306)/recipes"
		}
		return ""
	}

	cfg, _, err := parseArgs(nil, env, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, config.Apply{Kind: "mysql", DSN: "env@tcp(db:3306)/recipes"}, cfg.Apply)

	cfg, _, err = parseArgs([]string{"-apply-dsn", "flag@tcp(db:3306)/recipes"}, env, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "flag@tcp(db:3306)/recipes", cfg.Apply.DSN)
}

func TestParseArgs_Errors(t *testing.T) {
	_, _, err := parseArgs([]string{"-nope"}, noEnv, io.Discard)
	require.Error(t, err)

	_, _, err = parseArgs([]string{"extra"}, noEnv, io.Discard)
	require.Error(t, err)

	_, _, err = parseArgs([]string{"-config", filepath.Join(t.TempDir(), "missing.json")}, noEnv, io.Discard)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = newLogger(false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestParseArgs_Metrics(t *testing.T) {
	env := func(k string) string {
		switch k {
		case envPushgatewayURL:
			return "http://env-gw:9091"
		case envDogStatsDAddr:
			return "env-agent:8125"
		}
		return ""
	}

	cfg, _, err := parseArgs([]string{"-metrics-backend", "pushgateway"}, env, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "pushgateway", cfg.Metrics.Backend)
	assert.Equal(t, "http://env-gw:9091", cfg.Metrics.PushgatewayURL)
	assert.Equal(t, "env-agent:8125", cfg.Metrics.DogStatsDAddr)
	assert.Equal(t, config.DefaultMetricsJob, cfg.Metrics.Job)

	cfg, _, err = parseArgs([]string{"-metrics-backend", "datadog", "-dogstatsd-addr", "127.0.0.1:8125"}, env, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8125", cfg.Metrics.DogStatsDAddr)
}
