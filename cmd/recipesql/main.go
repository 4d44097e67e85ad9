// Command recipesql converts a JSON document of recipe records into a MySQL
// script that recreates them in a "recipes" table.
//
// Usage:
//
//	recipesql [-config cfg.json] [-input recipes.json] [-output import_recipes_fixed.sql]
//	          [-sql-mode MODE] [-verify] [-apply-dsn DSN] [-validate] [-v]
//	          [-metrics-backend none|pushgateway|datadog] [-pushgateway-url URL]
//	          [-dogstatsd-addr ADDR]
//
// Flags override values from the config file. RECIPESQL_APPLY_DSN supplies
// the apply DSN, and PUSHGATEWAY_URL / DD_DOGSTATSD_ADDR the metrics
// endpoints, when neither a flag nor the config file sets one.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"recipesql/internal/config"

	// register all backends with the storage factory.
	_ "recipesql/internal/storage/all"
)

// Environment fallbacks.
const (
	envApplyDSN       = "RECIPESQL_APPLY_DSN"
	envPushgatewayURL = "PUSHGATEWAY_URL"
	envDogStatsDAddr  = "DD_DOGSTATSD_ADDR"
)

// cliOptions holds flags that are not part of config.Config.
type cliOptions struct {
	validate bool
	verbose  bool
}

func main() {
	cfg, opts, err := parseArgs(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fatalf("%v", err)
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		logger.Error("configuration is invalid")
		os.Exit(1)
	}
	if opts.validate {
		logger.Info("configuration is valid")
		os.Exit(0)
	}

	logger.Debug("config",
		zap.String("input", cfg.Input.Path),
		zap.String("output", cfg.Output.Path),
		zap.String("sql_mode", cfg.SQLMode),
		zap.Bool("verify", cfg.Verify),
		zap.String("apply_kind", cfg.Apply.Kind),
	)

	flush := setupMetrics(cfg.Metrics, logger)
	defer flush()

	start := time.Now()
	if err := run(context.Background(), cfg, logger, os.Stdout); err != nil {
		logger.Error("run failed", zap.Error(err))
		flush()
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
	logger.Debug("completed", zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)))
}

// parseArgs builds the effective configuration: defaults, then the config
// file (if any), then explicitly set flags, then the environment fallback for
// the apply DSN.
func parseArgs(args []string, getenv func(string) string, stderr io.Writer) (config.Config, cliOptions, error) {
	var (
		opts     cliOptions
		cfgPath  string
		input    string
		output   string
		sqlMode  string
		verify   bool
		applyDSN string
		mBackend string
		mPushURL string
		mDDAddr  string
	)

	def := config.Default()
	fs := flag.NewFlagSet("recipesql", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfgPath, "config", "", "optional config JSON path")
	fs.StringVar(&input, "input", def.Input.Path, "input recipe JSON path")
	fs.StringVar(&output, "output", def.Output.Path, "output SQL script path")
	fs.StringVar(&sqlMode, "sql-mode", def.SQLMode, "session sql_mode written into the script")
	fs.BoolVar(&verify, "verify", false, "execute the generated INSERTs against in-memory SQLite")
	fs.StringVar(&applyDSN, "apply-dsn", "", "MySQL DSN to apply the script to (env "+envApplyDSN+")")
	fs.StringVar(&mBackend, "metrics-backend", def.Metrics.Backend, "metrics backend (none, pushgateway, datadog)")
	fs.StringVar(&mPushURL, "pushgateway-url", "", "Pushgateway base URL (env "+envPushgatewayURL+")")
	fs.StringVar(&mDDAddr, "dogstatsd-addr", "", "DogStatsD agent address (env "+envDogStatsDAddr+")")
	fs.BoolVar(&opts.validate, "validate", false, "validate the configuration and exit")
	fs.BoolVar(&opts.verbose, "v", false, "enable verbose logs")

	if err := fs.Parse(args); err != nil {
		return config.Config{}, opts, err
	}
	if fs.NArg() > 0 {
		return config.Config{}, opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if cfgPath != "" {
		var err error
		if cfg, err = config.Load(cfgPath); err != nil {
			return config.Config{}, opts, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input.Path = input
		case "output":
			cfg.Output.Path = output
		case "sql-mode":
			cfg.SQLMode = sqlMode
		case "verify":
			cfg.Verify = verify
		case "apply-dsn":
			cfg.Apply.DSN = applyDSN
			if cfg.Apply.Kind == "" {
				cfg.Apply.Kind = "mysql"
			}
		case "metrics-backend":
			cfg.Metrics.Backend = mBackend
		case "pushgateway-url":
			cfg.Metrics.PushgatewayURL = mPushURL
		case "dogstatsd-addr":
			cfg.Metrics.DogStatsDAddr = mDDAddr
		}
	})

	if cfg.Apply.DSN == "" {
		if dsn := getenv(envApplyDSN); dsn != "" {
			cfg.Apply.DSN = dsn
			if cfg.Apply.Kind == "" {
				cfg.Apply.Kind = "mysql"
			}
		}
	}
	if cfg.Metrics.PushgatewayURL == "" {
		cfg.Metrics.PushgatewayURL = getenv(envPushgatewayURL)
	}
	if cfg.Metrics.DogStatsDAddr == "" {
		cfg.Metrics.DogStatsDAddr = getenv(envDogStatsDAddr)
	}
	return cfg, opts, nil
}

// newLogger builds the production JSON logger on stderr; verbose lowers the
// level to debug.
func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
