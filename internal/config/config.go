// Package config defines the JSON-serializable configuration model for
// recipesql. Configuration can be loaded from disk, overlaid with command
// line flags, and checked with Validate before any work starts.
//
// Example:
//
//	{
//	  "input":    { "path": "recipes.json" },
//	  "output":   { "path": "import_recipes_fixed.sql" },
//	  "sql_mode": "NO_AUTO_VALUE_ON_ZERO,NO_BACKSLASH_ESCAPES",
//	  "verify":   true,
//	  "apply":    { "kind": "mysql", "dsn": "root:root@tcp(localhost:3306)/recipes_db" },
//	  "metrics":  { "backend": "pushgateway", "pushgateway_url": "http://localhost:9091" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"recipesql/internal/script"
)

// Default artifact locations.
const (
	DefaultInputPath  = "recipes.json"
	DefaultOutputPath = "import_recipes_fixed.sql"
	DefaultMetricsJob = "recipesql"
	DefaultMaxRetries = 3
)

// Config is the top-level object decoded from a config file.
type Config struct {
	// Input is the recipe document to read.
	Input Input `json:"input"`

	// Output is the script file to (over)write.
	Output Output `json:"output"`

	// SQLMode is the session sql_mode written into the script preamble.
	SQLMode string `json:"sql_mode"`

	// Verify executes the generated INSERTs against in-memory SQLite after
	// the script is written.
	Verify bool `json:"verify"`

	// Apply optionally executes the script against a live database.
	Apply Apply `json:"apply"`

	// Metrics selects where run metrics are sent.
	Metrics Metrics `json:"metrics"`
}

// Input identifies the input artifact.
type Input struct {
	// Path is the local filesystem path, or an http(s) URL, of the JSON
	// document.
	Path string `json:"path"`

	// MaxRetries bounds retries of transient HTTP failures for URL inputs.
	MaxRetries int `json:"max_retries"`

	// InsecureSkipVerify disables TLS certificate checks for URL inputs.
	InsecureSkipVerify bool `json:"insecure_skip_verify"`
}

// Output identifies the output artifact.
type Output struct {
	// Path is the local filesystem path of the generated script.
	Path string `json:"path"`
}

// Apply configures the optional database sink.
type Apply struct {
	// Kind selects the storage backend. Empty disables apply; current value:
	// "mysql".
	Kind string `json:"kind"`

	// DSN is the backend connection string.
	DSN string `json:"dsn"`
}

// Metrics configures the run metrics backend.
type Metrics struct {
	// Backend is "none", "pushgateway" or "datadog". Empty means "none".
	Backend string `json:"backend"`

	// Job labels every metric and groups pushes on the Pushgateway.
	Job string `json:"job"`

	// PushgatewayURL is the Pushgateway base URL for the "pushgateway" backend.
	PushgatewayURL string `json:"pushgateway_url"`

	// DogStatsDAddr is the agent address for the "datadog" backend.
	DogStatsDAddr string `json:"dogstatsd_addr"`
}

// Enabled reports whether the script should be applied to a database.
func (a Apply) Enabled() bool { return a.Kind != "" || a.DSN != "" }

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Input:   Input{Path: DefaultInputPath, MaxRetries: DefaultMaxRetries},
		Output:  Output{Path: DefaultOutputPath},
		SQLMode: script.DefaultSQLMode,
		Metrics: Metrics{Backend: "none", Job: DefaultMetricsJob},
	}
}

// Load decodes the config file at path on top of Default, so keys absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	c := Default()
	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}
