package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Config.
//
// Path is a dotted path into the config (e.g. "apply.dsn"). Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// applyKinds lists the backends the script can be applied to. SQLite is a
// verification target only; it does not understand the MySQL preamble.
var applyKinds = map[string]struct{}{
	"mysql": {},
}

// Validate performs static validation of c. It does not mutate c and does
// not touch the filesystem or network; callers decide whether warnings are
// fatal.
func Validate(c Config) []Issue {
	var issues []Issue
	issues = append(issues, validatePaths(c)...)
	issues = append(issues, validateSQLMode(c.SQLMode)...)
	issues = append(issues, validateApply(c.Apply)...)
	issues = append(issues, validateMetrics(c.Metrics)...)
	return issues
}

// HasErrors reports whether issues contains an error-severity issue.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validatePaths(c Config) []Issue {
	var issues []Issue

	in := strings.TrimSpace(c.Input.Path)
	out := strings.TrimSpace(c.Output.Path)
	if in == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.path",
			Message:  "input.path must not be empty",
		})
	}
	if out == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.path",
			Message:  "output.path must not be empty",
		})
	}
	if c.Input.MaxRetries < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "input.max_retries",
			Message:  "input.max_retries must not be negative",
		})
	}
	if c.Input.InsecureSkipVerify {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "input.insecure_skip_verify",
			Message:  "TLS certificate verification is disabled for URL inputs",
		})
	}
	if in != "" && out != "" && filepath.Clean(in) == filepath.Clean(out) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.path",
			Message:  fmt.Sprintf("output.path %q would overwrite the input", out),
		})
	}
	return issues
}

func validateSQLMode(mode string) []Issue {
	if mode == "" {
		return nil
	}
	for _, m := range strings.Split(mode, ",") {
		if strings.EqualFold(strings.TrimSpace(m), "NO_BACKSLASH_ESCAPES") {
			return nil
		}
	}
	return []Issue{{
		Severity: SeverityWarning,
		Path:     "sql_mode",
		Message:  "sql_mode lacks NO_BACKSLASH_ESCAPES; text containing backslashes will not load verbatim",
	}}
}

func validateApply(a Apply) []Issue {
	var issues []Issue
	if !a.Enabled() {
		return nil
	}

	switch {
	case strings.TrimSpace(a.Kind) == "":
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "apply.kind",
			Message:  "apply.kind must be set when apply.dsn is given",
		})
	default:
		if _, ok := applyKinds[a.Kind]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "apply.kind",
				Message:  fmt.Sprintf("unsupported apply kind %q; supported: mysql", a.Kind),
			})
		}
	}

	if strings.TrimSpace(a.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "apply.dsn",
			Message:  "apply.dsn must not be empty when apply.kind is set",
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	switch m.Backend {
	case "", "none":
		return nil
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires a URL",
			}}
		}
	case "datadog":
		if strings.TrimSpace(m.DogStatsDAddr) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.dogstatsd_addr",
				Message:  "datadog backend requires an agent address",
			}}
		}
	default:
		return []Issue{{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics disabled", m.Backend),
		}}
	}
	return nil
}
