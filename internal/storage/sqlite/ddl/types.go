// Package ddl contains SQLite-specific helpers for generating DDL.
//
// It maps logical column types into SQLite column types. The mapping is
// intentionally simple and biased toward SQLite's type affinities.
package ddl

import "strings"

// MapType maps a logical type string (e.g., "int", "string", "json") into a
// SQLite column type.
//
// SQLite supports dynamic typing, so this mapping prefers canonical affinities:
//   - integer-ish types -> INTEGER
//   - boolean          -> INTEGER (0/1)
//   - float-ish types  -> REAL
//   - json, text and anything else -> TEXT
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int", "integer", "bigint":
		return "INTEGER"
	case "bool", "boolean":
		return "INTEGER" // 0/1
	case "float", "double", "real":
		return "REAL"
	case "numeric", "decimal":
		return "NUMERIC"
	case "blob", "bytes":
		return "BLOB"
	default:
		return "TEXT"
	}
}
