// Package ddl provides the SQLite dialect for the generic ddl renderer.
//
// The dialect:
//   - Uses simple double-quoted identifiers: "table", "col".
//   - Declares a single auto-generated key as
//     "<col> INTEGER PRIMARY KEY AUTOINCREMENT", the only form SQLite accepts.
//   - Treats ColumnDef.Default as raw SQL.
package ddl

import (
	"strings"

	gddl "recipesql/internal/ddl"
)

// Dialect is the SQLite rendering dialect.
var Dialect = gddl.Dialect{
	Name:                  "sqlite",
	MapType:               mapColumn,
	QuoteIdent:            quoteIdent,
	AutoIncrement:         "AUTOINCREMENT",
	AutoIncrementAfterKey: true,
}

// BuildCreateTableSQL returns a SQLite CREATE TABLE statement for the given
// table definition. The statement has the form:
//
//	CREATE TABLE [IF NOT EXISTS] "table" (
//	  "id" INTEGER PRIMARY KEY AUTOINCREMENT,
//	  "col2" TYPE
//	);
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect)
}

// QuoteFQN double-quotes each segment of a possibly-qualified table name.
func QuoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quoteIdent(p))
	}
	return strings.Join(out, ".")
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func mapColumn(c gddl.ColumnDef) string { return MapType(c.Type) }
