// Package ddl defines a small, backend-agnostic model for SQL DDL and a
// renderer for CREATE TABLE statements driven by a Dialect.
//
// Backend-specific packages (internal/storage/mysql/ddl,
// internal/storage/sqlite/ddl) provide the Dialect values: type mapping,
// identifier quoting, indentation and the auto-increment keyword.
package ddl

import (
	"fmt"
	"strings"
)

// Dialect carries the SQL flavour specific parts of CREATE TABLE rendering.
type Dialect struct {
	// Name is used in error messages, e.g. "mysql".
	Name string

	// MapType returns the column type for c. Required.
	MapType func(c ColumnDef) string

	// QuoteIdent quotes a single identifier segment. Nil emits names as-is.
	QuoteIdent func(id string) string

	// Indent prefixes every column line. Defaults to two spaces.
	Indent string

	// AutoIncrement is the keyword for generated keys, e.g. "AUTO_INCREMENT".
	AutoIncrement string

	// AutoIncrementAfterKey renders "PRIMARY KEY <kw>" instead of
	// "<kw> PRIMARY KEY" for an inline auto-increment key.
	AutoIncrementAfterKey bool
}

// BuildCreateTableSQL renders a CREATE TABLE statement for t.
//
// Rules:
//
//   - t.FQN must be non-empty; dotted names have each segment quoted.
//
//   - Each column must have a non-empty Name and a type the dialect maps.
//
//   - A column is rendered as:
//
//     <Name> <Type> [NOT NULL] [DEFAULT <Default>]
//
//     where NOT NULL is added when Nullable == false and the column is not
//     a primary key column.
//
//   - A single primary key column is declared inline together with the
//     auto-increment keyword (e.g. "id INT AUTO_INCREMENT PRIMARY KEY");
//     multiple key columns are rendered as a trailing PRIMARY KEY (...) clause.
//
//   - The statement has the form:
//
//     CREATE TABLE [IF NOT EXISTS] <FQN> (
//     <col1-def>,
//     ...
//     );
func BuildCreateTableSQL(t TableDef, d Dialect) (string, error) {
	prefix := "ddl"
	if d.Name != "" {
		prefix = d.Name + " ddl"
	}
	if d.MapType == nil {
		return "", fmt.Errorf("%s: dialect has no type mapper", prefix)
	}
	fqn := strings.TrimSpace(t.FQN)
	if fqn == "" {
		return "", fmt.Errorf("%s: table FQN must not be empty", prefix)
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("%s: at least one column is required", prefix)
	}

	quote := d.QuoteIdent
	if quote == nil {
		quote = func(id string) string { return id }
	}
	indent := d.Indent
	if indent == "" {
		indent = "  "
	}

	pkCount := 0
	for _, c := range t.Columns {
		if c.PrimaryKey {
			pkCount++
		}
	}
	inlinePK := pkCount == 1

	cols := make([]string, 0, len(t.Columns)+1)
	pks := make([]string, 0, pkCount)

	for _, c := range t.Columns {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return "", fmt.Errorf("%s: column with empty name in table %s", prefix, fqn)
		}
		typ := strings.TrimSpace(d.MapType(c))
		if typ == "" {
			return "", fmt.Errorf("%s: column %s has unsupported type %q", prefix, name, c.Type)
		}

		var sb strings.Builder
		sb.WriteString(quote(name))
		sb.WriteByte(' ')
		sb.WriteString(typ)

		if !c.Nullable && !c.PrimaryKey {
			sb.WriteString(" NOT NULL")
		}

		switch {
		case c.PrimaryKey && inlinePK && c.AutoIncrement && d.AutoIncrement != "":
			if d.AutoIncrementAfterKey {
				sb.WriteString(" PRIMARY KEY " + d.AutoIncrement)
			} else {
				sb.WriteString(" " + d.AutoIncrement + " PRIMARY KEY")
			}
		case c.PrimaryKey && inlinePK:
			sb.WriteString(" PRIMARY KEY")
		case c.AutoIncrement && d.AutoIncrement != "":
			sb.WriteString(" " + d.AutoIncrement)
		}

		if def := strings.TrimSpace(c.Default); def != "" {
			sb.WriteString(" DEFAULT ")
			sb.WriteString(def)
		}

		cols = append(cols, sb.String())

		if c.PrimaryKey {
			pks = append(pks, quote(name))
		}
	}

	if len(pks) > 1 {
		cols = append(cols, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pks, ", ")))
	}

	create := "CREATE TABLE "
	if t.IfNotExists {
		create += "IF NOT EXISTS "
	}

	stmt := fmt.Sprintf(
		"%s%s (\n%s%s\n);",
		create,
		quoteFQN(fqn, quote),
		indent,
		strings.Join(cols, ",\n"+indent),
	)
	return stmt, nil
}

func quoteFQN(fqn string, quote func(string) string) string {
	parts := strings.Split(fqn, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, quote(p))
	}
	return strings.Join(out, ".")
}
