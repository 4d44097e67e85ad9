// Package ddl provides the MySQL dialect for the generic ddl renderer.
//
// The dialect:
//   - Emits identifiers unquoted; QuoteIdent backtick-quotes on demand.
//   - Indents column lines with four spaces.
//   - Declares a single auto-generated key inline as
//     "<col> INT AUTO_INCREMENT PRIMARY KEY".
package ddl

import (
	"strconv"
	"strings"

	gddl "recipesql/internal/ddl"
)

// DefaultVarcharLength is used for TypeString columns without a Length.
const DefaultVarcharLength = 255

// Dialect is the MySQL rendering dialect.
var Dialect = gddl.Dialect{
	Name:          "mysql",
	MapType:       MapType,
	Indent:        "    ",
	AutoIncrement: "AUTO_INCREMENT",
}

// BuildCreateTableSQL returns a MySQL CREATE TABLE statement for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.BuildCreateTableSQL(t, Dialect)
}

// MapType maps a logical column type into a MySQL column type. Unknown
// logical types map to "".
func MapType(c gddl.ColumnDef) string {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case gddl.TypeInt:
		return "INT"
	case gddl.TypeString:
		n := c.Length
		if n <= 0 {
			n = DefaultVarcharLength
		}
		return "VARCHAR(" + strconv.Itoa(n) + ")"
	case gddl.TypeText:
		return "TEXT"
	case gddl.TypeJSON:
		return "JSON"
	default:
		return ""
	}
}

// QuoteIdent backtick-quotes a MySQL identifier, doubling embedded backticks.
func QuoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}

// QuoteFQN quotes each dot-separated segment of a schema-qualified name.
func QuoteFQN(fqn string) string {
	parts := strings.Split(fqn, ".")
	for i, p := range parts {
		parts[i] = QuoteIdent(p)
	}
	return strings.Join(parts, ".")
}
