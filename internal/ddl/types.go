package ddl

// Logical column types understood by the dialect type mappers.
const (
	TypeInt    = "int"
	TypeString = "string" // bounded text, see ColumnDef.Length
	TypeText   = "text"   // unbounded text
	TypeJSON   = "json"
)

// ColumnDef describes a single column in a table definition. It intentionally
// uses simple, database-agnostic fields.
//
// Fields:
//   - Name: logical column name (unquoted; quoting happens at render time)
//   - Type: logical type, one of the Type* constants
//   - Length: maximum length for TypeString; 0 means the dialect default
//   - Nullable: whether NULL is allowed (ignored for primary key columns)
//   - PrimaryKey: whether the column is part of the primary key
//   - AutoIncrement: whether the database generates the value
//   - Default: raw default expression (e.g., 'anon', CURRENT_TIMESTAMP)
type ColumnDef struct {
	Name          string
	Type          string
	Length        int
	Nullable      bool
	PrimaryKey    bool
	AutoIncrement bool
	Default       string
}

// TableDef holds the table name (FQN) and an ordered list of columns.
// IfNotExists renders a conditional CREATE that leaves an existing table
// untouched.
type TableDef struct {
	FQN         string
	Columns     []ColumnDef
	IfNotExists bool
}

// DataColumns returns the names of the columns a caller supplies values for,
// i.e. every column except auto-generated ones, in declaration order.
func (t TableDef) DataColumns() []string {
	out := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.AutoIncrement {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}
