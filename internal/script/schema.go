package script

import (
	"recipesql/internal/ddl"
	"recipesql/internal/sqlvalue"
)

// TableName is the destination table of the generated script.
const TableName = "recipes"

// Field binds a record field to its destination column. Missing fields take
// Default.
type Field struct {
	Name    string
	Default func() sqlvalue.Value
}

// Fields lists the record fields in INSERT column order. A missing nutrients
// field becomes an empty object; every other missing field is NULL. A field
// present with a null value stays NULL.
var Fields = []Field{
	{Name: "cuisine"},
	{Name: "title"},
	{Name: "rating"},
	{Name: "prep_time"},
	{Name: "cook_time"},
	{Name: "total_time"},
	{Name: "description"},
	{Name: "nutrients", Default: sqlvalue.EmptyObject},
	{Name: "serves"},
}

// RecipesTable returns the definition of the recipes table. rating is text,
// not numeric, because source ratings are not always numbers (e.g. "N/A").
// The table is created only when missing; an existing table is never dropped.
func RecipesTable() ddl.TableDef {
	return ddl.TableDef{
		FQN:         TableName,
		IfNotExists: true,
		Columns: []ddl.ColumnDef{
			{Name: "id", Type: ddl.TypeInt, PrimaryKey: true, AutoIncrement: true},
			{Name: "cuisine", Type: ddl.TypeString, Length: 255, Nullable: true},
			{Name: "title", Type: ddl.TypeString, Length: 255, Nullable: true},
			{Name: "rating", Type: ddl.TypeText, Nullable: true},
			{Name: "prep_time", Type: ddl.TypeInt, Nullable: true},
			{Name: "cook_time", Type: ddl.TypeInt, Nullable: true},
			{Name: "total_time", Type: ddl.TypeInt, Nullable: true},
			{Name: "description", Type: ddl.TypeText, Nullable: true},
			{Name: "nutrients", Type: ddl.TypeJSON, Nullable: true},
			{Name: "serves", Type: ddl.TypeString, Length: 255, Nullable: true},
		},
	}
}

// FieldValue looks up f in rec, applying f.Default when the field is absent.
func FieldValue(rec *sqlvalue.Object, f Field) sqlvalue.Value {
	if rec != nil {
		if v, ok := rec.Get(f.Name); ok {
			return v
		}
	}
	if f.Default != nil {
		return f.Default()
	}
	return sqlvalue.Null()
}
