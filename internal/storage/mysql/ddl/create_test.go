package ddl

import (
	"testing"

	gddl "recipesql/internal/ddl"
)

// TestQuoteIdent verifies that QuoteIdent correctly backtick-quotes identifiers and
// escapes backticks by doubling them.
func TestQuoteIdent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"simple", "`simple`"},
		{"recipes", "`recipes`"},
		{"tick`name", "`tick``name`"},
		{"weird``x", "`weird````x`"},
	}
	for _, tc := range cases {
		if got := QuoteIdent(tc.in); got != tc.want {
			t.Fatalf("QuoteIdent(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

// TestQuoteFQN verifies that QuoteFQN correctly quotes schema-qualified names using
// backtick-quoted identifier segments.
func TestQuoteFQN(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"table", "`table`"},
		{"food.recipes", "`food`.`recipes`"},
		{"a.b.c", "`a`.`b`.`c`"},
	}
	for _, tc := range cases {
		if got := QuoteFQN(tc.in); got != tc.want {
			t.Fatalf("QuoteFQN(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestMapType(t *testing.T) {
	cases := []struct {
		col  gddl.ColumnDef
		want string
	}{
		{gddl.ColumnDef{Type: "int"}, "INT"},
		{gddl.ColumnDef{Type: " INT "}, "INT"},
		{gddl.ColumnDef{Type: "string"}, "VARCHAR(255)"},
		{gddl.ColumnDef{Type: "string", Length: 50}, "VARCHAR(50)"},
		{gddl.ColumnDef{Type: "text"}, "TEXT"},
		{gddl.ColumnDef{Type: "json"}, "JSON"},
		{gddl.ColumnDef{Type: "blob"}, ""},
	}
	for _, tc := range cases {
		if got := MapType(tc.col); got != tc.want {
			t.Fatalf("MapType(%+v) = %q; want %q", tc.col, got, tc.want)
		}
	}
}

func TestBuildCreateTableSQL(t *testing.T) {
	def := gddl.TableDef{
		FQN:         "recipes",
		IfNotExists: true,
		Columns: []gddl.ColumnDef{
			{Name: "id", Type: gddl.TypeInt, PrimaryKey: true, AutoIncrement: true},
			{Name: "title", Type: gddl.TypeString, Nullable: true},
			{Name: "nutrients", Type: gddl.TypeJSON, Nullable: true},
		},
	}
	want := "CREATE TABLE IF NOT EXISTS recipes (\n" +
		"    id INT AUTO_INCREMENT PRIMARY KEY,\n" +
		"    title VARCHAR(255),\n" +
		"    nutrients JSON\n" +
		");"

	got, err := BuildCreateTableSQL(def)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() unexpected error = %v", err)
	}
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
}
