// Package script turns a decoded recipe document into a MySQL load script.
//
// A script has four parts, always in this order:
//
//  1. session preamble: disable foreign key checks, set the SQL mode, set
//     the connection character set
//  2. CREATE TABLE IF NOT EXISTS recipes (...)
//  3. one INSERT per record, in document order
//  4. trailer: re-enable foreign key checks
//
// The rendered text is a pure function of the document and Options, so two
// runs over the same input produce byte-identical output.
package script

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"recipesql/internal/ddl"
	"recipesql/internal/parser/json"
	"recipesql/internal/sqlvalue"
	mysqlddl "recipesql/internal/storage/mysql/ddl"
)

// DefaultSQLMode keeps explicit zeros in the id column and makes MySQL read
// string literals verbatim, so doubled quotes are the only escape in play.
const DefaultSQLMode = "NO_AUTO_VALUE_ON_ZERO,NO_BACKSLASH_ESCAPES"

// Options configures Build.
type Options struct {
	// SQLMode is the session sql_mode set by the preamble. Empty means
	// DefaultSQLMode.
	SQLMode string

	// Logger receives per-record debug lines. Nil disables logging.
	Logger *zap.Logger
}

// Script is a generated load script.
type Script struct {
	Preamble    []string
	CreateTable string
	Inserts     []string
	Trailer     []string

	// Table is the definition CreateTable was rendered from.
	Table ddl.TableDef
}

// Build renders the script for doc.
func Build(doc *json.Document, opt Options) (*Script, error) {
	logger := opt.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	mode := opt.SQLMode
	if mode == "" {
		mode = DefaultSQLMode
	}

	table := RecipesTable()
	create, err := mysqlddl.BuildCreateTableSQL(table)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	s := &Script{
		Preamble: []string{
			"SET FOREIGN_KEY_CHECKS=0;",
			"SET SQL_MODE=" + sqlvalue.Quote(mode) + ";",
			"SET NAMES utf8mb4;",
		},
		CreateTable: create,
		Inserts:     make([]string, 0, doc.Len()),
		Trailer:     []string{"SET FOREIGN_KEY_CHECKS=1;"},
		Table:       table,
	}

	err = doc.Each(func(key string, rec *sqlvalue.Object) error {
		s.Inserts = append(s.Inserts, InsertStatement(rec))
		logger.Debug("record encoded", zap.String("key", key), zap.Int("fields", rec.Len()))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// insertColumns is the column list shared by every INSERT: the table's
// non-generated columns in declaration order.
var insertColumns = strings.Join(RecipesTable().DataColumns(), ", ")

// InsertStatement renders the INSERT for one record:
//
//	INSERT INTO recipes (cuisine, ..., serves) VALUES ('Italian', ..., '2');
func InsertStatement(rec *sqlvalue.Object) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(TableName)
	sb.WriteString(" (")
	sb.WriteString(insertColumns)
	sb.WriteString(") VALUES (")
	for i, f := range Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(sqlvalue.Literal(FieldValue(rec, f)))
	}
	sb.WriteString(");")
	return sb.String()
}

// WriteTo writes the script text to w. It implements io.WriterTo.
//
// Layout: preamble lines, a blank line, the CREATE statement, a blank line,
// one INSERT per line, a blank line and the trailer. The file does not end
// with a newline.
func (s *Script) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, p := range s.Preamble {
		cw.line(p)
	}
	cw.line("")
	cw.line(s.CreateTable)
	cw.line("")
	for _, ins := range s.Inserts {
		cw.line(ins)
	}
	cw.write("\n" + strings.Join(s.Trailer, "\n"))
	return cw.n, cw.err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) write(str string) {
	if c.err != nil {
		return
	}
	n, err := io.WriteString(c.w, str)
	c.n += int64(n)
	c.err = err
}

func (c *countingWriter) line(str string) { c.write(str + "\n") }
