// Package mysql implements a MySQL-backed storage.Repository used to apply a
// generated script directly to a server.
//
// All statements run on a single pinned connection, so session settings from
// the script preamble (SET FOREIGN_KEY_CHECKS, SET SQL_MODE, SET NAMES) apply
// to every statement that follows them.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	driver "github.com/go-sql-driver/mysql"

	mysqlddl "recipesql/internal/storage/mysql/ddl"
)

// DefaultDialTimeout bounds connection establishment when the DSN sets none.
const DefaultDialTimeout = 10 * time.Second

// Config holds MySQL repository configuration derived from storage.Config.
type Config struct {
	// DSN in go-sql-driver/mysql format, e.g.
	// "user:pass@tcp(localhost:3306)/recipes_db".
	DSN string
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db   *sql.DB
	conn *sql.Conn
	cfg  *driver.Config
}

// ParseConfig parses and normalizes dsn:
//   - a dial timeout is set when the DSN has none
//   - multi-statement mode is disabled; statements are sent one at a time
func ParseConfig(dsn string) (*driver.Config, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("mysql: DSN must not be empty")
	}
	cfg, err := driver.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: parse DSN: %w", err)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultDialTimeout
	}
	cfg.MultiStatements = false
	return cfg, nil
}

// Target describes the server and database of cfg without credentials,
// e.g. "root@tcp(localhost:3306)/recipes_db".
func Target(cfg *driver.Config) string {
	return fmt.Sprintf("%s@%s(%s)/%s", cfg.User, cfg.Net, cfg.Addr, cfg.DBName)
}

// NewRepository connects to MySQL and pins one connection for the lifetime
// of the Repository. The returned func releases the connection and pool.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	dcfg, err := ParseConfig(cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	connector, err := driver.NewConnector(dcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: connector: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, dcfg.Timeout)
	defer cancel()
	conn, err := db.Conn(pingCtx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("mysql: connect %s: %w", Target(dcfg), err)
	}
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		db.Close()
		return nil, nil, fmt.Errorf("mysql: ping %s: %w", Target(dcfg), err)
	}

	r := &Repository{db: db, conn: conn, cfg: dcfg}
	closeFn := func() {
		r.conn.Close()
		r.db.Close()
	}
	return r, closeFn, nil
}

// Target describes the connected server without credentials.
func (r *Repository) Target() string { return Target(r.cfg) }

// Exec executes a single statement on the pinned connection.
func (r *Repository) Exec(ctx context.Context, stmt string) error {
	if strings.TrimSpace(stmt) == "" {
		return nil
	}
	if _, err := r.conn.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("mysql: exec: %w", err)
	}
	return nil
}

// Count returns the number of rows in table.
func (r *Repository) Count(ctx context.Context, table string) (int64, error) {
	var n int64
	q := "SELECT COUNT(*) FROM " + mysqlddl.QuoteFQN(table)
	if err := r.conn.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("mysql: count %s: %w", table, err)
	}
	return n, nil
}
