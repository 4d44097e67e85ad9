package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqliteddl "recipesql/internal/storage/sqlite/ddl"
)

func openMemory(t *testing.T) *Repository {
	t.Helper()
	repo, closeFn, err := NewRepository(context.Background(), Config{DSN: MemoryDSN})
	require.NoError(t, err)
	t.Cleanup(closeFn)
	return repo
}

// readColumn returns column of table ordered by rowid, as text, with NULLs
// reported as nil.
func readColumn(t *testing.T, repo *Repository, table, column string) []*string {
	t.Helper()
	q := fmt.Sprintf("SELECT CAST(%s AS TEXT) FROM %s ORDER BY rowid",
		sqliteddl.QuoteFQN(column), sqliteddl.QuoteFQN(table))
	rows, err := repo.db.QueryContext(context.Background(), q)
	require.NoError(t, err)
	defer rows.Close()

	var out []*string
	for rows.Next() {
		var v sql.NullString
		require.NoError(t, rows.Scan(&v))
		if v.Valid {
			s := v.String
			out = append(out, &s)
		} else {
			out = append(out, nil)
		}
	}
	require.NoError(t, rows.Err())
	return out
}

func TestNewRepository_EmptyDSN(t *testing.T) {
	_, _, err := NewRepository(context.Background(), Config{DSN: "  "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN must not be empty")
}

func TestRepository_ExecCount(t *testing.T) {
	ctx := context.Background()
	repo := openMemory(t)

	require.NoError(t, repo.Exec(ctx, `CREATE TABLE "t" ("v" TEXT)`))
	require.NoError(t, repo.Exec(ctx, "   "))
	require.NoError(t, repo.Exec(ctx, `INSERT INTO t (v) VALUES ('it''s')`))
	require.NoError(t, repo.Exec(ctx, `INSERT INTO t (v) VALUES (NULL)`))
	require.NoError(t, repo.Exec(ctx, `INSERT INTO t (v) VALUES ('a\nb')`))

	n, err := repo.Count(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	vals := readColumn(t, repo, "t", "v")
	require.Len(t, vals, 3)
	require.NotNil(t, vals[0])
	assert.Equal(t, "it's", *vals[0])
	assert.Nil(t, vals[1])
	require.NotNil(t, vals[2])
	assert.Equal(t, `a\nb`, *vals[2])
}

func TestRepository_ExecError(t *testing.T) {
	repo := openMemory(t)
	err := repo.Exec(context.Background(), "INSERT INTO missing VALUES (1)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: exec:")
}

func TestRepository_CountMissingTable(t *testing.T) {
	repo := openMemory(t)
	_, err := repo.Count(context.Background(), "missing")
	require.Error(t, err)
}
