package file

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writerToFunc func(w io.Writer) (int64, error)

func (f writerToFunc) WriteTo(w io.Writer) (int64, error) { return f(w) }

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteAtomic_WritesContentAndDigest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sql")

	res, err := WriteAtomic(path, strings.NewReader("SET NAMES utf8mb4;"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SET NAMES utf8mb4;", string(got))
	assert.Equal(t, int64(len(got)), res.Bytes)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, Digest(got), res.Digest)
	assert.Len(t, res.Digest, 16)
	assert.Equal(t, []string{"out.sql"}, listDir(t, dir))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteAtomic_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sql")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

	_, err := WriteAtomic(path, strings.NewReader("new"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestWriteAtomic_FailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sql")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	boom := errors.New("encode failed")
	_, err := WriteAtomic(path, writerToFunc(func(w io.Writer) (int64, error) {
		n, _ := io.WriteString(w, "partial")
		return int64(n), boom
	}))
	require.ErrorIs(t, err, boom)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(got))
	assert.Equal(t, []string{"out.sql"}, listDir(t, dir))
}

func TestWriteAtomic_FailureCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.sql")

	_, err := WriteAtomic(path, writerToFunc(func(io.Writer) (int64, error) {
		return 0, errors.New("nope")
	}))
	require.Error(t, err)
	assert.Empty(t, listDir(t, dir))
}

func TestWriteAtomic_MissingDir(t *testing.T) {
	_, err := WriteAtomic(filepath.Join(t.TempDir(), "missing", "out.sql"), strings.NewReader("x"))
	require.Error(t, err)
}

func TestDigest_Stable(t *testing.T) {
	assert.Equal(t, Digest([]byte("abc")), Digest([]byte("abc")))
	assert.NotEqual(t, Digest([]byte("abc")), Digest([]byte("abd")))
}
