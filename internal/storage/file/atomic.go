// Package file writes generated scripts to the local filesystem.
//
// Writes are atomic: content goes to a temporary file in the destination
// directory, which is renamed over the target only after a successful sync.
// A failed run never leaves a truncated or partial output file behind.
package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
)

// Result describes a completed write.
type Result struct {
	Path  string
	Bytes int64
	// Digest is the xxh3-64 hash of the written content, as 16 hex digits.
	Digest string
}

// WriteAtomic streams src into path, replacing any existing file.
func WriteAtomic(path string, src io.WriterTo) (Result, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return Result{}, fmt.Errorf("create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	h := xxh3.New()
	bw := bufio.NewWriterSize(io.MultiWriter(tmp, h), 1<<16)

	n, err := src.WriteTo(bw)
	if err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return Result{}, fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return Result{}, fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return Result{}, fmt.Errorf("rename into %s: %w", path, err)
	}
	committed = true

	return Result{Path: path, Bytes: n, Digest: fmt.Sprintf("%016x", h.Sum64())}, nil
}

// Digest returns the xxh3-64 hash of b in the format used by Result.Digest.
func Digest(b []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(b))
}
