// Package datasource defines the input source contract and the Unicode
// handling every source applies to the bytes it delivers.
package datasource

import (
	"context"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Source opens a stream of input bytes.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Decode wraps rc so reads return UTF-8. A leading UTF-8 byte order mark is
// dropped; a UTF-16 (LE or BE) byte order mark switches decoding to UTF-16.
// Input without a BOM must be valid UTF-8: reads fail with
// encoding.ErrInvalidUTF8 at the first bad byte. Closing the result closes rc.
func Decode(rc io.ReadCloser) io.ReadCloser {
	return &decoded{
		Reader: transform.NewReader(rc, unicode.BOMOverride(encoding.UTF8Validator)),
		c:      rc,
	}
}

// ReadAll opens src and returns its full contents, which are always valid
// UTF-8; anything else fails with encoding.ErrInvalidUTF8. name identifies
// the source in errors.
func ReadAll(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("read %s: %w", name, encoding.ErrInvalidUTF8)
	}
	return data, nil
}

type decoded struct {
	io.Reader
	c io.Closer
}

func (d *decoded) Close() error { return d.c.Close() }
