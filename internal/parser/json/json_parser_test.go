package json

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipesql/internal/sqlvalue"
)

func keys(t *testing.T, doc *Document) []string {
	t.Helper()
	out := []string{}
	require.NoError(t, doc.Each(func(key string, _ *sqlvalue.Object) error {
		out = append(out, key)
		return nil
	}))
	return out
}

func record(t *testing.T, doc *Document, key string) *sqlvalue.Object {
	t.Helper()
	var found *sqlvalue.Object
	require.NoError(t, doc.Each(func(k string, rec *sqlvalue.Object) error {
		if k == key {
			found = rec
		}
		return nil
	}))
	require.NotNil(t, found, "missing record %q", key)
	return found
}

/*
TestParse_PreservesOrder verifies that records and nested fields iterate in
the order they appear in the source, not in sorted or random order.
*/
func TestParse_PreservesOrder(t *testing.T) {
	t.Parallel()

	in := `{
	  "zeta":  {"title": "Z", "nutrients": {"z": 1, "a": 2}},
	  "alpha": {"title": "A"},
	  "mid":   {"title": "M"}
	}`

	doc, err := Parse([]byte(in))
	require.NoError(t, err)
	assert.Equal(t, 3, doc.Len())
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys(t, doc))

	rec := record(t, doc, "zeta")
	nutrients, ok := rec.Get("nutrients")
	require.True(t, ok)
	assert.Equal(t, `{"z": 1, "a": 2}`, sqlvalue.JSON(nutrients))

	var titles []string
	require.NoError(t, doc.Each(func(_ string, rec *sqlvalue.Object) error {
		v, _ := rec.Get("title")
		titles = append(titles, sqlvalue.Literal(v))
		return nil
	}))
	assert.Equal(t, []string{"'Z'", "'A'", "'M'"}, titles)
}

/*
TestParse_ValueKinds verifies the mapping from JSON value types to
sqlvalue kinds, including exact number text and string unescaping.
*/
func TestParse_ValueKinds(t *testing.T) {
	t.Parallel()

	in := `{"r": {
	  "s": "Tom's \"best\" é",
	  "i": 10,
	  "f": 4.50,
	  "e": -1.5e3,
	  "t": true,
	  "n": null,
	  "o": {},
	  "a": [1, "x", [], {"k": null}]
	}}`

	doc, err := Parse([]byte(in))
	require.NoError(t, err)
	rec := record(t, doc, "r")

	get := func(k string) sqlvalue.Value {
		v, ok := rec.Get(k)
		require.True(t, ok, "missing field %q", k)
		return v
	}

	assert.Equal(t, sqlvalue.Text(`Tom's "best" é`), get("s"))
	assert.Equal(t, sqlvalue.Number("10"), get("i"))
	assert.Equal(t, sqlvalue.Number("4.50"), get("f"))
	assert.Equal(t, sqlvalue.Number("-1.5e3"), get("e"))
	assert.Equal(t, sqlvalue.Bool(true), get("t"))
	assert.Equal(t, sqlvalue.Null(), get("n"))
	assert.Equal(t, "'{}'", sqlvalue.Literal(get("o")))
	assert.Equal(t, `[1, "x", [], {"k": null}]`, sqlvalue.JSON(get("a")))
}

// TestParse_LoneSurrogate verifies a string escape that decodes to an
// unpaired UTF-16 surrogate is accepted and read as U+FFFD.
func TestParse_LoneSurrogate(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"r": {"title": "a\ud800b", "tags": ["\udc00"]}}`))
	require.NoError(t, err)

	rec := record(t, doc, "r")
	title, _ := rec.Get("title")
	assert.Equal(t, sqlvalue.Text("a\ufffdb"), title)
	tags, _ := rec.Get("tags")
	assert.Equal(t, `["\ufffd"]`, sqlvalue.JSON(tags))
}

func TestParseString_BadEscape(t *testing.T) {
	t.Parallel()

	_, err := parseString([]byte(`\x41`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

// TestParse_DuplicateKeys verifies last-value-wins with first position kept.
func TestParse_DuplicateKeys(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(`{"a": {"x": 1}, "b": {"x": 2}, "a": {"x": 3}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys(t, doc))

	rec := record(t, doc, "a")
	v, _ := rec.Get("x")
	assert.Equal(t, sqlvalue.Number("3"), v)
}

func TestParse_EmptyDocument(t *testing.T) {
	t.Parallel()

	doc, err := Parse([]byte(" {} \n"))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, keys(t, doc))
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "empty input", in: "", wantErr: ErrInvalidJSON},
		{name: "truncated", in: `{"r1": {"title": "x"`, wantErr: ErrInvalidJSON},
		{name: "trailing garbage", in: `{"r1": {}} {}`, wantErr: ErrInvalidJSON},
		{name: "top-level array", in: `[{"title": "x"}]`, wantErr: ErrNotObject},
		{name: "top-level string", in: `"x"`, wantErr: ErrNotObject},
		{name: "record is null", in: `{"r1": null}`, wantErr: ErrNotObject},
		{name: "record is array", in: `{"r1": [1, 2]}`, wantErr: ErrNotObject},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, err := Parse([]byte(tt.in))
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDocument_NilSafe(t *testing.T) {
	t.Parallel()

	var d *Document
	assert.Equal(t, 0, d.Len())
	assert.NoError(t, d.Each(func(string, *sqlvalue.Object) error { return nil }))
}
