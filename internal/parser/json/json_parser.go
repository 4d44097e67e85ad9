// Package json decodes a recipe document into ordered records.
//
// The expected input is a single JSON object whose members are records:
//
//	{
//	  "r1": {"cuisine": "Italian", "title": "Tom's Pasta", "prep_time": 10},
//	  "r2": {"cuisine": "Thai", "nutrients": {"cal": 400}}
//	}
//
// Member order is preserved at every level, both for the records of the
// document and for the fields inside nested objects, so two decodes of the
// same bytes always iterate identically. When a key repeats, the last value
// wins and the key keeps its first position.
//
// Numbers are kept as their exact source text (see sqlvalue.Number).
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"recipesql/internal/sqlvalue"
)

var (
	// ErrInvalidJSON is returned when the input is not well-formed JSON.
	ErrInvalidJSON = errors.New("json parser: invalid JSON")

	// ErrNotObject is returned when the document, or one of its records, is
	// not a JSON object.
	ErrNotObject = errors.New("json parser: not a JSON object")
)

// Document is an ordered mapping of record key to record.
type Document struct {
	records *orderedmap.OrderedMap[string, *sqlvalue.Object]
}

// Len returns the number of records.
func (d *Document) Len() int {
	if d == nil || d.records == nil {
		return 0
	}
	return d.records.Len()
}

// Each calls fn for every record in document order. Iteration stops at the
// first non-nil error, which is returned.
func (d *Document) Each(fn func(key string, rec *sqlvalue.Object) error) error {
	if d.Len() == 0 {
		return nil
	}
	for p := d.records.Oldest(); p != nil; p = p.Next() {
		if err := fn(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Parse decodes a whole document held in memory.
//
// It fails with ErrInvalidJSON when data is not a single well-formed JSON
// value, and with ErrNotObject when the top-level value or any record is not
// an object.
func Parse(data []byte) (*Document, error) {
	if err := validate(data); err != nil {
		return nil, err
	}
	if firstByte(data) != '{' {
		return nil, fmt.Errorf("%w: top-level value must be an object of records", ErrNotObject)
	}

	doc := &Document{records: orderedmap.New[string, *sqlvalue.Object]()}
	err := jsonparser.ObjectEach(data, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		k := string(key)
		if dt != jsonparser.Object {
			return fmt.Errorf("%w: record %q is %s", ErrNotObject, k, dt)
		}
		rec, err := parseObject(value)
		if err != nil {
			return fmt.Errorf("record %q: %w", k, err)
		}
		doc.records.Set(k, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func validate(data []byte) error {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

func firstByte(data []byte) byte {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}
	return data[0]
}

func parseValue(raw []byte, dt jsonparser.ValueType) (sqlvalue.Value, error) {
	switch dt {
	case jsonparser.Null:
		return sqlvalue.Null(), nil
	case jsonparser.Number:
		return sqlvalue.Number(string(raw)), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return sqlvalue.Null(), fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return sqlvalue.Bool(b), nil
	case jsonparser.String:
		s, err := parseString(raw)
		if err != nil {
			return sqlvalue.Null(), err
		}
		return sqlvalue.Text(s), nil
	case jsonparser.Object:
		obj, err := parseObject(raw)
		if err != nil {
			return sqlvalue.Null(), err
		}
		return sqlvalue.ObjectOf(obj), nil
	case jsonparser.Array:
		return parseArray(raw)
	default:
		return sqlvalue.Null(), fmt.Errorf("%w: unexpected value type %s", ErrInvalidJSON, dt)
	}
}

// parseString unescapes the contents of a JSON string. jsonparser rejects
// escapes that decode to a lone UTF-16 surrogate, such as "\ud800"; those
// strings go through encoding/json instead, which maps the surrogate to
// U+FFFD.
func parseString(raw []byte) (string, error) {
	s, err := jsonparser.ParseString(raw)
	if err == nil {
		return s, nil
	}
	quoted := make([]byte, 0, len(raw)+2)
	quoted = append(quoted, '"')
	quoted = append(quoted, raw...)
	quoted = append(quoted, '"')
	if uerr := json.Unmarshal(quoted, &s); uerr != nil {
		return "", fmt.Errorf("%w: string %q: %v", ErrInvalidJSON, raw, uerr)
	}
	return s, nil
}

func parseObject(raw []byte) (*sqlvalue.Object, error) {
	obj := sqlvalue.NewObject()
	err := jsonparser.ObjectEach(raw, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		k := string(key)
		v, err := parseValue(value, dt)
		if err != nil {
			return fmt.Errorf("field %q: %w", k, err)
		}
		obj.Set(k, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(raw []byte) (sqlvalue.Value, error) {
	inner := bytes.TrimSpace(raw)
	if len(inner) >= 2 && len(bytes.TrimSpace(inner[1:len(inner)-1])) == 0 {
		return sqlvalue.ArrayOf(), nil
	}

	var (
		out      []sqlvalue.Value
		firstErr error
	)
	_, err := jsonparser.ArrayEach(raw, func(value []byte, dt jsonparser.ValueType, _ int, err error) {
		if firstErr != nil {
			return
		}
		if err != nil {
			firstErr = fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			return
		}
		v, err := parseValue(value, dt)
		if err != nil {
			firstErr = fmt.Errorf("element %d: %w", len(out), err)
			return
		}
		out = append(out, v)
	})
	if firstErr != nil {
		return sqlvalue.Null(), firstErr
	}
	if err != nil {
		return sqlvalue.Null(), fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return sqlvalue.ArrayOf(out...), nil
}
