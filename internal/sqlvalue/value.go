// Package sqlvalue models the dynamically typed field values found in a recipe
// document and converts them into MySQL literal tokens.
//
// A Value is a closed variant over the JSON value shapes:
//
//   - Null:   absent or JSON null
//   - Number: a JSON number, kept as its exact source text
//   - Bool:   true / false
//   - Text:   a JSON string
//   - Object: an insertion-ordered mapping of field name to Value
//   - Array:  an ordered list of Values
//
// Numbers are never round-tripped through float64, so a literal such as
// 0.1000000000000000055511151231257827 is emitted exactly as it was read.
package sqlvalue

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindBool
	KindText
	KindObject
	KindArray
)

// Object is an insertion-ordered mapping of field name to Value. Setting an
// existing key replaces its value but keeps its original position.
type Object = orderedmap.OrderedMap[string, Value]

// NewObject returns an empty Object.
func NewObject() *Object {
	return orderedmap.New[string, Value]()
}

// Value is a single field value. The zero Value is Null.
type Value struct {
	kind Kind
	text string // number literal or string contents
	b    bool
	obj  *Object
	arr  []Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Number returns a numeric Value whose literal text is lit. The caller is
// responsible for lit being a valid JSON number.
func Number(lit string) Value { return Value{kind: KindNumber, text: lit} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Text returns a string Value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// ObjectOf wraps o as a Value. A nil o is treated as an empty object.
func ObjectOf(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// ArrayOf wraps vs as a Value.
func ArrayOf(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: KindArray, arr: vs}
}

// EmptyObject returns a Value holding a new empty object.
func EmptyObject() Value { return ObjectOf(nil) }
