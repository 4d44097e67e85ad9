package sqlvalue

import "strings"

// NullToken is the unquoted SQL null literal.
const NullToken = "NULL"

// Literal converts v into a MySQL literal token suitable for the VALUES list
// of an INSERT statement:
//
//	null            -> NULL
//	number          -> the number text, unquoted
//	bool            -> TRUE / FALSE, unquoted
//	object / array  -> '<compact JSON>' with embedded ' doubled
//	text            -> '<text>' with embedded ' doubled
//
// Quotes are escaped by doubling, never with backslashes, so the output is
// only exact when the server runs with NO_BACKSLASH_ESCAPES or the values
// contain no backslashes.
func Literal(v Value) string {
	switch v.kind {
	case KindNull:
		return NullToken
	case KindNumber:
		if v.text == "" {
			return NullToken
		}
		return v.text
	case KindBool:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case KindObject, KindArray:
		return Quote(JSON(v))
	default:
		return Quote(v.text)
	}
}

// Quote wraps s in single quotes, doubling every embedded single quote.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2 + strings.Count(s, "'"))
	sb.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			sb.WriteByte('\'')
		}
		sb.WriteByte(s[i])
	}
	sb.WriteByte('\'')
	return sb.String()
}
