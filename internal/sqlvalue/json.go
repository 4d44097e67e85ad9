package sqlvalue

import "strings"

const hexDigits = "0123456789abcdef"

// JSON renders v as single-line JSON text using ", " between elements and
// ": " between keys and values, with every control character below 0x20
// and every non-ASCII rune written as a \uXXXX escape. DEL (0x7f) is ASCII
// and passes through unescaped. Object keys keep their insertion order.
//
// The layout matches what common scripting-language serializers emit by
// default, e.g. {"calories": "389 kcal", "tags": ["a", "b"]}.
func JSON(v Value) string {
	var sb strings.Builder
	writeJSON(&sb, v)
	return sb.String()
}

func writeJSON(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindNumber:
		if v.text == "" {
			sb.WriteString("null")
			return
		}
		sb.WriteString(v.text)
	case KindBool:
		if v.b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindText:
		writeJSONString(sb, v.text)
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeJSON(sb, e)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		if v.obj != nil {
			first := true
			for p := v.obj.Oldest(); p != nil; p = p.Next() {
				if !first {
					sb.WriteString(", ")
				}
				first = false
				writeJSONString(sb, p.Key)
				sb.WriteString(": ")
				writeJSON(sb, p.Value)
			}
		}
		sb.WriteByte('}')
	}
}

func writeJSONString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r < 0x80:
				sb.WriteRune(r)
			case r > 0xffff:
				// Outside the BMP: escape as a UTF-16 surrogate pair.
				r -= 0x10000
				writeUnicodeEscape(sb, 0xd800+(r>>10))
				writeUnicodeEscape(sb, 0xdc00+(r&0x3ff))
			default:
				writeUnicodeEscape(sb, r)
			}
		}
	}
	sb.WriteByte('"')
}

func writeUnicodeEscape(sb *strings.Builder, r rune) {
	sb.WriteString(`\u`)
	sb.WriteByte(hexDigits[(r>>12)&0xf])
	sb.WriteByte(hexDigits[(r>>8)&0xf])
	sb.WriteByte(hexDigits[(r>>4)&0xf])
	sb.WriteByte(hexDigits[r&0xf])
}
