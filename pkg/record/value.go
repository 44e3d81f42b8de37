// Package record parses line-delimited JSON into typed records.
//
// Every non-blank line becomes one Record holding either a parsed Value or the
// parse error message. Lines are parsed independently so one malformed line
// never affects its neighbours.
package record

import (
	"bytes"
	"encoding/json"
	"strconv"
	"unicode/utf8"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object, in source order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a parsed JSON value. Only the field matching Kind is meaningful.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  string // literal text as written in the source
	Str     string
	Items   []*Value
	Members []Member
}

// Null returns a null value.
func Null() *Value { return &Value{Kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Number returns a number value from its literal text.
func Number(literal string) *Value { return &Value{Kind: KindNumber, Number: literal} }

// String returns a string value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Array returns an array value.
func Array(items ...*Value) *Value { return &Value{Kind: KindArray, Items: items} }

// Object returns an object value with the given members in order.
func Object(members ...Member) *Value { return &Value{Kind: KindObject, Members: members} }

// IsScalar reports whether the value is neither an array nor an object.
func (v *Value) IsScalar() bool {
	return v.Kind != KindArray && v.Kind != KindObject
}

// Get returns the value of an object member, or nil.
func (v *Value) Get(key string) *Value {
	if v.Kind != KindObject {
		return nil
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

// Interface converts the value to the generic Go representation used by
// encoding/json (map[string]any, []any, string, float64, bool, nil).
// Numbers that do not fit a float64 keep their json.Number literal.
func (v *Value) Interface() any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindBool:
		return v.Bool
	case KindNumber:
		if f, err := strconv.ParseFloat(v.Number, 64); err == nil {
			return f
		}
		return json.Number(v.Number)
	case KindString:
		return v.Str
	case KindArray:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.Members))
		for _, m := range v.Members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	}
	return nil
}

// Compact returns the value as compact JSON text.
func (v *Value) Compact() string {
	return string(v.AppendCompact(nil))
}

// MarshalJSON implements json.Marshaler, keeping member order.
func (v *Value) MarshalJSON() ([]byte, error) {
	return v.AppendCompact(nil), nil
}

// Indent returns the value as indented JSON text.
func (v *Value) Indent(prefix, indent string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, v.AppendCompact(nil), prefix, indent); err != nil {
		return v.Compact()
	}
	return buf.String()
}

// AppendCompact appends the compact JSON encoding of v to dst.
func (v *Value) AppendCompact(dst []byte) []byte {
	switch v.Kind {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		return strconv.AppendBool(dst, v.Bool)
	case KindNumber:
		return append(dst, v.Number...)
	case KindString:
		return appendQuoted(dst, v.Str)
	case KindArray:
		dst = append(dst, '[')
		for i, item := range v.Items {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = item.AppendCompact(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		for i, m := range v.Members {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendQuoted(dst, m.Key)
			dst = append(dst, ':')
			dst = m.Value.AppendCompact(dst)
		}
		return append(dst, '}')
	}
	return dst
}

const hexDigits = "0123456789abcdef"

// appendQuoted writes s as a JSON string literal. Unlike encoding/json it does
// not escape '<', '>', '&' or U+2028/U+2029, so previews show text as typed.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				dst = append(dst, '\\', c)
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			case '\b':
				dst = append(dst, '\\', 'b')
			case '\f':
				dst = append(dst, '\\', 'f')
			default:
				if c < 0x20 {
					dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
				} else {
					dst = append(dst, c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			dst = append(dst, "\ufffd"...)
		} else {
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}
