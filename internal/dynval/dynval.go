// Package dynval classifies dynamic values at the validation boundary. The
// engine narrows an any to a concrete shape exactly once per dispatch; this
// package is that single point of truth.
package dynval

import "encoding/json"

// Kind is the coarse dynamic type of a deserialized value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
	KindUnknown
)

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
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// KindOf classifies v. Both JSON-decoded (json.Number, float64) and
// Go-native numeric scalars count as numbers.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case string:
		return KindString
	case json.Number,
		float32, float64,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	default:
		return KindUnknown
	}
}

// Describe renders the received-side descriptor for an issue.
func Describe(v any) string { return KindOf(v).String() }
