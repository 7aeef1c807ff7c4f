// Package value implements the type-erased value taxonomy the record codec,
// reader, and writer pass around: the eleven primitive/array kinds plus
// struct, struct-array, and void.
package value

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindVoid is the zero Kind; writing a Void value is always a no-op.
	KindVoid Kind = iota
	KindRaw
	KindBoolean
	KindInt64
	KindFloat
	KindDouble
	KindString
	KindBooleanArray
	KindInt64Array
	KindFloatArray
	KindDoubleArray
	KindStringArray
	KindStruct
	KindStructArray
)

// primitiveTypeStrings maps the eleven primitive/array kinds to their
// on-disk EntryType string. Struct and struct-array kinds carry their
// own type string (the struct descriptor's TypeStr) instead of a fixed
// constant, so they are absent here.
var primitiveTypeStrings = map[Kind]string{
	KindRaw:          "raw",
	KindBoolean:      "boolean",
	KindInt64:        "int64",
	KindFloat:        "float",
	KindDouble:       "double",
	KindString:       "string",
	KindBooleanArray: "boolean[]",
	KindInt64Array:   "int64[]",
	KindFloatArray:   "float[]",
	KindDoubleArray:  "double[]",
	KindStringArray:  "string[]",
}

// primitiveKindsByTypeString is the inverse of primitiveTypeStrings, used
// by KindFromTypeString to resolve an EntryType string back to a Kind.
var primitiveKindsByTypeString = func() map[string]Kind {
	m := make(map[string]Kind, len(primitiveTypeStrings))
	for k, s := range primitiveTypeStrings {
		m[s] = k
	}

	return m
}()

// TypeString returns the EntryType string for a primitive/array Kind.
// For KindStruct/KindStructArray, the caller must use the descriptor's
// TypeStr instead: there is no single constant string for a struct kind.
func (k Kind) TypeString() string {
	if s, ok := primitiveTypeStrings[k]; ok {
		return s
	}

	return ""
}

// KindFromTypeString resolves an EntryType string to a primitive Kind.
// Any string that isn't one of the eleven primitive/array type strings
// is a struct type name instead. ok is false in that case; the caller
// decides whether to treat it as a struct type or fall back to raw.
func KindFromTypeString(s string) (kind Kind, ok bool) {
	kind, ok = primitiveKindsByTypeString[s]
	return kind, ok
}

// IsArray reports whether the kind decodes as a variable-count sequence.
func (k Kind) IsArray() bool {
	switch k {
	case KindBooleanArray, KindInt64Array, KindFloatArray, KindDoubleArray, KindStringArray, KindStructArray:
		return true
	default:
		return false
	}
}
