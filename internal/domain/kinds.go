// Package domain defines the data model shared by the conformance core:
// structural fingerprints, comparison reports, stream consistency reports,
// and the final verdict.
package domain

import "encoding/json"

// TypeTag classifies a JSON value's kind.
type TypeTag string

const (
	KindNull     TypeTag = "null"
	KindBool     TypeTag = "bool"
	KindNumber   TypeTag = "number"
	KindString   TypeTag = "string"
	KindSequence TypeTag = "sequence"
	KindMapping  TypeTag = "mapping"

	// KindMissing marks a path present on one side of a comparison only.
	// It is never produced by fingerprinting a value.
	KindMissing TypeTag = "MISSING"
)

func (t TypeTag) Valid() bool {
	switch t {
	case KindNull, KindBool, KindNumber, KindString, KindSequence, KindMapping, KindMissing:
		return true
	}
	return false
}

// Scalar reports whether the kind carries a literal value.
func (t TypeTag) Scalar() bool {
	switch t {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	}
	return false
}

// KindOf classifies a decoded JSON value. The input domain is what
// encoding/json produces (nil, bool, float64, json.Number, string, []any,
// map[string]any); hand-built test values may also carry Go integer types.
// Anything outside that domain is a caller precondition violation.
func KindOf(v any) TypeTag {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, float32, int, int64, json.Number:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindSequence
	case map[string]any:
		return KindMapping
	}
	return KindNull
}
