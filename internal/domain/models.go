package domain

// FieldDescriptor records what lives at one path in a fingerprinted value.
// Literal is populated only for scalar kinds. Length is meaningful only when
// Kind is KindSequence; a sequence path carries both its kind and its element
// count as two separate facts.
type FieldDescriptor struct {
	Path       string  `json:"path"`
	Kind       TypeTag `json:"kind"`
	Literal    any     `json:"literal,omitempty"`
	HasLiteral bool    `json:"has_literal,omitempty"`
	Length     int     `json:"length,omitempty"`
}

// Fingerprint maps each reachable path of one JSON value to its descriptor.
// Every path reachable by repeated key / first-index traversal from the root
// appears exactly once.
type Fingerprint map[string]FieldDescriptor

// ComparisonRow is one path of the union of two fingerprints.
type ComparisonRow struct {
	Path          string  `json:"path"`
	ReferenceKind TypeTag `json:"reference_kind"`
	CandidateKind TypeTag `json:"candidate_kind"`
	Matched       bool    `json:"matched"`
}

// ValueCheck records literal equality for one caller-designated important
// path. Presence flags are the out-of-band absence markers; rendering them
// as "MISSING" text is the report layer's business.
type ValueCheck struct {
	Path             string `json:"path"`
	Reference        any    `json:"reference"`
	ReferencePresent bool   `json:"reference_present"`
	Candidate        any    `json:"candidate"`
	CandidatePresent bool   `json:"candidate_present"`
	Equal            bool   `json:"equal"`
}

// StructuralReport is the output of one fingerprint comparison. Rows are
// sorted by path, lexicographic.
type StructuralReport struct {
	Rows         []ComparisonRow `json:"rows"`
	MatchedCount int             `json:"matched_count"`
	TotalCount   int             `json:"total_count"`
	ValueChecks  []ValueCheck    `json:"value_checks"`
}

// FullMatch reports whether every row matched. Value checks do not
// participate; they are reported separately.
func (r StructuralReport) FullMatch() bool {
	return r.MatchedCount == r.TotalCount
}

// MatchRatio returns matched/total, or 0 when the report is empty. An empty
// report is inconclusive, not a pass; the aggregator skips it.
func (r StructuralReport) MatchRatio() float64 {
	if r.TotalCount == 0 {
		return 0
	}
	return float64(r.MatchedCount) / float64(r.TotalCount)
}

// LineStats summarizes the raw line shape of one event-stream blob.
type LineStats struct {
	TotalLines      int `json:"total_lines"`
	DataLines       int `json:"data_lines"`
	EmptyLines      int `json:"empty_lines"`
	OtherLines      int `json:"other_lines"`
	DoneMarkers     int `json:"done_markers"`
	DecodedFrames   int `json:"decoded_frames"`
	MalformedFrames int `json:"malformed_frames"`
}

// FieldConsistency tracks the distinct values one identity field took across
// all frames that supplied it. Frames without the field contribute nothing.
type FieldConsistency struct {
	Field         string `json:"field"`
	Values        []any  `json:"values_seen"`
	DistinctCount int    `json:"distinct_count"`
	Consistent    bool   `json:"consistent"`
	FirstValue    any    `json:"first_value"`
}

// ConsistencyReport is the output of analyzing one logical stream. Fields are
// in the fixed identity-field order.
type ConsistencyReport struct {
	Fields      []FieldConsistency `json:"fields"`
	TotalFrames int                `json:"total_frames"`
}

// Field returns the consistency record for the named identity field.
func (r ConsistencyReport) Field(name string) (FieldConsistency, bool) {
	for _, f := range r.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldConsistency{}, false
}

// AllConsistent reports whether every tracked field is consistent. Vacuously
// true for an empty stream; callers must gate on TotalFrames before treating
// it as a pass.
func (r ConsistencyReport) AllConsistent() bool {
	for _, f := range r.Fields {
		if !f.Consistent {
			return false
		}
	}
	return true
}
