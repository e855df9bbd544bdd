package stream

import (
	"encoding/json"
	"fmt"

	"github.com/routerlab/conformance-go/internal/domain"
)

// Identity field keys tracked across the frames of one logical stream.
const (
	FieldID          = "id"
	FieldCreated     = "created"
	FieldFingerprint = "system_fingerprint"
	FieldModel       = "model"
)

// IdentityFields is the fixed report order of the tracked identity fields.
var IdentityFields = []string{FieldID, FieldCreated, FieldFingerprint, FieldModel}

// Analyze verifies that every identity field holds a single value across all
// frames that supply it. A frame without the key contributes nothing to that
// field. An empty frame sequence yields a vacuously consistent report with
// TotalFrames zero, which callers must treat as inconclusive.
func Analyze(frames []Frame) domain.ConsistencyReport {
	report := domain.ConsistencyReport{
		Fields:      make([]domain.FieldConsistency, 0, len(IdentityFields)),
		TotalFrames: len(frames),
	}

	for _, field := range IdentityFields {
		fc := domain.FieldConsistency{Field: field}
		distinct := make(map[string]struct{})
		for _, frame := range frames {
			v, ok := frame[field]
			if !ok {
				continue
			}
			fc.Values = append(fc.Values, v)
			distinct[canonical(v)] = struct{}{}
		}
		fc.DistinctCount = len(distinct)
		fc.Consistent = fc.DistinctCount <= 1
		if len(fc.Values) > 0 {
			fc.FirstValue = fc.Values[0]
		}
		report.Fields = append(report.Fields, fc)
	}

	return report
}

// canonical produces a comparable key for a decoded JSON scalar.
func canonical(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
