package stream

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routerlab/conformance-go/internal/domain"
)

func mustField(t *testing.T, r domain.ConsistencyReport, name string) domain.FieldConsistency {
	t.Helper()
	f, ok := r.Field(name)
	require.True(t, ok, "field %s missing from report", name)
	return f
}

func TestAnalyze_ConsistentStream(t *testing.T) {
	t.Parallel()

	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, fmt.Sprintf(
			"data: {\"id\":\"x\",\"created\":1,\"system_fingerprint\":\"f\",\"model\":\"gpt-x\",\"seq\":%d}", i))
	}
	lines = append(lines, "data: [DONE]")

	report := Analyze(ExtractFrames(strings.Join(lines, "\n") + "\n"))

	assert.Equal(t, 5, report.TotalFrames)
	for _, name := range IdentityFields {
		f := mustField(t, report, name)
		assert.Equal(t, 1, f.DistinctCount, "field %s", name)
		assert.True(t, f.Consistent, "field %s", name)
	}
	assert.Equal(t, "x", mustField(t, report, FieldID).FirstValue)
	assert.Equal(t, float64(1), mustField(t, report, FieldCreated).FirstValue)
	assert.True(t, report.AllConsistent())
}

func TestAnalyze_InconsistentIDs(t *testing.T) {
	t.Parallel()

	frames := []Frame{
		{"id": "a"},
		{"id": "b"},
		{"id": "a"},
	}
	report := Analyze(frames)

	f := mustField(t, report, FieldID)
	assert.Equal(t, 2, f.DistinctCount)
	assert.False(t, f.Consistent)
	assert.Equal(t, "a", f.FirstValue)
	assert.Len(t, f.Values, 3)
	assert.False(t, report.AllConsistent())
}

func TestAnalyze_AbsentKeyContributesNothing(t *testing.T) {
	t.Parallel()

	frames := []Frame{
		{"id": "x", "model": "gpt-x"},
		{"id": "x"}, // terminal frames may omit model
		{"id": "x", "model": "gpt-x"},
	}
	report := Analyze(frames)

	model := mustField(t, report, FieldModel)
	assert.Equal(t, 1, model.DistinctCount)
	assert.True(t, model.Consistent)
	assert.Len(t, model.Values, 2)
	assert.Equal(t, 3, report.TotalFrames)
}

func TestAnalyze_ExplicitNullIsAValue(t *testing.T) {
	t.Parallel()

	frames := []Frame{
		{"system_fingerprint": nil},
		{"system_fingerprint": "fp_a"},
	}
	report := Analyze(frames)

	fp := mustField(t, report, FieldFingerprint)
	assert.Equal(t, 2, fp.DistinctCount)
	assert.False(t, fp.Consistent)
	assert.Nil(t, fp.FirstValue)
}

func TestAnalyze_EmptyStream(t *testing.T) {
	t.Parallel()

	report := Analyze(nil)

	assert.Zero(t, report.TotalFrames)
	require.Len(t, report.Fields, len(IdentityFields))
	for _, f := range report.Fields {
		assert.Zero(t, f.DistinctCount)
		assert.True(t, f.Consistent)
		assert.Empty(t, f.Values)
		assert.Nil(t, f.FirstValue)
	}
	assert.True(t, report.AllConsistent())
}

func TestAnalyze_FieldOrderFixed(t *testing.T) {
	t.Parallel()

	report := Analyze([]Frame{{"id": "a"}})
	require.Len(t, report.Fields, 4)
	for i, name := range IdentityFields {
		assert.Equal(t, name, report.Fields[i].Field)
	}
}
