package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStructuralReport_FullMatch(t *testing.T) {
	t.Parallel()

	r := StructuralReport{MatchedCount: 3, TotalCount: 3}
	assert.True(t, r.FullMatch())
	assert.Equal(t, 1.0, r.MatchRatio())

	r = StructuralReport{MatchedCount: 2, TotalCount: 4}
	assert.False(t, r.FullMatch())
	assert.Equal(t, 0.5, r.MatchRatio())
}

func TestStructuralReport_EmptyRatio(t *testing.T) {
	t.Parallel()

	var r StructuralReport
	assert.True(t, r.FullMatch()) // 0 == 0; the aggregator treats this as inconclusive
	assert.Equal(t, 0.0, r.MatchRatio())
}

func TestConsistencyReport_Field(t *testing.T) {
	t.Parallel()

	r := ConsistencyReport{
		Fields: []FieldConsistency{
			{Field: "id", DistinctCount: 1, Consistent: true, FirstValue: "chatcmpl-a"},
			{Field: "model", DistinctCount: 2, Consistent: false, FirstValue: "gpt-x"},
		},
		TotalFrames: 5,
	}

	f, ok := r.Field("id")
	assert.True(t, ok)
	assert.Equal(t, "chatcmpl-a", f.FirstValue)

	_, ok = r.Field("created")
	assert.False(t, ok)

	assert.False(t, r.AllConsistent())
}

func TestConsistencyReport_VacuouslyConsistent(t *testing.T) {
	t.Parallel()

	r := ConsistencyReport{
		Fields: []FieldConsistency{
			{Field: "id", Consistent: true},
			{Field: "created", Consistent: true},
		},
	}
	assert.True(t, r.AllConsistent())
	assert.Zero(t, r.TotalFrames)
}

func TestVerdict_Score(t *testing.T) {
	t.Parallel()

	v := Verdict{Passed: 4, Failed: 1, Skipped: 2}
	assert.True(t, v.HasData())
	assert.InDelta(t, 0.8, v.Score(), 1e-9)
}

func TestVerdict_NoData(t *testing.T) {
	t.Parallel()

	v := Verdict{Skipped: 3}
	assert.False(t, v.HasData())
	assert.Equal(t, 0.0, v.Score())
}

func TestCheckStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, CheckPass.Valid())
	assert.True(t, CheckFail.Valid())
	assert.True(t, CheckSkip.Valid())
	assert.False(t, CheckStatus("error").Valid())
}
