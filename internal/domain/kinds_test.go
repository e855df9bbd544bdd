package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  TypeTag
	}{
		{"null", nil, KindNull},
		{"bool", true, KindBool},
		{"float64", 3.14, KindNumber},
		{"int", 42, KindNumber},
		{"json number", json.Number("7"), KindNumber},
		{"string", "hello", KindString},
		{"sequence", []any{1, 2}, KindSequence},
		{"mapping", map[string]any{"a": 1}, KindMapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestKindOf_DecodedJSON(t *testing.T) {
	t.Parallel()

	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"a":[1,"x",null,true]}`), &v))

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, KindMapping, KindOf(v))
	assert.Equal(t, KindSequence, KindOf(m["a"]))

	seq := m["a"].([]any)
	assert.Equal(t, KindNumber, KindOf(seq[0]))
	assert.Equal(t, KindString, KindOf(seq[1]))
	assert.Equal(t, KindNull, KindOf(seq[2]))
	assert.Equal(t, KindBool, KindOf(seq[3]))
}

func TestTypeTag_Valid(t *testing.T) {
	t.Parallel()

	for _, tag := range []TypeTag{KindNull, KindBool, KindNumber, KindString, KindSequence, KindMapping, KindMissing} {
		assert.True(t, tag.Valid(), "tag %s", tag)
	}
	assert.False(t, TypeTag("list").Valid())
}

func TestTypeTag_Scalar(t *testing.T) {
	t.Parallel()

	assert.True(t, KindNull.Scalar())
	assert.True(t, KindBool.Scalar())
	assert.True(t, KindNumber.Scalar())
	assert.True(t, KindString.Scalar())
	assert.False(t, KindSequence.Scalar())
	assert.False(t, KindMapping.Scalar())
	assert.False(t, KindMissing.Scalar())
}
