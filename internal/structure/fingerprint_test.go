package structure

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routerlab/conformance-go/internal/domain"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestFingerprint_FlatMapping(t *testing.T) {
	t.Parallel()

	fp := Fingerprint(decode(t, `{"object":"chat.completion","created":1703123456,"done":false,"error":null}`))

	require.Len(t, fp, 4)
	assert.Equal(t, domain.KindString, fp["object"].Kind)
	assert.Equal(t, "chat.completion", fp["object"].Literal)
	assert.Equal(t, domain.KindNumber, fp["created"].Kind)
	assert.Equal(t, domain.KindBool, fp["done"].Kind)
	assert.Equal(t, domain.KindNull, fp["error"].Kind)
	assert.True(t, fp["error"].HasLiteral)
}

func TestFingerprint_NestedMapping(t *testing.T) {
	t.Parallel()

	fp := Fingerprint(decode(t, `{"usage":{"prompt_tokens":12,"completion_tokens":34}}`))

	require.Contains(t, fp, "usage")
	assert.Equal(t, domain.KindMapping, fp["usage"].Kind)
	assert.False(t, fp["usage"].HasLiteral)
	assert.Equal(t, domain.KindNumber, fp["usage.prompt_tokens"].Kind)
	assert.Equal(t, domain.KindNumber, fp["usage.completion_tokens"].Kind)
}

func TestFingerprint_RepresentativeSampling(t *testing.T) {
	t.Parallel()

	fp := Fingerprint(decode(t, `{"choices":[{"index":0},{"foo":"bar"}]}`))

	require.Contains(t, fp, "choices")
	assert.Equal(t, domain.KindSequence, fp["choices"].Kind)
	assert.Equal(t, 2, fp["choices"].Length)
	assert.Contains(t, fp, "choices[0].index")
	assert.NotContains(t, fp, "choices[0].foo")
}

func TestFingerprint_EmptySequence(t *testing.T) {
	t.Parallel()

	fp := Fingerprint(decode(t, `{"choices":[]}`))

	require.Contains(t, fp, "choices")
	assert.Equal(t, domain.KindSequence, fp["choices"].Kind)
	assert.Zero(t, fp["choices"].Length)
	assert.Len(t, fp, 1)
}

func TestFingerprint_SequenceRoot(t *testing.T) {
	t.Parallel()

	fp := Fingerprint(decode(t, `[{"id":"a"},{"id":"b"}]`))

	require.Contains(t, fp, "")
	assert.Equal(t, domain.KindSequence, fp[""].Kind)
	assert.Equal(t, 2, fp[""].Length)
	assert.Equal(t, domain.KindString, fp["[0].id"].Kind)
}

func TestFingerprint_ScalarRoot(t *testing.T) {
	t.Parallel()

	fp := Fingerprint(decode(t, `"just a string"`))

	require.Len(t, fp, 1)
	assert.Equal(t, domain.KindString, fp[""].Kind)
	assert.Equal(t, "just a string", fp[""].Literal)
}

func TestFingerprint_Idempotent(t *testing.T) {
	t.Parallel()

	v := decode(t, `{"object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"hi"}}],"usage":{"total_tokens":10}}`)

	first := Fingerprint(v)
	second := Fingerprint(v)
	assert.Equal(t, first, second)
}

func TestFingerprint_DeepNesting(t *testing.T) {
	t.Parallel()

	fp := Fingerprint(decode(t, `{"choices":[{"message":{"tool_calls":[{"function":{"name":"get_weather"}}]}}]}`))

	assert.Equal(t, domain.KindSequence, fp["choices[0].message.tool_calls"].Kind)
	assert.Equal(t, 1, fp["choices[0].message.tool_calls"].Length)
	assert.Equal(t, domain.KindString, fp["choices[0].message.tool_calls[0].function.name"].Kind)
	assert.Equal(t, "get_weather", fp["choices[0].message.tool_calls[0].function.name"].Literal)
}
