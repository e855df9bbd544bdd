package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routerlab/conformance-go/internal/domain"
	"github.com/routerlab/conformance-go/internal/gen"
	"github.com/routerlab/conformance-go/internal/samples"
	"github.com/routerlab/conformance-go/internal/testutil"
	"github.com/routerlab/conformance-go/internal/verdict"
)

func testOptions(dir string) Options {
	return Options{
		Resolver:       samples.NewResolver(dir),
		ImportantPaths: []string{"object", "model", "service_tier", "choices[0].index", "choices[0].finish_reason"},
		ModelPolicy:    verdict.ModelPolicy{AllowedPrefixes: []string{"test-"}},
	}
}

func TestRun_FullyConformant(t *testing.T) {
	t.Parallel()

	result, err := Run(context.Background(), testOptions(testutil.ConformantSampleDir(t)))
	require.NoError(t, err)

	require.Len(t, result.Structural, 2)
	assert.Equal(t, "non_streaming", result.Structural[0].Name)
	assert.Equal(t, "streaming_first_chunk", result.Structural[1].Name)
	assert.True(t, result.Structural[0].Report.FullMatch())
	assert.True(t, result.Structural[1].Report.FullMatch())

	require.Len(t, result.Streams, 2)
	assert.Equal(t, "reference_stream", result.Streams[0].Name)
	assert.Equal(t, "candidate_stream", result.Streams[1].Name)
	assert.Equal(t, 5, result.Streams[0].Report.TotalFrames)

	assert.Empty(t, result.Missing)
	assert.True(t, result.Verdict.HasData())
	assert.Zero(t, result.Verdict.Failed)
	assert.Equal(t, 1.0, result.Verdict.Score())
}

func TestRun_StructuralDivergence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteSample(t, dir, "reference_response.json", testutil.ResponseDoc)
	testutil.WriteSample(t, dir, "candidate_response.json",
		`{"object":"chat.completion","model":"test-model-v1","service_tier":"default",`+
			`"choices":[{"index":0,"finish_reason":"stop","extra":true}]}`)

	result, err := Run(context.Background(), testOptions(dir))
	require.NoError(t, err)

	require.Len(t, result.Structural, 1)
	assert.False(t, result.Structural[0].Report.FullMatch())
	assert.Equal(t, 1, result.Verdict.Failed)
}

func TestRun_InconsistentCandidateStream(t *testing.T) {
	t.Parallel()

	dir := testutil.ConformantSampleDir(t)
	opts := gen.Defaults()
	opts.Consistent = false
	testutil.WriteSample(t, dir, "candidate_stream.txt", gen.Stream(opts))

	result, err := Run(context.Background(), testOptions(dir))
	require.NoError(t, err)

	var candidate *StreamResult
	for i := range result.Streams {
		if result.Streams[i].Name == "candidate_stream" {
			candidate = &result.Streams[i]
		}
	}
	require.NotNil(t, candidate)
	assert.False(t, candidate.Report.AllConsistent())
	assert.Positive(t, result.Verdict.Failed)
}

func TestRun_MissingSamplesDegradeToSkip(t *testing.T) {
	t.Parallel()

	result, err := Run(context.Background(), testOptions(t.TempDir()))
	require.NoError(t, err)

	assert.Empty(t, result.Structural)
	assert.Empty(t, result.Streams)
	assert.Len(t, result.Missing, 4)
	assert.False(t, result.Verdict.HasData())
}

func TestRun_PartialSamples(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteSample(t, dir, "reference_stream.txt", gen.Stream(gen.Defaults()))

	result, err := Run(context.Background(), testOptions(dir))
	require.NoError(t, err)

	// Only the reference stream ran; no cross-stream comparison possible.
	assert.Empty(t, result.Structural)
	require.Len(t, result.Streams, 1)
	assert.Equal(t, "reference_stream", result.Streams[0].Name)
	assert.True(t, result.Verdict.HasData())
}

func TestRun_MalformedDocumentFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteSample(t, dir, "reference_response.json", `{broken`)
	testutil.WriteSample(t, dir, "candidate_response.json", testutil.ResponseDoc)

	_, err := Run(context.Background(), testOptions(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestRun_RequiresResolver(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{})
	assert.Error(t, err)
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	dir := testutil.ConformantSampleDir(t)
	first, err := Run(context.Background(), testOptions(dir))
	require.NoError(t, err)
	second, err := Run(context.Background(), testOptions(dir))
	require.NoError(t, err)

	assert.Equal(t, first.Verdict, second.Verdict)
	assert.Equal(t, first.Structural, second.Structural)
}

func TestRun_VerdictCheckNames(t *testing.T) {
	t.Parallel()

	result, err := Run(context.Background(), testOptions(testutil.ConformantSampleDir(t)))
	require.NoError(t, err)

	names := make(map[string]domain.CheckStatus)
	for _, c := range result.Verdict.Checks {
		names[c.Name] = c.Status
	}
	assert.Contains(t, names, "structure:non_streaming")
	assert.Contains(t, names, "structure:streaming_first_chunk")
	assert.Contains(t, names, "stream:reference_stream:id")
	assert.Contains(t, names, "stream:candidate_stream:model_name")
}
