// Package testutil writes captured-sample fixtures shared by
// integration-style tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routerlab/conformance-go/internal/gen"
)

// ResponseDoc is a minimal conformant non-streaming completion response.
const ResponseDoc = `{"object":"chat.completion","model":"test-model-v1","service_tier":"default",` +
	`"choices":[{"index":0,"finish_reason":"stop"}]}`

// WriteSample writes one named sample file into dir.
func WriteSample(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// ConformantSampleDir writes a full sample set where the candidate matches
// the reference exactly, and returns the directory.
func ConformantSampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	WriteSample(t, dir, "reference_response.json", ResponseDoc)
	WriteSample(t, dir, "candidate_response.json", ResponseDoc)
	WriteSample(t, dir, "reference_stream.txt", gen.Stream(gen.Defaults()))
	WriteSample(t, dir, "candidate_stream.txt", gen.Stream(gen.Defaults()))
	return dir
}
