package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFrames_Basic(t *testing.T) {
	t.Parallel()

	text := "data: {\"id\":\"a\"}\n\ndata: [DONE]\n"
	frames := ExtractFrames(text)

	require.Len(t, frames, 1)
	assert.Equal(t, "a", frames[0]["id"])
}

func TestExtractFrames_MalformedFrameSkipped(t *testing.T) {
	t.Parallel()

	text := "data: {\"id\":\"a\"}\n" +
		"data: {not json}\n" +
		"data: {\"id\":\"b\"}\n" +
		"data: [DONE]\n"
	frames := ExtractFrames(text)

	require.Len(t, frames, 2)
	assert.Equal(t, "a", frames[0]["id"])
	assert.Equal(t, "b", frames[1]["id"])
}

func TestExtractFrames_PrefixIsExact(t *testing.T) {
	t.Parallel()

	// "data:" without the trailing space and "DATA: " are not data lines.
	text := "data:{\"id\":\"a\"}\nDATA: {\"id\":\"b\"}\nevent: ping\ndata: {\"id\":\"c\"}\n"
	frames := ExtractFrames(text)

	require.Len(t, frames, 1)
	assert.Equal(t, "c", frames[0]["id"])
}

func TestExtractFrames_OrderPreserved(t *testing.T) {
	t.Parallel()

	text := "data: {\"id\":\"1\"}\ndata: {\"id\":\"2\"}\ndata: {\"id\":\"3\"}\n"
	frames := ExtractFrames(text)

	require.Len(t, frames, 3)
	for i, want := range []string{"1", "2", "3"} {
		assert.Equal(t, want, frames[i]["id"])
	}
}

func TestExtractFrames_Restartable(t *testing.T) {
	t.Parallel()

	text := "data: {\"id\":\"a\",\"created\":1}\ndata: [DONE]\n"
	assert.Equal(t, ExtractFrames(text), ExtractFrames(text))
}

func TestExtractFrames_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ExtractFrames(""))
	assert.Empty(t, ExtractFrames("\n\n"))
	assert.Empty(t, ExtractFrames("data: [DONE]\n"))
}

func TestStats(t *testing.T) {
	t.Parallel()

	text := "data: {\"id\":\"a\"}\n" +
		"\n" +
		"data: {broken\n" +
		": comment line\n" +
		"data: [DONE]\n"
	stats := Stats(text)

	assert.Equal(t, 5, stats.TotalLines)
	assert.Equal(t, 3, stats.DataLines)
	assert.Equal(t, 1, stats.EmptyLines)
	assert.Equal(t, 1, stats.OtherLines)
	assert.Equal(t, 1, stats.DoneMarkers)
	assert.Equal(t, 1, stats.DecodedFrames)
	assert.Equal(t, 1, stats.MalformedFrames)
}

func TestStats_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	stats := Stats("data: {\"id\":\"a\"}")
	assert.Equal(t, 1, stats.TotalLines)
	assert.Equal(t, 1, stats.DecodedFrames)
}
