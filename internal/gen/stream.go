// Package gen fabricates sample streaming payloads for manual testing of the
// analyzers. Output is deterministic: fixed identity values in consistent
// mode, per-chunk drifting values in inconsistent mode (simulating the bug
// the consistency analyzer exists to catch).
package gen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/routerlab/conformance-go/internal/stream"
)

// Fixed identity values for consistent streams.
const (
	baseCreated     = 1703123456
	baseFingerprint = "fp_abcd123456"
	baseStreamID    = "chatcmpl-test123456"
)

// Options controls the generated stream.
type Options struct {
	StreamID    string
	Model       string
	Chunks      int
	Consistent  bool
	ToolCalling bool
}

// Defaults returns a five-chunk consistent basic stream.
func Defaults() Options {
	return Options{
		StreamID:   baseStreamID,
		Model:      "test-model-v1",
		Chunks:     5,
		Consistent: true,
	}
}

// Stream renders a complete event-stream blob: one data line per chunk, a
// blank separator line after each, and the terminal [DONE] marker.
func Stream(opts Options) string {
	if opts.StreamID == "" {
		opts.StreamID = baseStreamID
	}
	if opts.Chunks <= 0 {
		opts.Chunks = Defaults().Chunks
	}

	var chunks []map[string]any
	if opts.ToolCalling {
		chunks = toolCallingChunks(opts)
	} else {
		chunks = basicChunks(opts)
	}

	var b strings.Builder
	for _, ch := range chunks {
		data, _ := json.Marshal(ch) // safe: built from literals
		fmt.Fprintf(&b, "%s%s\n\n", stream.DataPrefix, data)
	}
	fmt.Fprintf(&b, "%s%s\n\n", stream.DataPrefix, stream.DoneMarker)
	return b.String()
}

func basicChunks(opts Options) []map[string]any {
	chunks := make([]map[string]any, 0, opts.Chunks)
	for i := 0; i < opts.Chunks; i++ {
		var delta map[string]any
		var finish any
		switch {
		case i == 0:
			delta = map[string]any{"role": "assistant", "content": ""}
		case i == opts.Chunks-1:
			delta = map[string]any{}
			finish = "stop"
		default:
			delta = map[string]any{"content": fmt.Sprintf("word%d ", i)}
		}
		chunks = append(chunks, chunk(opts, i, delta, finish))
	}
	return chunks
}

func toolCallingChunks(opts Options) []map[string]any {
	return []map[string]any{
		chunk(opts, 0, map[string]any{
			"role":    "assistant",
			"content": nil,
			"tool_calls": []any{map[string]any{
				"index": 0,
				"id":    "call_test123",
				"type":  "function",
				"function": map[string]any{
					"name":      "get_weather",
					"arguments": "",
				},
			}},
		}, nil),
		chunk(opts, 1, map[string]any{
			"tool_calls": []any{map[string]any{
				"index": 0,
				"function": map[string]any{
					"arguments": `{"location": "Boston"}`,
				},
			}},
		}, nil),
		chunk(opts, 2, map[string]any{}, "tool_calls"),
	}
}

// chunk assembles one chat.completion.chunk payload. In inconsistent mode
// the identity fields drift with the chunk index.
func chunk(opts Options, i int, delta map[string]any, finishReason any) map[string]any {
	id := opts.StreamID
	created := baseCreated
	fingerprint := baseFingerprint
	if !opts.Consistent {
		id = fmt.Sprintf("chatcmpl-test%03d", i)
		created = baseCreated + i
		fingerprint = fmt.Sprintf("fp_abcd12345%d", i)
	}

	return map[string]any{
		"id":                 id,
		"object":             "chat.completion.chunk",
		"created":            created,
		"model":              opts.Model,
		"system_fingerprint": fingerprint,
		"choices": []any{map[string]any{
			"index":         0,
			"delta":         delta,
			"logprobs":      nil,
			"finish_reason": finishReason,
		}},
	}
}
