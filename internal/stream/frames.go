// Package stream implements the event-stream core: extracting decoded frames
// from captured SSE text and verifying identity consistency across them.
package stream

import (
	"encoding/json"
	"strings"

	"github.com/routerlab/conformance-go/internal/domain"
)

const (
	// DataPrefix marks a data-bearing SSE line. Six characters, case-sensitive.
	DataPrefix = "data: "

	// DoneMarker is the terminal frame payload. It carries no JSON.
	DoneMarker = "[DONE]"
)

// Frame is one decoded event payload. Identity fields are optional; older or
// terminal frames may omit some.
type Frame map[string]any

// ExtractFrames returns the decoded payload of every data-bearing line in
// input order. The [DONE] marker is excluded, and a line whose payload fails
// to decode is skipped rather than aborting the rest of the stream. The
// function is pure: re-invoking over the same text reproduces the same
// sequence.
func ExtractFrames(text string) []Frame {
	var frames []Frame
	for _, line := range splitLines(text) {
		payload, ok := dataPayload(line)
		if !ok {
			continue
		}
		var frame Frame
		if err := json.Unmarshal([]byte(payload), &frame); err != nil {
			continue
		}
		frames = append(frames, frame)
	}
	return frames
}

// Stats classifies every line of a stream blob. The core ignores non-data
// lines; the counts exist for the surrounding report.
func Stats(text string) domain.LineStats {
	var stats domain.LineStats
	for _, line := range splitLines(text) {
		stats.TotalLines++
		switch {
		case !strings.HasPrefix(line, DataPrefix):
			if strings.TrimSpace(line) == "" {
				stats.EmptyLines++
			} else {
				stats.OtherLines++
			}
		default:
			stats.DataLines++
			payload, ok := dataPayload(line)
			if !ok {
				stats.DoneMarkers++
				continue
			}
			var frame Frame
			if err := json.Unmarshal([]byte(payload), &frame); err != nil {
				stats.MalformedFrames++
			} else {
				stats.DecodedFrames++
			}
		}
	}
	return stats
}

// dataPayload returns the JSON payload of a data-bearing line, or ok=false
// for non-data lines and the [DONE] marker.
func dataPayload(line string) (string, bool) {
	if !strings.HasPrefix(line, DataPrefix) {
		return "", false
	}
	payload := line[len(DataPrefix):]
	if strings.TrimSpace(payload) == DoneMarker {
		return "", false
	}
	return payload, true
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
