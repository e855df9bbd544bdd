// Package samples locates and loads captured response samples. The
// comparison core never touches the filesystem; it receives already-loaded
// values from here.
package samples

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Role identifies which captured sample a caller wants.
type Role string

const (
	RoleReferenceResponse Role = "reference_response"
	RoleCandidateResponse Role = "candidate_response"
	RoleReferenceStream   Role = "reference_stream"
	RoleCandidateStream   Role = "candidate_stream"
)

// ErrSampleNotFound reports that no candidate filename existed for a role.
// Callers degrade the affected checks to skip rather than failing the run.
var ErrSampleNotFound = errors.New("sample not found")

// Historical capture filenames, most recent conventions first.
var candidateNames = map[Role][]string{
	RoleReferenceResponse: {
		"reference_response.json",
		"openai_non_streaming_response.json",
		"test_openai_nonstreaming.json",
	},
	RoleCandidateResponse: {
		"candidate_response.json",
		"router_non_streaming_response.json",
		"test_gemini_nonstreaming.json",
	},
	RoleReferenceStream: {
		"reference_stream.txt",
		"openai_streaming_response.txt",
		"test_openai_streaming.txt",
	},
	RoleCandidateStream: {
		"candidate_stream.txt",
		"router_streaming_response_fixed.txt",
		"router_streaming_response.txt",
		"test_gemini_streaming.txt",
	},
}

// Filename returns the canonical capture filename for a role. New captures
// are always written under the most recent naming convention.
func Filename(role Role) string {
	if names, ok := candidateNames[role]; ok {
		return names[0]
	}
	return string(role)
}

// Resolver maps a role to a concrete file path.
type Resolver func(role Role) (string, error)

// NewResolver returns a best-effort resolver that tries each known filename
// for a role across the given directories, in order.
func NewResolver(dirs ...string) Resolver {
	return func(role Role) (string, error) {
		names, ok := candidateNames[role]
		if !ok {
			return "", fmt.Errorf("samples: unknown role %q", role)
		}
		for _, dir := range dirs {
			for _, name := range names {
				path := filepath.Join(dir, name)
				if info, err := os.Stat(path); err == nil && !info.IsDir() {
					return path, nil
				}
			}
		}
		return "", fmt.Errorf("samples: %s in %v: %w", role, dirs, ErrSampleNotFound)
	}
}

// LoadJSON reads and decodes one non-streaming response sample.
func LoadJSON(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("samples: read %s: %w", path, err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("samples: parse %s: %w", path, err)
	}
	return v, nil
}

// LoadText reads one raw event-stream sample.
func LoadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("samples: read %s: %w", path, err)
	}
	return string(data), nil
}
