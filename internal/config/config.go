// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Defaults for the comparison and capture layers.
const (
	defaultImportantPaths = "object,model,service_tier,choices[0].index,choices[0].finish_reason"
	defaultModelPrefixes  = "gpt-,chatgpt-,o1,o3,gemini-,claude-,test-"
)

// Config holds all application configuration.
type Config struct {
	SamplesDir     string
	ImportantPaths []string
	ModelPrefixes  []string
	LogLevel       string

	// Report/replay server settings.
	APIPort     string
	CORSOrigins []string

	// Capture client settings.
	ReferenceBaseURL string
	CandidateBaseURL string
	CaptureRPS       float64

	OTelEnabled bool
}

// LoadFromEnv reads configuration from environment variables with sensible defaults.
func LoadFromEnv() (Config, error) {
	cfg := Config{
		SamplesDir:       envOr("CONFORMANCE_SAMPLES_DIR", "."),
		ImportantPaths:   splitList(envOr("CONFORMANCE_IMPORTANT_PATHS", defaultImportantPaths)),
		ModelPrefixes:    splitList(envOr("CONFORMANCE_MODEL_PREFIXES", defaultModelPrefixes)),
		LogLevel:         envOr("CONFORMANCE_LOG_LEVEL", "info"),
		APIPort:          envOr("CONFORMANCE_API_PORT", "8080"),
		CORSOrigins:      parseCORSOrigins(os.Getenv("CONFORMANCE_CORS_ORIGINS")),
		ReferenceBaseURL: os.Getenv("CONFORMANCE_REFERENCE_URL"),
		CandidateBaseURL: os.Getenv("CONFORMANCE_CANDIDATE_URL"),
		OTelEnabled:      os.Getenv("CONFORMANCE_OTEL_ENABLED") == "true",
	}

	rps := envOr("CONFORMANCE_CAPTURE_RPS", "1")
	parsed, err := strconv.ParseFloat(rps, 64)
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid CONFORMANCE_CAPTURE_RPS %q: %w", rps, err)
	}
	if parsed <= 0 {
		return Config{}, fmt.Errorf("config: CONFORMANCE_CAPTURE_RPS must be positive, got %v", parsed)
	}
	cfg.CaptureRPS = parsed

	if len(cfg.ImportantPaths) == 0 {
		return Config{}, fmt.Errorf("config: CONFORMANCE_IMPORTANT_PATHS must not be empty")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(item); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func parseCORSOrigins(raw string) []string {
	origins := splitList(raw)
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
