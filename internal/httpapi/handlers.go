package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/routerlab/conformance-go/internal/runner"
	"github.com/routerlab/conformance-go/internal/samples"
	"github.com/routerlab/conformance-go/internal/verdict"
)

var sampleRoles = []samples.Role{
	samples.RoleReferenceResponse,
	samples.RoleCandidateResponse,
	samples.RoleReferenceStream,
	samples.RoleCandidateStream,
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// verdictResponse is the wire shape of one conformance run plus its policy
// decision.
type verdictResponse struct {
	Outcome string            `json:"outcome"`
	Score   float64           `json:"score"`
	Details string            `json:"details"`
	Run     *runner.RunResult `json:"run"`
}

func (s *Server) handleVerdict(w http.ResponseWriter, r *http.Request) {
	dir := s.cfg.SamplesDir
	if override := r.URL.Query().Get("dir"); override != "" {
		dir = override
	}

	result, err := runner.Run(r.Context(), runner.Options{
		Resolver:       samples.NewResolver(dir),
		ImportantPaths: s.cfg.ImportantPaths,
		ModelPolicy:    verdict.ModelPolicy{AllowedPrefixes: s.cfg.ModelPrefixes},
		Metrics:        s.metrics,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	decision := s.engine.Decide(result.Verdict)
	writeJSON(w, http.StatusOK, verdictResponse{
		Outcome: string(decision.Outcome),
		Score:   result.Verdict.Score(),
		Details: decision.Details,
		Run:     result,
	})
}

// sampleEntry reports whether one sample role currently resolves on disk.
type sampleEntry struct {
	Role    string `json:"role"`
	Path    string `json:"path,omitempty"`
	Present bool   `json:"present"`
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	dir := s.cfg.SamplesDir
	if override := r.URL.Query().Get("dir"); override != "" {
		dir = override
	}
	resolve := samples.NewResolver(dir)

	entries := make([]sampleEntry, 0, len(sampleRoles))
	for _, role := range sampleRoles {
		entry := sampleEntry{Role: string(role)}
		if path, err := resolve(role); err == nil {
			entry.Path = path
			entry.Present = true
		}
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
