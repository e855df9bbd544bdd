package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/routerlab/conformance-go/internal/samples"
	"github.com/routerlab/conformance-go/internal/stream"
)

// replayDelay paces replayed frames so clients see a stream, not a blob.
const replayDelay = 20 * time.Millisecond

// handleReplay re-emits a captured stream sample as live SSE. Frames are
// sent verbatim, including the terminal [DONE] marker; lines that are not
// data lines are dropped, matching what an SSE client would consume.
func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	role := samples.Role(r.PathValue("role"))
	if role != samples.RoleReferenceStream && role != samples.RoleCandidateStream {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("role %q is not a stream sample", role))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	dir := s.cfg.SamplesDir
	if override := r.URL.Query().Get("dir"); override != "" {
		dir = override
	}
	path, err := samples.NewResolver(dir)(role)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	text, err := samples.LoadText(path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, stream.DataPrefix) {
			continue
		}
		select {
		case <-r.Context().Done():
			return
		case <-time.After(replayDelay):
		}
		fmt.Fprintf(w, "%s\n\n", line)
		flusher.Flush()
	}
}
