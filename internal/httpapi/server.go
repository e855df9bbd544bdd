// Package httpapi exposes conformance runs over HTTP: a verdict endpoint
// that compares whatever samples are currently on disk, a sample inventory,
// and an SSE replay of captured streams.
package httpapi

import (
	"net/http"

	"github.com/routerlab/conformance-go/internal/config"
	"github.com/routerlab/conformance-go/internal/observability"
	"github.com/routerlab/conformance-go/internal/policy"
)

// Server is the HTTP API server for conformance results.
type Server struct {
	cfg     config.Config
	engine  *policy.Engine
	metrics *observability.Metrics
	mux     *http.ServeMux
	handler http.Handler
}

// New creates a Server. Metrics may be nil to disable recording.
func New(cfg config.Config, metrics *observability.Metrics) *Server {
	s := &Server{
		cfg:     cfg,
		engine:  policy.NewEngine(),
		metrics: metrics,
		mux:     http.NewServeMux(),
	}
	s.routes()
	s.handler = logging(cors(cfg.CORSOrigins, s.mux))
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/v1/verdict", s.handleVerdict)
	s.mux.HandleFunc("GET /api/v1/samples", s.handleListSamples)
	s.mux.HandleFunc("GET /api/v1/samples/{role}/replay", s.handleReplay)
}
