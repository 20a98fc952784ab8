package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/haroon0x/CognixAi/internal/engine"
	"github.com/haroon0x/CognixAi/internal/store"
)

// maxRequestBody is the maximum allowed request body size (32 MB, sized
// for multipart file uploads).
const maxRequestBody int64 = 32 << 20

// Options holds the server's injected dependencies.
type Options struct {
	Content    store.ContentRepository
	Plans      store.PlanRepository
	Collector  *engine.Collector
	Mapper     *engine.Mapper
	Planner    *engine.Planner
	Logger     *slog.Logger
	CORSOrigin string
}

// Server holds the HTTP handlers and dependencies.
type Server struct {
	content    store.ContentRepository
	plans      store.PlanRepository
	collector  *engine.Collector
	mapper     *engine.Mapper
	planner    *engine.Planner
	logger     *slog.Logger
	corsOrigin string
	mux        *http.ServeMux
}

// New creates a new API server.
func New(opts Options) *Server {
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}
	srv := &Server{
		content:    opts.Content,
		plans:      opts.Plans,
		collector:  opts.Collector,
		mapper:     opts.Mapper,
		planner:    opts.Planner,
		logger:     opts.Logger,
		corsOrigin: opts.CORSOrigin,
		mux:        http.NewServeMux(),
	}
	srv.routes()
	return srv
}

// Handler returns the root http.Handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.corsMiddleware(limitBody(s.mux))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /api/upload/files", s.handleUploadFiles)
	s.mux.HandleFunc("POST /api/upload/text", s.handleUploadText)
	s.mux.HandleFunc("POST /api/upload/youtube", s.handleUploadYouTube)
	s.mux.HandleFunc("GET /api/content", s.handleGetContent)

	s.mux.HandleFunc("POST /api/generate-plan", s.handleGeneratePlan)
	s.mux.HandleFunc("GET /api/action-plans", s.handleGetActionPlans)
	s.mux.HandleFunc("PUT /api/action-plans/{planID}/steps/{stepID}/toggle", s.handleToggleStep)

	s.mux.HandleFunc("POST /api/ingest", s.handleIngest)
	s.mux.HandleFunc("POST /api/categorize", s.handleCategorize)
	s.mux.HandleFunc("POST /api/plan", s.handlePlan)
	s.mux.HandleFunc("POST /api/suggest-next-steps", s.handleSuggestNextSteps)
}

// ---------------------------------------------------------------------------
// Middleware
// ---------------------------------------------------------------------------

// corsMiddleware sets CORS headers for the configured frontend origin.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// limitBody restricts the request body to maxRequestBody bytes.
func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		next.ServeHTTP(w, r)
	})
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
