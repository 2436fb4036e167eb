package api

import (
	"log/slog"
	"net/http"

	"github.com/blongho/cap5610-project/internal/config"
	"github.com/blongho/cap5610-project/internal/parser"
	"github.com/blongho/cap5610-project/internal/sections"
	"github.com/blongho/cap5610-project/internal/summarize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API for paper segmentation and summarization.
type Server struct {
	router     chi.Router
	summarizer summarize.Summarizer
	stats      *summarize.LLMStats
	log        *slog.Logger
	cfg        config.Config
	policy     sections.Policy
	parserOpts parser.Options
}

// NewServer creates and configures the HTTP server. stats may be nil, in
// which case the stats endpoint reports 503.
func NewServer(sum summarize.Summarizer, stats *summarize.LLMStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		summarizer: sum,
		stats:      stats,
		log:        log,
		cfg:        cfg,
		policy:     cfg.Policy(),
		parserOpts: cfg.Parser(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(CORS(s.cfg.CORSOrigins))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/upload-pdf", s.handleUpload)
		r.Post("/summarize", s.handleSummarize)
		r.Post("/evaluate", s.handleEvaluate)
		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	model := ""
	if s.summarizer != nil {
		model = s.summarizer.Model()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "model": model})
}
