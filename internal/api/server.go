package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/wikitext/internal/config"
	"github.com/dgallion1/wikitext/internal/dataset"
	"github.com/dgallion1/wikitext/internal/wikitext"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Corpus is the dataset store the API reads from.
type Corpus interface {
	Installed(name string) bool
	Fetch(ctx context.Context, name string) (dataset.Paths, error)
	LoadSplit(ctx context.Context, name, split string) ([]wikitext.Paragraph, error)
}

// Server is the HTTP API server for installed corpora.
type Server struct {
	router chi.Router
	corpus Corpus
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(corpus Corpus, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		corpus: corpus,
		log:    log,
		cfg:    cfg,
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

	r.Get("/health", s.handleHealth)

	r.Route("/api/datasets", func(r chi.Router) {
		r.Get("/", s.handleListDatasets)

		r.Route("/{name}", func(r chi.Router) {
			// Fetching writes to disk and may pull hundreds of megabytes.
			r.With(AuthMiddleware(s.cfg.APIKey, s.log)).Post("/fetch", s.handleFetch)

			r.Get("/{split}/paragraphs", s.handleParagraphs)
			r.Get("/{split}/sentences", s.handleSentences)
			r.Get("/{split}/chunks", s.handleChunks)
			r.Get("/{split}/documents", s.handleListDocuments)
			r.Get("/{split}/documents/{index}", s.handleDocument)
		})
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
