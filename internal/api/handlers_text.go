package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dgallion1/wikitext/internal/chunker"
	"github.com/dgallion1/wikitext/internal/dataset"
	"github.com/dgallion1/wikitext/internal/render"
	"github.com/dgallion1/wikitext/internal/wikitext"
	"github.com/go-chi/chi/v5"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// loadSplit validates the route parameters and parses the requested split.
// It writes the error response itself and reports whether the caller should
// continue.
func (s *Server) loadSplit(w http.ResponseWriter, r *http.Request) ([]wikitext.Paragraph, bool) {
	name := chi.URLParam(r, "name")
	split := chi.URLParam(r, "split")

	if _, err := dataset.Lookup(name); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if _, err := dataset.ParseSplit(split); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if !s.corpus.Installed(name) {
		jsonError(w, fmt.Sprintf("dataset %s is not installed", name), http.StatusNotFound)
		return nil, false
	}

	paragraphs, err := s.corpus.LoadSplit(r.Context(), name, split)
	if err != nil {
		if errors.Is(err, dataset.ErrInvalidArgument) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return nil, false
		}
		s.log.Error("load split failed", "dataset", name, "split", split, "error", err)
		jsonError(w, "failed to parse split", http.StatusInternalServerError)
		return nil, false
	}
	return paragraphs, true
}

// page parses offset and limit and clamps them to n items.
func page(r *http.Request, n int) (offset, end int, err error) {
	limit := defaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", v)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", v)
		}
	}
	limit = min(limit, maxPageSize)
	offset = min(offset, n)
	return offset, min(offset+limit, n), nil
}

func (s *Server) handleParagraphs(w http.ResponseWriter, r *http.Request) {
	paragraphs, ok := s.loadSplit(w, r)
	if !ok {
		return
	}
	start, end, err := page(r, len(paragraphs))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":      len(paragraphs),
		"offset":     start,
		"paragraphs": paragraphs[start:end],
	})
}

func (s *Server) handleSentences(w http.ResponseWriter, r *http.Request) {
	paragraphs, ok := s.loadSplit(w, r)
	if !ok {
		return
	}
	sents := wikitext.Sentences(paragraphs)
	start, end, err := page(r, len(sents))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(sents),
		"offset":    start,
		"sentences": sents[start:end],
	})
}

func (s *Server) handleChunks(w http.ResponseWriter, r *http.Request) {
	cfg := chunker.DefaultConfig()
	cfg.ChunkSize = s.cfg.DefaultChunkSize
	cfg.ChunkOverlap = s.cfg.DefaultChunkOverlap
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, fmt.Sprintf("invalid size %q", v), http.StatusBadRequest)
			return
		}
		cfg.ChunkSize = n
	}
	if v := r.URL.Query().Get("overlap"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, fmt.Sprintf("invalid overlap %q", v), http.StatusBadRequest)
			return
		}
		cfg.ChunkOverlap = n
	}

	paragraphs, ok := s.loadSplit(w, r)
	if !ok {
		return
	}
	chunks := chunker.ChunkDocuments(wikitext.Documents(paragraphs), cfg)
	start, end, err := page(r, len(chunks))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":  len(chunks),
		"offset": start,
		"chunks": chunks[start:end],
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	paragraphs, ok := s.loadSplit(w, r)
	if !ok {
		return
	}
	docs := wikitext.Documents(paragraphs)
	start, end, err := page(r, len(docs))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	summaries := make([]map[string]any, 0, end-start)
	for _, d := range docs[start:end] {
		summaries = append(summaries, map[string]any{
			"doc_idx":    d.Index,
			"title":      d.Title,
			"paragraphs": len(d.Paragraphs),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":     len(docs),
		"offset":    start,
		"documents": summaries,
	})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "invalid document index", http.StatusBadRequest)
		return
	}
	paragraphs, ok := s.loadSplit(w, r)
	if !ok {
		return
	}

	var doc *wikitext.Document
	docs := wikitext.Documents(paragraphs)
	for i := range docs {
		if docs[i].Index == idx {
			doc = &docs[i]
			break
		}
	}
	if doc == nil {
		jsonError(w, fmt.Sprintf("document %d not found", idx), http.StatusNotFound)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, http.StatusOK, doc)
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(render.Markdown(*doc)))
	case "html":
		out, err := render.HTML(*doc)
		if err != nil {
			s.log.Error("render html failed", "doc_idx", idx, "error", err)
			jsonError(w, "failed to render document", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(out))
	default:
		jsonError(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
	}
}
