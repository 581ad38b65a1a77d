package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/wikitext/internal/dataset"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	var out []map[string]any
	for _, name := range dataset.Names() {
		ds, _ := dataset.Lookup(name)
		out = append(out, map[string]any{
			"name":      ds.Name,
			"url":       ds.URL,
			"installed": s.corpus.Installed(name),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": out})
}

// handleFetch installs a dataset synchronously. Download and extraction
// failures do not produce an error; the response reports whether the split
// files are present afterwards.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	paths, err := s.corpus.Fetch(r.Context(), name)
	if err != nil {
		if errors.Is(err, dataset.ErrInvalidArgument) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.log.Error("fetch failed", "dataset", name, "error", err)
		jsonError(w, "fetch failed", http.StatusInternalServerError)
		return
	}

	installed := s.corpus.Installed(name)
	status := http.StatusOK
	if !installed {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]any{
		"name":      name,
		"installed": installed,
		"files": map[string]string{
			"train": paths.Train,
			"valid": paths.Valid,
			"test":  paths.Test,
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
