package api

import (
	"net/http"
	"strings"

	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/models"
	"github.com/systemBoam-KU-AICS306-25Fall/systemBoam-service/internal/store"
)

type searchResponse struct {
	Results []models.SearchItem `json:"results"`
}

// handleSearch looks up CVEs by id substring or keyword. Store failures
// collapse to an empty result set rather than an error status, so the
// search box never renders a failure state.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeDetail(w, http.StatusBadRequest, "query must not be empty")
		return
	}

	mode := models.SearchMode(r.URL.Query().Get("type"))
	if mode == "" {
		mode = store.DetectSearchMode(q)
	}
	if !mode.Valid() {
		writeDetail(w, http.StatusBadRequest, "type must be 'cve' or 'keyword'")
		return
	}

	limit := limitParam(r, 20, 1, 100)

	items, err := s.store.Search(r.Context(), q, mode, limit)
	if err != nil {
		s.log.WithError(err).Warn("search failed, returning empty results")
		items = nil
	}
	if items == nil {
		items = []models.SearchItem{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: items})
}
