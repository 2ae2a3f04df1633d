package handlers

import (
	"context"
	"net/http"
	"strings"

	"showdeck/models"
	"showdeck/services/shows"
)

type searchService interface {
	SearchShows(ctx context.Context, query string) ([]models.SearchResult, error)
}

var _ searchService = (*shows.Service)(nil)

type SearchHandler struct {
	Service searchService
}

func NewSearchHandler(s searchService) *SearchHandler {
	return &SearchHandler{Service: s}
}

// Search serves GET /api/search?q=: upstream free-text show search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query param 'q' is required")
		return
	}

	results, err := h.Service.SearchShows(r.Context(), q)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	writeJSON(w, http.StatusOK, models.SearchPage{Page: 0, Count: len(results), Items: results})
}
