package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"showdeck/models"
	"showdeck/services/shows"
)

type showService interface {
	ShowsWindow(ctx context.Context, page, limit int) (*models.ShowPage, error)
	FilteredShows(ctx context.Context, p models.FilterParams) (*models.ShowPage, error)
	ShowByID(ctx context.Context, id int, embeds []string) (*models.Show, error)
	EpisodesByShow(ctx context.Context, showID int) ([]models.Episode, error)
	EpisodesBySeason(ctx context.Context, seasonID int) ([]models.Episode, error)
	EpisodeByID(ctx context.Context, episodeID int) (*models.Episode, error)
}

var _ showService = (*shows.Service)(nil)

// browsePageSize is the fixed window size for the plain catalogue listing.
const browsePageSize = 20

type ShowsHandler struct {
	Service showService
}

func NewShowsHandler(s showService) *ShowsHandler {
	return &ShowsHandler{Service: s}
}

// List serves GET /api/shows?page=N: the N-th fixed-size window over the
// upstream catalogue in its native order.
func (h *ShowsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "'page' must be a non-negative number")
			return
		}
		page = parsed
	}

	result, err := h.Service.ShowsWindow(r.Context(), page, browsePageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Filter serves GET /api/shows/filter with the full filter/sort/pagination
// parameter set.
func (h *ShowsHandler) Filter(w http.ResponseWriter, r *http.Request) {
	params := parseFilterParams(r.URL.Query())
	result, err := h.Service.FilteredShows(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Detail serves GET /api/shows/{id}, with optional embedded sub-resources
// requested via ?embed=X or repeated ?embed[]=X keys.
func (h *ShowsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid show id")
		return
	}

	show, err := h.Service.ShowByID(r.Context(), id, parseEmbeds(r.URL.Query()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, show)
}

// Episodes serves GET /api/shows/{id}/episodes.
func (h *ShowsHandler) Episodes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid show id")
		return
	}

	items, err := h.Service.EpisodesByShow(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Episode{}
	}
	writeJSON(w, http.StatusOK, models.EpisodePage{Count: len(items), Items: items})
}

// SeasonEpisodes serves GET /api/seasons/{id}/episodes, sorted by episode
// number ascending. Specials without a number sort first.
func (h *ShowsHandler) SeasonEpisodes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid season id")
		return
	}

	items, err := h.Service.EpisodesBySeason(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Episode{}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return episodeNumber(items[i]) < episodeNumber(items[j])
	})
	writeJSON(w, http.StatusOK, models.EpisodePage{Count: len(items), Items: items})
}

// Episode serves GET /api/episodes/{id}.
func (h *ShowsHandler) Episode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid episode id")
		return
	}

	episode, err := h.Service.EpisodeByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, episode)
}

func episodeNumber(e models.Episode) int {
	if e.Number != nil {
		return *e.Number
	}
	return 0
}

// pathID extracts a positive integer path variable.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
