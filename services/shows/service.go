package shows

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"showdeck/models"
)

// Per-endpoint cache TTLs. Catalogue pages churn rarely; show detail changes
// less often than that, and episode lists are nearly static once aired.
// Search is uncached: the query space is too large and volatile to be worth
// keeping.
const (
	showsPageTTL  = 10 * time.Minute
	showDetailTTL = 30 * time.Minute
	episodesTTL   = 45 * time.Minute
	searchTTL     = 0
)

const (
	defaultMaxWindowPages = 50
	defaultMaxFilterPages = 19
)

// Config carries the upstream and scan-policy settings for a Service.
// MaxFilterPages bounds how many upstream catalogue pages a filter scan may
// visit; it trades completeness of the reported match count for latency.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	MaxWindowPages int
	MaxFilterPages int
}

// Service exposes typed accessors over the upstream metadata API plus the
// windowed-pagination and filter/sort/scan engines built on top of them.
type Service struct {
	client         *tvmazeClient
	maxWindowPages int
	maxFilterPages int
}

func NewService(cfg Config, httpc *http.Client, cache *Cache) *Service {
	if cache == nil {
		cache = NewCache()
	}
	if cfg.MaxWindowPages <= 0 {
		cfg.MaxWindowPages = defaultMaxWindowPages
	}
	if cfg.MaxFilterPages <= 0 {
		cfg.MaxFilterPages = defaultMaxFilterPages
	}
	return &Service{
		client:         newTVMazeClient(cfg.BaseURL, httpc, cache, cfg.Timeout),
		maxWindowPages: cfg.MaxWindowPages,
		maxFilterPages: cfg.MaxFilterPages,
	}
}

// ShowsPage fetches one fixed-size upstream catalogue page. An empty slice
// signals the end of the catalogue.
func (s *Service) ShowsPage(ctx context.Context, page int) ([]models.Show, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	var items []models.Show
	if err := s.client.get(ctx, "/shows", params, showsPageTTL, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ShowByID fetches one show, optionally with embedded sub-resources.
// A single embed is sent as embed=X; several are sent as repeated embed[]
// keys, which is the form upstream requires.
func (s *Service) ShowByID(ctx context.Context, id int, embeds []string) (*models.Show, error) {
	params := url.Values{}
	switch len(embeds) {
	case 0:
	case 1:
		params.Set("embed", embeds[0])
	default:
		for _, e := range embeds {
			params.Add("embed[]", e)
		}
	}
	var show models.Show
	if err := s.client.get(ctx, fmt.Sprintf("/shows/%d", id), params, showDetailTTL, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

func (s *Service) EpisodesByShow(ctx context.Context, showID int) ([]models.Episode, error) {
	var items []models.Episode
	if err := s.client.get(ctx, fmt.Sprintf("/shows/%d/episodes", showID), nil, episodesTTL, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) EpisodesBySeason(ctx context.Context, seasonID int) ([]models.Episode, error) {
	var items []models.Episode
	if err := s.client.get(ctx, fmt.Sprintf("/seasons/%d/episodes", seasonID), nil, episodesTTL, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Service) EpisodeByID(ctx context.Context, episodeID int) (*models.Episode, error) {
	var episode models.Episode
	if err := s.client.get(ctx, fmt.Sprintf("/episodes/%d", episodeID), nil, episodesTTL, &episode); err != nil {
		return nil, err
	}
	return &episode, nil
}

// SearchShows runs an upstream free-text search. Results are a bounded
// candidate set scored by upstream relevance.
func (s *Service) SearchShows(ctx context.Context, query string) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	var results []models.SearchResult
	if err := s.client.get(ctx, "/search/shows", params, searchTTL, &results); err != nil {
		return nil, err
	}
	return results, nil
}
