package shows

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"showdeck/models"
)

// FilteredShows applies the filter predicate, sorts the full match set, and
// returns the requested window of it.
//
// With a free-text query the candidates come from upstream search and the
// catalogue is never scanned. Otherwise upstream catalogue pages are scanned
// sequentially from page 0, accumulating matches until the catalogue ends or
// the configured scan cap trips; the cap bounds worst-case latency at the
// cost of a possibly truncated match set, reported via Incomplete.
//
// Count is the number of matches found within the scan budget, not a global
// catalogue total. Sorting happens over the entire accumulated match set
// before slicing, never per upstream page, so page boundaries stay stable
// for a fixed filter+sort combination over a static catalogue.
func (s *Service) FilteredShows(ctx context.Context, p models.FilterParams) (*models.ShowPage, error) {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Limit <= 0 {
		p.Limit = models.DefaultLimit
	}

	var matches []models.Show
	incomplete := false

	if strings.TrimSpace(p.Q) != "" {
		results, err := s.SearchShows(ctx, p.Q)
		if err != nil {
			return nil, err
		}
		for _, result := range results {
			if matchesFilters(result.Show, p) {
				matches = append(matches, result.Show)
			}
		}
	} else {
		exhausted := false
		for page := 0; page < s.maxFilterPages; page++ {
			batch, err := s.ShowsPage(ctx, page)
			if err != nil {
				return nil, err
			}
			if len(batch) == 0 {
				exhausted = true
				break
			}
			for _, show := range batch {
				if matchesFilters(show, p) {
					matches = append(matches, show)
				}
			}
		}
		incomplete = !exhausted
	}

	sortShows(matches, p.Sort, p.Order)

	offset := p.Page * p.Limit
	window := []models.Show{}
	if offset < len(matches) {
		end := offset + p.Limit
		if end > len(matches) {
			end = len(matches)
		}
		window = matches[offset:end]
	}

	return &models.ShowPage{
		Page:       p.Page,
		Count:      len(matches),
		Items:      window,
		Incomplete: incomplete,
	}, nil
}

// matchesFilters evaluates the AND of all active predicate clauses. A clause
// whose parameter is absent is skipped entirely.
func matchesFilters(show models.Show, p models.FilterParams) bool {
	if len(p.Genres) > 0 && !genresIntersect(show.Genres, p.Genres) {
		return false
	}
	if p.RatingGte != nil && ratingOf(show) < *p.RatingGte {
		return false
	}
	if p.YearMin != nil || p.YearMax != nil {
		year, ok := premiereYear(show.Premiered)
		if !ok {
			// No usable premiere date excludes the show whenever a year
			// bound is active.
			return false
		}
		if p.YearMin != nil && year < *p.YearMin {
			return false
		}
		if p.YearMax != nil && year > *p.YearMax {
			return false
		}
	}
	if p.Status != "" && !strings.EqualFold(show.Status, p.Status) {
		return false
	}
	if p.Language != "" && !strings.EqualFold(show.Language, p.Language) {
		return false
	}
	return true
}

func genresIntersect(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func ratingOf(show models.Show) float64 {
	if show.Rating.Average != nil {
		return *show.Rating.Average
	}
	return 0
}

func premieredOf(show models.Show) string {
	if show.Premiered != nil {
		return *show.Premiered
	}
	return ""
}

// premiereYear parses the 4-digit year prefix of an ISO premiere date.
func premiereYear(premiered *string) (int, bool) {
	if premiered == nil || len(*premiered) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi((*premiered)[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// sortShows stably sorts items in place by key and order. Name uses a
// locale-aware case-insensitive comparison; rating treats a nil average as
// 0; premiered compares ISO date strings with nil sorting as empty.
func sortShows(items []models.Show, key models.SortKey, order models.SortOrder) {
	var less func(a, b models.Show) bool
	switch key {
	case models.SortName:
		coll := collate.New(language.English, collate.IgnoreCase)
		less = func(a, b models.Show) bool {
			return coll.CompareString(a.Name, b.Name) < 0
		}
	case models.SortPremiered:
		less = func(a, b models.Show) bool {
			return premieredOf(a) < premieredOf(b)
		}
	default:
		less = func(a, b models.Show) bool {
			return ratingOf(a) < ratingOf(b)
		}
	}

	asc := order == models.OrderAsc
	sort.SliceStable(items, func(i, j int) bool {
		if asc {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}
