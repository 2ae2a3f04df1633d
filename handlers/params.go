package handlers

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"showdeck/models"
)

// Total parsers for query-string input: any invalid value yields the absent
// result, never an error. User input cannot fault a request; it only falls
// back to defaults.

func queryString(q url.Values, key string) string {
	return strings.TrimSpace(q.Get(key))
}

func queryInt(q url.Values, key string) *int {
	raw := queryString(q, key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func queryFloat(q url.Values, key string) *float64 {
	raw := queryString(q, key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// queryList splits a comma-separated value, dropping empty elements.
func queryList(q url.Values, key string) []string {
	raw := queryString(q, key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func querySort(q url.Values, key string) models.SortKey {
	switch models.SortKey(queryString(q, key)) {
	case models.SortRating:
		return models.SortRating
	case models.SortName:
		return models.SortName
	case models.SortPremiered:
		return models.SortPremiered
	}
	return models.SortRating
}

func queryOrder(q url.Values, key string) models.SortOrder {
	switch models.SortOrder(strings.ToLower(queryString(q, key))) {
	case models.OrderAsc:
		return models.OrderAsc
	case models.OrderDesc:
		return models.OrderDesc
	}
	return models.OrderDesc
}

// parseFilterParams builds a FilterParams from raw query input, applying
// the defaults (sort=rating, order=desc, page=0, limit=20) wherever a value
// is missing or invalid.
func parseFilterParams(q url.Values) models.FilterParams {
	p := models.DefaultFilterParams()
	p.Q = queryString(q, "q")
	p.Genres = queryList(q, "genres")
	p.Language = queryString(q, "language")
	p.RatingGte = queryFloat(q, "rating_gte")
	p.YearMin = queryInt(q, "year_min")
	p.YearMax = queryInt(q, "year_max")
	p.Status = queryString(q, "status")
	p.Sort = querySort(q, "sort")
	p.Order = queryOrder(q, "order")
	if v := queryInt(q, "page"); v != nil && *v >= 0 {
		p.Page = *v
	}
	if v := queryInt(q, "limit"); v != nil && *v > 0 {
		p.Limit = *v
	}
	return p
}

// parseEmbeds accepts both ?embed=episodes and ?embed[]=seasons&embed[]=cast.
func parseEmbeds(q url.Values) []string {
	var embeds []string
	for _, key := range []string{"embed", "embed[]"} {
		for _, v := range q[key] {
			if v = strings.TrimSpace(v); v != "" {
				embeds = append(embeds, v)
			}
		}
	}
	return embeds
}
