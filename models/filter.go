package models

// SortKey selects the ordering applied to a filtered show set.
type SortKey string

const (
	SortRating    SortKey = "rating"
	SortName      SortKey = "name"
	SortPremiered SortKey = "premiered"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// DefaultLimit is the page size used when a request does not supply one.
const DefaultLimit = 20

// FilterParams is the request-scoped filter/sort/pagination value object.
// Optional clauses use pointers (or empty strings/slices) so that an absent
// parameter skips its predicate clause entirely.
type FilterParams struct {
	Q         string
	Genres    []string
	Language  string
	RatingGte *float64
	YearMin   *int
	YearMax   *int
	Status    string
	Sort      SortKey
	Order     SortOrder
	Page      int
	Limit     int
}

// DefaultFilterParams returns the baseline used before query parsing:
// rating descending, first page of twenty.
func DefaultFilterParams() FilterParams {
	return FilterParams{
		Sort:  SortRating,
		Order: OrderDesc,
		Page:  0,
		Limit: DefaultLimit,
	}
}
