package models

// Show is an upstream TVMaze series record. Shows are never created or
// mutated locally; they are only fetched, cached, and passed through.
type Show struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Language  string    `json:"language"`
	Genres    []string  `json:"genres"`
	Status    string    `json:"status"`
	Premiered *string   `json:"premiered"`
	Summary   *string   `json:"summary,omitempty"`
	Rating    Rating    `json:"rating"`
	Image     *Image    `json:"image"`
	Embedded  *Embedded `json:"_embedded,omitempty"`
}

// Rating wraps the upstream average, which is null for unrated shows.
type Rating struct {
	Average *float64 `json:"average"`
}

type Image struct {
	Medium   string `json:"medium,omitempty"`
	Original string `json:"original,omitempty"`
}

// Embedded carries optional sub-resources returned when a show detail
// request asks for them via embed parameters.
type Embedded struct {
	Seasons  []Season     `json:"seasons,omitempty"`
	Cast     []CastMember `json:"cast,omitempty"`
	Episodes []Episode    `json:"episodes,omitempty"`
}

type CastMember struct {
	Person    Person    `json:"person"`
	Character Character `json:"character"`
}

type Person struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image *Image `json:"image,omitempty"`
}

type Character struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image *Image `json:"image,omitempty"`
}

// Episode belongs to exactly one show and season. Number is nil for
// specials, which upstream serves without an episode number.
type Episode struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Season  int     `json:"season"`
	Number  *int    `json:"number"`
	Airdate string  `json:"airdate,omitempty"`
	Runtime *int    `json:"runtime"`
	Rating  Rating  `json:"rating"`
	Summary *string `json:"summary,omitempty"`
	Image   *Image  `json:"image,omitempty"`
}

type Season struct {
	ID           int     `json:"id"`
	Number       int     `json:"number"`
	EpisodeOrder *int    `json:"episodeOrder"`
	PremiereDate *string `json:"premiereDate"`
	Image        *Image  `json:"image,omitempty"`
}

// SearchResult is one upstream free-text search hit.
type SearchResult struct {
	Score float64 `json:"score"`
	Show  Show    `json:"show"`
}

// ShowPage is the uniform list envelope returned by the windowed and
// filtered show endpoints. Count is the number of matches found within the
// scan budget, not a global catalogue total. Incomplete is set when the
// scan cap stopped a filter scan before the catalogue ended, meaning Count
// may under-report the true match total.
type ShowPage struct {
	Page       int    `json:"page"`
	Count      int    `json:"count"`
	Items      []Show `json:"items"`
	Incomplete bool   `json:"incomplete,omitempty"`
}

// EpisodePage is the envelope for episode list endpoints.
type EpisodePage struct {
	Count int       `json:"count"`
	Items []Episode `json:"items"`
}

// SearchPage is the envelope for the search endpoint.
type SearchPage struct {
	Page  int            `json:"page"`
	Count int            `json:"count"`
	Items []SearchResult `json:"items"`
}
