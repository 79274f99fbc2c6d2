package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filters is the catalog query state. A non-empty SearchQuery switches the
// catalog to text search and Genre, Year and SortBy are not sent.
type Filters struct {
	SearchQuery string
	Genre       string
	Year        string
	SortBy      tmdb.SortKey
}

func DefaultFilters() Filters {
	return Filters{SortBy: tmdb.DefaultSort}
}

// FilterPatch carries a partial filter update; nil fields keep their value.
type FilterPatch struct {
	SearchQuery *string       `json:"search_query,omitempty"`
	Genre       *string       `json:"genre,omitempty"`
	Year        *string       `json:"year,omitempty"`
	SortBy      *tmdb.SortKey `json:"sort_by,omitempty"`
}

func (p FilterPatch) Validate() error {
	if p.Genre != nil && *p.Genre != "" && !isDigits(*p.Genre) {
		return fmt.Errorf("%w: genre must be a numeric id", ErrInvalidFilter)
	}
	if p.Year != nil && *p.Year != "" && (len(*p.Year) != 4 || !isDigits(*p.Year)) {
		return fmt.Errorf("%w: year must have 4 digits", ErrInvalidFilter)
	}
	if p.SortBy != nil && !p.SortBy.Valid() {
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidFilter, *p.SortBy)
	}
	return nil
}

func (f Filters) Apply(p FilterPatch) Filters {
	if p.SearchQuery != nil {
		f.SearchQuery = *p.SearchQuery
	}
	if p.Genre != nil {
		f.Genre = *p.Genre
	}
	if p.Year != nil {
		f.Year = *p.Year
	}
	if p.SortBy != nil {
		f.SortBy = *p.SortBy
	}
	return f
}

// BuildQuery turns filters into the request for one page. The search query
// is used verbatim, whitespace included.
func BuildQuery(f Filters, page int) tmdb.Query {
	if f.SearchQuery != "" {
		return tmdb.SearchRequest{Query: f.SearchQuery, Page: page}
	}
	return tmdb.DiscoverRequest{
		SortBy: f.SortBy,
		Genre:  f.Genre,
		Year:   f.Year,
		Page:   page,
	}
}

type SortOption struct {
	Key   tmdb.SortKey
	Label string
}

var sortLabels = map[tmdb.SortKey]string{
	tmdb.SortPopularityDesc:  "Mais Popular",
	tmdb.SortPopularityAsc:   "Menos Popular",
	tmdb.SortVoteAverageDesc: "Melhor Avaliação",
	tmdb.SortVoteAverageAsc:  "Pior Avaliação",
	tmdb.SortReleaseDateDesc: "Mais Recente",
	tmdb.SortReleaseDateAsc:  "Mais Antigo",
}

func SortOptions() []SortOption {
	keys := tmdb.SortKeys()
	out := make([]SortOption, 0, len(keys))
	for _, k := range keys {
		out = append(out, SortOption{Key: k, Label: sortLabels[k]})
	}
	return out
}

// YearOptions lists the n most recent release years, newest first.
func YearOptions(now time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	current := now.Year()
	out := make([]string, 0, n)
	for i := range n {
		out = append(out, strconv.Itoa(current-i))
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
