package tmdb

import (
	"net/url"
	"strconv"
)

type SortKey string

const (
	SortPopularityDesc  SortKey = "popularity.desc"
	SortPopularityAsc   SortKey = "popularity.asc"
	SortVoteAverageDesc SortKey = "vote_average.desc"
	SortVoteAverageAsc  SortKey = "vote_average.asc"
	SortReleaseDateDesc SortKey = "release_date.desc"
	SortReleaseDateAsc  SortKey = "release_date.asc"

	DefaultSort = SortPopularityDesc
)

var sortKeys = []SortKey{
	SortPopularityDesc,
	SortPopularityAsc,
	SortVoteAverageDesc,
	SortVoteAverageAsc,
	SortReleaseDateDesc,
	SortReleaseDateAsc,
}

// SortKeys returns the accepted discover sort keys in display order.
func SortKeys() []SortKey {
	return append([]SortKey(nil), sortKeys...)
}

func (k SortKey) Valid() bool {
	for _, known := range sortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// Query is a request for one page of movies. It is either a SearchRequest or
// a DiscoverRequest; text search and structured discovery never mix.
type Query interface {
	PageNumber() int
	values() url.Values
	endpoint() string
	op() string
}

// SearchRequest is a free-text title search.
type SearchRequest struct {
	Query string
	Page  int
}

// DiscoverRequest browses the catalog by sort order with optional genre and
// release year filters. Empty Genre or Year are left out of the request.
type DiscoverRequest struct {
	SortBy SortKey
	Genre  string
	Year   string
	Page   int
}

func (r SearchRequest) PageNumber() int   { return normalizePage(r.Page) }
func (r DiscoverRequest) PageNumber() int { return normalizePage(r.Page) }

func (SearchRequest) endpoint() string   { return "/search/movie" }
func (DiscoverRequest) endpoint() string { return "/discover/movie" }

func (SearchRequest) op() string   { return "search movies" }
func (DiscoverRequest) op() string { return "discover movies" }

func (r SearchRequest) values() url.Values {
	values := url.Values{}
	values.Set("query", r.Query)
	values.Set("page", strconv.Itoa(r.PageNumber()))
	return values
}

func (r DiscoverRequest) values() url.Values {
	sortBy := r.SortBy
	if sortBy == "" {
		sortBy = DefaultSort
	}
	values := url.Values{}
	values.Set("sort_by", string(sortBy))
	if r.Genre != "" {
		values.Set("with_genres", r.Genre)
	}
	if r.Year != "" {
		values.Set("year", r.Year)
	}
	values.Set("page", strconv.Itoa(r.PageNumber()))
	return values
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
