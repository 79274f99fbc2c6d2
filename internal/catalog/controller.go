// Package catalog holds the discovery state: the filtered, paginated movie
// list, the session genre cache and the movie currently opened for details.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/handsomefox/movie-discovery/internal/logger"
	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

// MovieSource fetches one page of a catalog query.
type MovieSource interface {
	Movies(ctx context.Context, q tmdb.Query) (*tmdb.Page, error)
}

// State is a copy of the controller state at one point in time.
type State struct {
	Filters     Filters
	Movies      []tmdb.Movie
	Loading     bool
	Error       string
	CurrentPage int
	TotalPages  int
}

func (s State) HasMore() bool { return s.CurrentPage < s.TotalPages }

// Controller owns the catalog filters and the accumulated result list.
//
// Page-1 fetches and page appends are tracked by generation. A response is
// applied only while its generation is still the latest of its stream, and
// issuing page 1 also advances the append stream, so a slow response from an
// older query never lands on top of a newer one.
type Controller struct {
	source MovieSource
	log    *slog.Logger

	mu          sync.Mutex
	filters     Filters
	movies      []tmdb.Movie
	err         string
	currentPage int
	totalPages  int

	resetGen      uint64
	appendGen     uint64
	resetPending  bool
	appendPending bool
}

// NewController starts with default filters and an empty list. Nothing is
// fetched until Refetch or UpdateFilters.
func NewController(source MovieSource, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		source:      source,
		log:         log,
		filters:     DefaultFilters(),
		movies:      []tmdb.Movie{},
		currentPage: 1,
		totalPages:  1,
	}
}

// State returns a snapshot of the current filters, list and pagination.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// UpdateFilters merges patch into the current filters and reloads page 1.
// Only an invalid patch is reported as an error; fetch failures land in
// State.Error.
func (c *Controller) UpdateFilters(ctx context.Context, patch FilterPatch) (State, error) {
	if err := patch.Validate(); err != nil {
		return c.State(), err
	}
	return c.fetchFirst(ctx, &patch), nil
}

// Refetch reloads page 1 with the current filters.
func (c *Controller) Refetch(ctx context.Context) State {
	return c.fetchFirst(ctx, nil)
}

// LoadMore appends the next page. It does nothing while another fetch is in
// flight or when the last page is already loaded.
func (c *Controller) LoadMore(ctx context.Context) State {
	c.mu.Lock()
	if c.resetPending || c.appendPending || c.currentPage >= c.totalPages {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s
	}
	c.appendGen++
	gen := c.appendGen
	next := c.currentPage + 1
	c.appendPending = true
	q := BuildQuery(c.filters, next)
	c.mu.Unlock()

	page, err := c.source.Movies(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.appendGen {
		c.log.Debug("catalog: dropped stale page", slog.Int("page", next))
		return c.snapshotLocked()
	}
	c.appendPending = false
	if err != nil {
		c.err = err.Error()
		c.log.Warn("catalog: load more failed", slog.Int("page", next), logger.Error(err))
		return c.snapshotLocked()
	}

	c.movies = append(c.movies, page.Results...)
	c.setPagesLocked(next, page.TotalPages)
	c.err = ""
	return c.snapshotLocked()
}

func (c *Controller) fetchFirst(ctx context.Context, patch *FilterPatch) State {
	c.mu.Lock()
	if patch != nil {
		c.filters = c.filters.Apply(*patch)
		// The kept list no longer matches the filters, so appending to it
		// stays disabled until page 1 of the new query arrives.
		c.currentPage = 1
		c.totalPages = 1
	}
	c.resetGen++
	c.appendGen++
	gen := c.resetGen
	c.resetPending = true
	c.appendPending = false
	q := BuildQuery(c.filters, 1)
	c.mu.Unlock()

	page, err := c.source.Movies(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.resetGen {
		c.log.Debug("catalog: dropped stale page", slog.Int("page", 1))
		return c.snapshotLocked()
	}
	c.resetPending = false
	if err != nil {
		c.err = err.Error()
		c.log.Warn("catalog: fetch failed", logger.Error(err))
		return c.snapshotLocked()
	}

	c.movies = append([]tmdb.Movie(nil), page.Results...)
	c.setPagesLocked(1, page.TotalPages)
	c.err = ""
	return c.snapshotLocked()
}

func (c *Controller) setPagesLocked(page, total int) {
	c.currentPage = page
	c.totalPages = max(total, page, 1)
}

func (c *Controller) snapshotLocked() State {
	movies := make([]tmdb.Movie, len(c.movies))
	copy(movies, c.movies)
	return State{
		Filters:     c.filters,
		Movies:      movies,
		Loading:     c.resetPending || c.appendPending,
		Error:       c.err,
		CurrentPage: c.currentPage,
		TotalPages:  c.totalPages,
	}
}
