package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/handsomefox/movie-discovery/internal/logger"
	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

// GenreSource fetches the full movie genre list.
type GenreSource interface {
	Genres(ctx context.Context) ([]tmdb.Genre, error)
}

// GenreCatalog caches the genre list for the lifetime of the process. It only
// feeds display and filter options; filtering itself happens remotely.
type GenreCatalog struct {
	source GenreSource
	log    *slog.Logger

	mu      sync.RWMutex
	list    []tmdb.Genre
	names   map[int]string
	loaded  bool
	gen     uint64
	lastErr error
}

func NewGenreCatalog(source GenreSource, log *slog.Logger) *GenreCatalog {
	if log == nil {
		log = slog.Default()
	}
	return &GenreCatalog{source: source, log: log, names: map[int]string{}}
}

// Load returns the cached list, fetching it on first use. A failed fetch is
// returned and logged but leaves the cache empty so a later call retries.
func (g *GenreCatalog) Load(ctx context.Context) ([]tmdb.Genre, error) {
	g.mu.Lock()
	if g.loaded {
		out := append([]tmdb.Genre(nil), g.list...)
		g.mu.Unlock()
		return out, nil
	}
	g.gen++
	gen := g.gen
	g.mu.Unlock()

	genres, err := g.source.Genres(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen {
		if err != nil {
			return []tmdb.Genre{}, err
		}
		return append([]tmdb.Genre(nil), genres...), nil
	}
	if err != nil {
		g.lastErr = err
		g.log.Warn("genres: load failed", logger.Error(err))
		return []tmdb.Genre{}, err
	}

	names := make(map[int]string, len(genres))
	for _, genre := range genres {
		if strings.TrimSpace(genre.Name) == "" {
			continue
		}
		names[genre.ID] = genre.Name
	}
	g.list = append([]tmdb.Genre(nil), genres...)
	g.names = names
	g.loaded = true
	g.lastErr = nil
	return append([]tmdb.Genre(nil), g.list...), nil
}

// List returns the cached genres without fetching.
func (g *GenreCatalog) List() []tmdb.Genre {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]tmdb.Genre{}, g.list...)
}

// LastError reports the most recent failed load, nil once a load succeeds.
func (g *GenreCatalog) LastError() error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lastErr
}

func (g *GenreCatalog) Name(id int) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	name, ok := g.names[id]
	return name, ok
}

// Names maps ids to names in order, skipping ids the cache does not know.
func (g *GenreCatalog) Names(ids []int) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := g.names[id]; ok {
			out = append(out, name)
		}
	}
	return out
}
