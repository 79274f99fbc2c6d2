package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/handsomefox/movie-discovery/internal/logger"
	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

type DetailSource interface {
	MovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetails, error)
	MovieVideos(ctx context.Context, id int64) ([]tmdb.Video, error)
}

// Selection is the movie opened for details. Details and Trailer are nil when
// missing; a missing trailer is not an error. Failures are kept for callers
// that want to report them.
type Selection struct {
	ID         int64
	Loading    bool
	Details    *tmdb.MovieDetails
	Trailer    *tmdb.Video
	DetailsErr error
	TrailerErr error
}

// Viewer loads details and trailers for one movie at a time.
type Viewer struct {
	source DetailSource
	log    *slog.Logger

	mu      sync.Mutex
	gen     uint64
	current *Selection
}

func NewViewer(source DetailSource, log *slog.Logger) *Viewer {
	if log == nil {
		log = slog.Default()
	}
	return &Viewer{source: source, log: log}
}

// Open fetches details and videos for id in parallel. The result becomes the
// current selection unless another Open or Close happened meanwhile.
func (v *Viewer) Open(ctx context.Context, id int64) Selection {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	v.current = &Selection{ID: id, Loading: true}
	v.mu.Unlock()

	sel := Selection{ID: id}
	var wg conc.WaitGroup
	wg.Go(func() {
		details, err := v.source.MovieDetails(ctx, id)
		if err != nil {
			sel.DetailsErr = err
			v.log.Warn("viewer: details failed", slog.Int64("id", id), logger.Error(err))
			return
		}
		sel.Details = details
	})
	wg.Go(func() {
		videos, err := v.source.MovieVideos(ctx, id)
		if err != nil {
			sel.TrailerErr = err
			v.log.Info("viewer: trailer lookup failed", slog.Int64("id", id), logger.Error(err))
			return
		}
		if trailer, ok := tmdb.FindTrailer(videos); ok {
			sel.Trailer = &trailer
		}
	})
	wg.Wait()

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen == v.gen {
		stored := sel
		v.current = &stored
	}
	return sel
}

func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.current = nil
}

func (v *Viewer) Current() (Selection, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.current == nil {
		return Selection{}, false
	}
	return *v.current, true
}
