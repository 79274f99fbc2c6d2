// Package handlers wires HTTP routing and API handlers.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/handsomefox/movie-discovery/internal/catalog"
	"github.com/handsomefox/movie-discovery/internal/favorites"
	"github.com/handsomefox/movie-discovery/internal/logger"
	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

const (
	yearOptionCount = 30
	sharedTimeout   = 20 * time.Second
)

// ImageLinker builds CDN links for image path fragments.
type ImageLinker interface {
	PosterURL(path string) string
	BackdropURL(path string) string
}

type Handler struct {
	catalog   *catalog.Controller
	genres    *catalog.GenreCatalog
	viewer    *catalog.Viewer
	favorites *favorites.Store
	images    ImageLinker
	log       *slog.Logger
	now       func() time.Time
}

type Config struct {
	Catalog   *catalog.Controller
	Genres    *catalog.GenreCatalog
	Viewer    *catalog.Viewer
	Favorites *favorites.Store
	Images    ImageLinker
	Log       *slog.Logger
	Now       func() time.Time
}

func New(cfg *Config) (*Handler, error) {
	if cfg.Catalog == nil {
		return nil, errors.New("catalog controller is required")
	}
	if cfg.Genres == nil {
		return nil, errors.New("genre catalog is required")
	}
	if cfg.Viewer == nil {
		return nil, errors.New("viewer is required")
	}
	if cfg.Favorites == nil {
		return nil, errors.New("favorites store is required")
	}
	if cfg.Images == nil {
		return nil, errors.New("image linker is required")
	}

	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Handler{
		catalog:   cfg.Catalog,
		genres:    cfg.Genres,
		viewer:    cfg.Viewer,
		favorites: cfg.Favorites,
		images:    cfg.Images,
		log:       log,
		now:       now,
	}, nil
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Use(MiddlewareAPI)

	r.Route("/catalog", func(r chi.Router) {
		r.Method(http.MethodGet, "/", Adapt(h.getCatalog))
		r.Method(http.MethodPatch, "/filters", Adapt(h.patchFilters))
		r.Method(http.MethodPost, "/more", Adapt(h.postMore))
		r.Method(http.MethodPost, "/refetch", Adapt(h.postRefetch))
		r.Method(http.MethodGet, "/options", Adapt(h.getOptions))
	})

	r.Method(http.MethodGet, "/genres", Adapt(h.getGenres))

	r.Route("/movies", func(r chi.Router) {
		r.Method(http.MethodDelete, "/selection", Adapt(h.deleteSelection))
		r.Method(http.MethodGet, "/selection", Adapt(h.getSelection))
		r.Method(http.MethodGet, "/{id}", Adapt(h.getMovie))
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Method(http.MethodGet, "/", Adapt(h.getFavorites))
		r.Method(http.MethodDelete, "/", Adapt(h.deleteFavorites))
		r.Method(http.MethodPost, "/toggle", Adapt(h.postToggleFavorite))
		r.Method(http.MethodGet, "/{id}", Adapt(h.getFavorite))
		r.Method(http.MethodDelete, "/{id}", Adapt(h.deleteFavorite))
	})
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, h.catalogView(h.catalog.State()))
	return nil
}

func (h *Handler) patchFilters(w http.ResponseWriter, r *http.Request) error {
	var patch catalog.FilterPatch
	if err := decodeJSON(r, &patch); err != nil {
		return badRequest("invalid filters: " + err.Error())
	}

	ctx, cancel := sharedContext(r)
	defer cancel()

	state, err := h.catalog.UpdateFilters(ctx, patch)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidFilter) {
			return badRequest(err.Error())
		}
		return err
	}
	writeJSON(w, http.StatusOK, h.catalogView(state))
	return nil
}

func (h *Handler) postMore(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := sharedContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.catalogView(h.catalog.LoadMore(ctx)))
	return nil
}

func (h *Handler) postRefetch(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := sharedContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, h.catalogView(h.catalog.Refetch(ctx)))
	return nil
}

func (h *Handler) getOptions(w http.ResponseWriter, r *http.Request) error {
	genres := h.genres.List()
	if len(genres) == 0 {
		// The options endpoint stays usable without genres; the failure is
		// logged by the catalog and surfaced on /genres.
		ctx, cancel := sharedContext(r)
		genres, _ = h.genres.Load(ctx)
		cancel()
	}

	sorts := catalog.SortOptions()
	resp := optionsResponse{
		SortOptions: make([]sortOptionView, 0, len(sorts)),
		Years:       catalog.YearOptions(h.now(), yearOptionCount),
		Genres:      nonNilGenres(genres),
	}
	for _, s := range sorts {
		resp.SortOptions = append(resp.SortOptions, sortOptionView{Key: string(s.Key), Label: s.Label})
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) getGenres(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := sharedContext(r)
	defer cancel()

	genres, err := h.genres.Load(ctx)
	if err != nil {
		return badGateway(err)
	}
	writeJSON(w, http.StatusOK, genresResponse{Genres: nonNilGenres(genres)})
	return nil
}

func (h *Handler) getMovie(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r, "id")
	if err != nil {
		return badRequest(err.Error())
	}

	ctx, cancel := sharedContext(r)
	defer cancel()

	sel := h.viewer.Open(ctx, id)
	if sel.Details == nil && sel.DetailsErr != nil {
		var opErr *tmdb.OpError
		if errors.As(sel.DetailsErr, &opErr) && opErr.Status == http.StatusNotFound {
			return notFound("movie not found")
		}
	}
	writeJSON(w, http.StatusOK, h.selectionView(sel))
	return nil
}

func (h *Handler) getSelection(w http.ResponseWriter, r *http.Request) error {
	sel, ok := h.viewer.Current()
	if !ok {
		return notFound("no movie selected")
	}
	writeJSON(w, http.StatusOK, h.selectionView(sel))
	return nil
}

func (h *Handler) deleteSelection(w http.ResponseWriter, r *http.Request) error {
	h.viewer.Close()
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) getFavorites(w http.ResponseWriter, r *http.Request) error {
	list := h.favorites.List()
	resp := favoritesResponse{Movies: make([]movieView, 0, len(list)), Count: len(list)}
	for _, m := range list {
		resp.Movies = append(resp.Movies, h.movieView(m))
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) getFavorite(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	writeJSON(w, http.StatusOK, favoriteStatus{ID: id, Favorite: h.favorites.IsFavorite(id)})
	return nil
}

func (h *Handler) postToggleFavorite(w http.ResponseWriter, r *http.Request) error {
	var m tmdb.Movie
	if err := decodeLenient(r, &m); err != nil {
		return badRequest("invalid movie: " + err.Error())
	}
	if m.ID <= 0 {
		return badRequest("movie id is required")
	}
	if m.Title == "" {
		if known, ok := h.lookupMovie(m.ID); ok {
			m = known
		}
	}

	ctx, cancel := sharedContext(r)
	defer cancel()

	on, err := h.favorites.Toggle(ctx, m)
	if err != nil {
		h.log.Error("toggle favorite failed", slog.Int64("id", m.ID), logger.Error(err))
		return err
	}
	writeJSON(w, http.StatusOK, favoriteStatus{ID: m.ID, Favorite: on, Count: h.favorites.Len()})
	return nil
}

func (h *Handler) deleteFavorite(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r, "id")
	if err != nil {
		return badRequest(err.Error())
	}
	ctx, cancel := sharedContext(r)
	defer cancel()

	if err := h.favorites.Remove(ctx, id); err != nil {
		h.log.Error("remove favorite failed", slog.Int64("id", id), logger.Error(err))
		return err
	}
	writeJSON(w, http.StatusOK, favoriteStatus{ID: id, Favorite: false, Count: h.favorites.Len()})
	return nil
}

func (h *Handler) deleteFavorites(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := sharedContext(r)
	defer cancel()

	if err := h.favorites.Clear(ctx); err != nil {
		h.log.Error("clear favorites failed", logger.Error(err))
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// lookupMovie finds a full snapshot for a bare id among the listed movies and
// the open selection.
func (h *Handler) lookupMovie(id int64) (tmdb.Movie, bool) {
	for _, m := range h.catalog.State().Movies {
		if m.ID == id {
			return m, true
		}
	}
	if sel, ok := h.viewer.Current(); ok && sel.ID == id && sel.Details != nil {
		return sel.Details.Movie, true
	}
	return tmdb.Movie{}, false
}

// sharedContext bounds calls on process-wide state by a timeout instead of
// the client connection. Request values are kept.
func sharedContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), sharedTimeout)
}
