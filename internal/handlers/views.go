package handlers

import (
	"github.com/handsomefox/movie-discovery/internal/catalog"
	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

type movieView struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Overview         string   `json:"overview"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	PosterURL        string   `json:"poster_url,omitempty"`
	BackdropURL      string   `json:"backdrop_url,omitempty"`
	ReleaseDate      string   `json:"release_date"`
	Year             string   `json:"year,omitempty"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	OriginalLanguage string   `json:"original_language"`
	GenreIDs         []int    `json:"genre_ids"`
	Genres           []string `json:"genres"`
	Favorite         bool     `json:"favorite"`
}

type filtersView struct {
	SearchQuery string `json:"search_query"`
	Genre       string `json:"genre"`
	Year        string `json:"year"`
	SortBy      string `json:"sort_by"`
}

type catalogView struct {
	Filters     filtersView `json:"filters"`
	Movies      []movieView `json:"movies"`
	Loading     bool        `json:"loading"`
	Error       string      `json:"error,omitempty"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
	HasMore     bool        `json:"has_more"`
}

type detailsView struct {
	movieView

	Tagline      string `json:"tagline,omitempty"`
	Runtime      *int   `json:"runtime,omitempty"`
	RuntimeLabel string `json:"runtime_label,omitempty"`
	Budget       int64  `json:"budget,omitempty"`
	Revenue      int64  `json:"revenue,omitempty"`
	Status       string `json:"status,omitempty"`
}

type selectionView struct {
	ID           int64        `json:"id"`
	Loading      bool         `json:"loading"`
	Movie        *detailsView `json:"movie,omitempty"`
	TrailerKey   string       `json:"trailer_key,omitempty"`
	TrailerURL   string       `json:"trailer_url,omitempty"`
	DetailsError string       `json:"details_error,omitempty"`
	TrailerError string       `json:"trailer_error,omitempty"`
}

type sortOptionView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type optionsResponse struct {
	SortOptions []sortOptionView `json:"sort_options"`
	Years       []string         `json:"years"`
	Genres      []tmdb.Genre     `json:"genres"`
}

type genresResponse struct {
	Genres []tmdb.Genre `json:"genres"`
}

type favoritesResponse struct {
	Movies []movieView `json:"movies"`
	Count  int         `json:"count"`
}

type favoriteStatus struct {
	ID       int64 `json:"id"`
	Favorite bool  `json:"favorite"`
	Count    int   `json:"count,omitempty"`
}

func (h *Handler) movieView(m tmdb.Movie) movieView {
	genreIDs := m.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}
	return movieView{
		ID:               m.ID,
		Title:            m.Title,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		PosterURL:        h.images.PosterURL(m.PosterPath),
		BackdropURL:      h.images.BackdropURL(m.BackdropPath),
		ReleaseDate:      m.ReleaseDate,
		Year:             tmdb.Year(m.ReleaseDate),
		VoteAverage:      m.VoteAverage,
		VoteCount:        m.VoteCount,
		OriginalLanguage: m.OriginalLanguage,
		GenreIDs:         genreIDs,
		Genres:           h.genres.Names(m.GenreIDs),
		Favorite:         h.favorites.IsFavorite(m.ID),
	}
}

func (h *Handler) catalogView(s catalog.State) catalogView {
	out := catalogView{
		Filters: filtersView{
			SearchQuery: s.Filters.SearchQuery,
			Genre:       s.Filters.Genre,
			Year:        s.Filters.Year,
			SortBy:      string(s.Filters.SortBy),
		},
		Movies:      make([]movieView, 0, len(s.Movies)),
		Loading:     s.Loading,
		Error:       s.Error,
		CurrentPage: s.CurrentPage,
		TotalPages:  s.TotalPages,
		HasMore:     s.HasMore(),
	}
	for _, m := range s.Movies {
		out.Movies = append(out.Movies, h.movieView(m))
	}
	return out
}

func (h *Handler) selectionView(sel catalog.Selection) selectionView {
	out := selectionView{ID: sel.ID, Loading: sel.Loading}
	if sel.Details != nil {
		d := sel.Details
		mv := h.movieView(d.Movie)
		if len(d.Genres) > 0 {
			mv.Genres = make([]string, 0, len(d.Genres))
			mv.GenreIDs = make([]int, 0, len(d.Genres))
			for _, g := range d.Genres {
				mv.Genres = append(mv.Genres, g.Name)
				mv.GenreIDs = append(mv.GenreIDs, g.ID)
			}
		}
		out.Movie = &detailsView{
			movieView:    mv,
			Tagline:      d.Tagline,
			Runtime:      d.Runtime,
			RuntimeLabel: runtimeLabel(d.Runtime),
			Budget:       d.Budget,
			Revenue:      d.Revenue,
			Status:       d.Status,
		}
	}
	if sel.Trailer != nil {
		out.TrailerKey = sel.Trailer.Key
		out.TrailerURL = tmdb.TrailerURL(sel.Trailer.Key)
	}
	if sel.DetailsErr != nil {
		out.DetailsError = sel.DetailsErr.Error()
	}
	if sel.TrailerErr != nil {
		out.TrailerError = sel.TrailerErr.Error()
	}
	return out
}

func nonNilGenres(in []tmdb.Genre) []tmdb.Genre {
	if in == nil {
		return []tmdb.Genre{}
	}
	return in
}
