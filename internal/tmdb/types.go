package tmdb

// Movie is a catalog entry as returned by search, discover and popular
// listings. JSON names match the remote payload so a stored snapshot decodes
// with the same tags it was fetched with.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
}

// MovieDetails is the full record behind GET /movie/{id}. Budget and Revenue
// are 0 when the source has nothing reported.
type MovieDetails struct {
	Movie

	Tagline string  `json:"tagline"`
	Runtime *int    `json:"runtime"`
	Budget  int64   `json:"budget"`
	Revenue int64   `json:"revenue"`
	Status  string  `json:"status"`
	Genres  []Genre `json:"genres"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Page is one page of a paginated listing.
type Page struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

type videoListResponse struct {
	ID      int64   `json:"id"`
	Results []Video `json:"results"`
}
