package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

func TestFilterPatchValidate(t *testing.T) {
	valid := []FilterPatch{
		{},
		{SearchQuery: ptr("  anything goes  ")},
		{Genre: ptr("")},
		{Genre: ptr("878")},
		{Year: ptr("")},
		{Year: ptr("1999")},
		{SortBy: ptr(tmdb.SortReleaseDateAsc)},
	}
	for _, p := range valid {
		assert.NoError(t, p.Validate())
	}

	invalid := []FilterPatch{
		{Genre: ptr("28,12")},
		{Year: ptr("99")},
		{Year: ptr("19999")},
		{SortBy: ptr(tmdb.SortKey(""))},
	}
	for _, p := range invalid {
		assert.ErrorIs(t, p.Validate(), ErrInvalidFilter)
	}
}

func TestFiltersApply(t *testing.T) {
	f := DefaultFilters().Apply(FilterPatch{SearchQuery: ptr("dune"), Year: ptr("2021")})
	assert.Equal(t, Filters{SearchQuery: "dune", Year: "2021", SortBy: tmdb.DefaultSort}, f)

	f = f.Apply(FilterPatch{})
	assert.Equal(t, Filters{SearchQuery: "dune", Year: "2021", SortBy: tmdb.DefaultSort}, f)
}

func TestSortOptions(t *testing.T) {
	opts := SortOptions()
	require.Len(t, opts, len(tmdb.SortKeys()))
	assert.Equal(t, SortOption{Key: tmdb.SortPopularityDesc, Label: "Mais Popular"}, opts[0])
	assert.Equal(t, SortOption{Key: tmdb.SortVoteAverageDesc, Label: "Melhor Avaliação"}, opts[2])
	assert.Equal(t, SortOption{Key: tmdb.SortReleaseDateAsc, Label: "Mais Antigo"}, opts[5])
	for _, o := range opts {
		assert.NotEmpty(t, o.Label, o.Key)
	}
}

func TestYearOptions(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	years := YearOptions(now, 30)
	require.Len(t, years, 30)
	assert.Equal(t, "2026", years[0])
	assert.Equal(t, "1997", years[29])

	assert.Empty(t, YearOptions(now, 0))
}
