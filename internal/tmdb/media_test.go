package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageURL(t *testing.T) {
	client, err := New(Config{APIKey: "k"})
	require.NoError(t, err)

	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", client.PosterURL("/poster.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/backdrop.jpg", client.BackdropURL("/backdrop.jpg"))
	assert.Equal(t, "https://image.tmdb.org/t/p/w342/x.jpg", client.ImageURL("x.jpg", "w342"))
	assert.Empty(t, client.PosterURL(""))
	assert.Empty(t, client.BackdropURL("  "))
}

func TestImageURLCustomBase(t *testing.T) {
	client, err := New(Config{APIKey: "k", ImageBase: "https://cdn.example/t/p/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/t/p/w500/a.png", client.PosterURL("/a.png"))
}

func TestFindTrailer(t *testing.T) {
	_, ok := FindTrailer(nil)
	assert.False(t, ok)

	_, ok = FindTrailer([]Video{
		{Key: "a", Site: "YouTube", Type: "Teaser"},
		{Key: "b", Site: "Vimeo", Type: "Trailer"},
	})
	assert.False(t, ok)

	v, ok := FindTrailer([]Video{
		{Key: "a", Site: "YouTube", Type: "Teaser"},
		{Key: "b", Site: "YouTube", Type: "Trailer"},
		{Key: "c", Site: "YouTube", Type: "Trailer"},
	})
	require.True(t, ok)
	assert.Equal(t, "b", v.Key)
}

func TestTrailerURL(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", TrailerURL("abc"))
	assert.Empty(t, TrailerURL(""))
}

func TestYear(t *testing.T) {
	tests := map[string]string{
		"2008-07-16": "2008",
		"1999":       "1999",
		"":           "",
		"199":        "",
		"abcd-01-01": "",
	}
	for input, want := range tests {
		assert.Equal(t, want, Year(input), "Year(%q)", input)
	}
}

func TestSortKeys(t *testing.T) {
	keys := SortKeys()
	require.Len(t, keys, 6)
	assert.Equal(t, DefaultSort, keys[0])
	for _, k := range keys {
		assert.True(t, k.Valid())
	}
	assert.False(t, SortKey("title.asc").Valid())
	assert.False(t, SortKey("").Valid())

	keys[0] = "mutated"
	assert.Equal(t, DefaultSort, SortKeys()[0])
}
