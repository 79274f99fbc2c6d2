package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

type fakeDetails struct {
	details    map[int64]*tmdb.MovieDetails
	videos     map[int64][]tmdb.Video
	videosErr  error
	detailsErr error
	gate       chan struct{}
}

func (f *fakeDetails) MovieDetails(_ context.Context, id int64) (*tmdb.MovieDetails, error) {
	if f.gate != nil {
		<-f.gate
	}
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	d, ok := f.details[id]
	if !ok {
		return nil, &tmdb.OpError{Op: "fetch movie details", Status: 404}
	}
	return d, nil
}

func (f *fakeDetails) MovieVideos(_ context.Context, id int64) ([]tmdb.Video, error) {
	if f.videosErr != nil {
		return nil, f.videosErr
	}
	return f.videos[id], nil
}

func TestViewerOpen(t *testing.T) {
	src := &fakeDetails{
		details: map[int64]*tmdb.MovieDetails{155: {Movie: tmdb.Movie{ID: 155, Title: "The Dark Knight"}, Status: "Released"}},
		videos: map[int64][]tmdb.Video{155: {
			{Key: "teaser", Site: "YouTube", Type: "Teaser"},
			{Key: "EXeTwQWrcwY", Site: "YouTube", Type: "Trailer"},
		}},
	}
	v := NewViewer(src, discardLog)

	sel := v.Open(context.Background(), 155)
	require.NotNil(t, sel.Details)
	assert.Equal(t, "The Dark Knight", sel.Details.Title)
	require.NotNil(t, sel.Trailer)
	assert.Equal(t, "EXeTwQWrcwY", sel.Trailer.Key)
	assert.NoError(t, sel.DetailsErr)
	assert.NoError(t, sel.TrailerErr)
	assert.False(t, sel.Loading)

	current, ok := v.Current()
	require.True(t, ok)
	assert.Equal(t, sel, current)
}

func TestViewerNoTrailerIsNotAnError(t *testing.T) {
	src := &fakeDetails{
		details: map[int64]*tmdb.MovieDetails{1: {Movie: tmdb.Movie{ID: 1}}},
		videos:  map[int64][]tmdb.Video{1: {{Key: "x", Site: "Vimeo", Type: "Trailer"}}},
	}
	sel := NewViewer(src, discardLog).Open(context.Background(), 1)

	assert.Nil(t, sel.Trailer)
	assert.NoError(t, sel.TrailerErr)
	assert.NotNil(t, sel.Details)
}

func TestViewerStreamsFailIndependently(t *testing.T) {
	src := &fakeDetails{
		details:   map[int64]*tmdb.MovieDetails{1: {Movie: tmdb.Movie{ID: 1}}},
		videosErr: &tmdb.OpError{Op: "fetch movie videos", Err: errors.New("timeout")},
	}
	sel := NewViewer(src, discardLog).Open(context.Background(), 1)
	assert.NotNil(t, sel.Details)
	assert.Nil(t, sel.Trailer)
	require.ErrorIs(t, sel.TrailerErr, tmdb.ErrRequestFailed)

	sel = NewViewer(&fakeDetails{videos: map[int64][]tmdb.Video{2: {{Key: "k", Site: "YouTube", Type: "Trailer"}}}}, discardLog).
		Open(context.Background(), 2)
	assert.Nil(t, sel.Details)
	require.ErrorIs(t, sel.DetailsErr, tmdb.ErrRequestFailed)
	require.NotNil(t, sel.Trailer)
}

func TestViewerClose(t *testing.T) {
	src := &fakeDetails{details: map[int64]*tmdb.MovieDetails{1: {Movie: tmdb.Movie{ID: 1}}}}
	v := NewViewer(src, discardLog)

	_, ok := v.Current()
	assert.False(t, ok)

	v.Open(context.Background(), 1)
	v.Close()
	_, ok = v.Current()
	assert.False(t, ok)
}

func TestViewerCloseDropsInFlightResult(t *testing.T) {
	src := &fakeDetails{
		details: map[int64]*tmdb.MovieDetails{1: {Movie: tmdb.Movie{ID: 1}}},
		gate:    make(chan struct{}),
	}
	v := NewViewer(src, discardLog)

	done := make(chan Selection, 1)
	go func() { done <- v.Open(context.Background(), 1) }()

	require.Eventually(t, func() bool {
		cur, ok := v.Current()
		return ok && cur.Loading
	}, testTimeout, testTick)

	v.Close()
	close(src.gate)
	sel := <-done

	assert.NotNil(t, sel.Details)
	_, ok := v.Current()
	assert.False(t, ok)
}
