// Package favorites keeps the user's favorited movies and mirrors every change
// to a durable key-value backend.
package favorites

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/handsomefox/movie-discovery/internal/logger"
	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

const DefaultKey = "movie-favorites"

// Backend is the durable storage the favorites list is written through.
// Delete reports sql.ErrNoRows for a key that was never written.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

type Store struct {
	backend Backend
	key     string
	log     *slog.Logger

	mu     sync.Mutex
	movies []tmdb.Movie
}

// Open loads the stored list. A missing or malformed value yields an empty
// list; only a backend read failure is returned.
func Open(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		log:     slog.Default(),
		movies:  []tmdb.Movie{},
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if !ok || raw == "" {
		return s, nil
	}

	var stored []tmdb.Movie
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Warn("discarding malformed favorites", slog.String("key", s.key), logger.Error(err))
		return s, nil
	}
	s.movies = dedupe(stored)
	return s, nil
}

func (s *Store) IsFavorite(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id) >= 0
}

// Add appends m unless a movie with the same id is already stored.
func (s *Store) Add(ctx context.Context, m tmdb.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(m.ID) >= 0 {
		return nil
	}
	next := append(slices.Clone(s.movies), m)
	return s.commitLocked(ctx, next)
}

func (s *Store) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(id) < 0 {
		return nil
	}
	next := slices.DeleteFunc(slices.Clone(s.movies), func(m tmdb.Movie) bool { return m.ID == id })
	return s.commitLocked(ctx, next)
}

// Toggle adds or removes m and reports whether it is a favorite afterwards.
// On error the membership is unchanged.
func (s *Store) Toggle(ctx context.Context, m tmdb.Movie) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(m.ID) >= 0 {
		next := slices.DeleteFunc(slices.Clone(s.movies), func(x tmdb.Movie) bool { return x.ID == m.ID })
		if err := s.commitLocked(ctx, next); err != nil {
			return true, err
		}
		return false, nil
	}

	next := append(slices.Clone(s.movies), m)
	if err := s.commitLocked(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops every favorite and the stored value.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("clear favorites: %w", err)
	}
	s.movies = []tmdb.Movie{}
	return nil
}

// List returns the favorites in insertion order.
func (s *Store) List() []tmdb.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.movies)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies)
}

func (s *Store) indexLocked(id int64) int {
	return slices.IndexFunc(s.movies, func(m tmdb.Movie) bool { return m.ID == id })
}

func (s *Store) commitLocked(ctx context.Context, next []tmdb.Movie) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	s.movies = next
	return nil
}

func dedupe(in []tmdb.Movie) []tmdb.Movie {
	seen := make(map[int64]struct{}, len(in))
	out := make([]tmdb.Movie, 0, len(in))
	for _, m := range in {
		if _, ok := seen[m.ID]; ok {
			continue
		}
		seen[m.ID] = struct{}{}
		out = append(out, m)
	}
	return out
}
