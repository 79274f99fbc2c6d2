package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/sourcegraph/conc"

	"github.com/handsomefox/movie-discovery/internal/catalog"
	"github.com/handsomefox/movie-discovery/internal/env"
	"github.com/handsomefox/movie-discovery/internal/favorites"
	"github.com/handsomefox/movie-discovery/internal/handlers"
	"github.com/handsomefox/movie-discovery/internal/logger"
	"github.com/handsomefox/movie-discovery/internal/store"
	"github.com/handsomefox/movie-discovery/internal/tmdb"
	"github.com/handsomefox/movie-discovery/internal/web"

	_ "github.com/joho/godotenv/autoload"
)

const (
	defaultPort   = "8080"
	defaultDBPath = "data/movie-discovery.db"
	warmupTimeout = 15 * time.Second
)

func main() {
	log := logger.New(env.Current, logger.ParseLevel(os.Getenv("LOG_LEVEL"), slog.LevelDebug))
	slog.SetDefault(log)
	if err := run(log); err != nil {
		fmt.Println("Error:", err.Error())
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	apiKey := env.String("TMDB_API_KEY", "")
	if apiKey == "" {
		return errors.New("TMDB_API_KEY is required")
	}
	qps, ok := env.Int("TMDB_QPS", 0)
	if !ok {
		log.Warn("ignoring malformed TMDB_QPS", slog.String("value", os.Getenv("TMDB_QPS")))
	}

	client, err := tmdb.New(tmdb.Config{
		APIKey:    apiKey,
		ReadToken: env.String("TMDB_API_READ_TOKEN", ""),
		BaseURL:   env.String("TMDB_BASE_URL", tmdb.DefaultBaseURL),
		ImageBase: env.String("TMDB_IMAGE_BASE", tmdb.DefaultImageBase),
		Language:  env.String("TMDB_LANGUAGE", tmdb.DefaultLanguage),
		QPS:       qps,
	})
	if err != nil {
		return fmt.Errorf("failed to init tmdb client: %w", err)
	}

	st, err := store.Open(env.String("DB_PATH", defaultDBPath))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Failed to close DB", logger.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	favs, err := favorites.Open(ctx, st, favorites.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	controller := catalog.NewController(client, log)
	genres := catalog.NewGenreCatalog(client, log)
	warmup(ctx, log, controller, genres)

	app, err := handlers.New(&handlers.Config{
		Catalog:   controller,
		Genres:    genres,
		Viewer:    catalog.NewViewer(client, log),
		Favorites: favs,
		Images:    client,
		Log:       log,
	})
	if err != nil {
		return fmt.Errorf("failed to init handlers: %w", err)
	}

	dist, err := web.Dist()
	if err != nil {
		return fmt.Errorf("failed to load web assets: %w", err)
	}
	spa, err := handlers.SPA(dist)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(log, &httplog.Options{
		Level:         slog.LevelInfo,
		Schema:        httplog.SchemaECS,
		RecoverPanics: true,
	}))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: env.List("CORS_ORIGINS", []string{"http://localhost:5173"}),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Route("/api", app.RegisterRoutes)
	r.Handle("/*", spa)

	addr := ":" + env.String("PORT", defaultPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", addr), slog.String("env", string(env.Current)))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// warmup loads the first catalog page and the genre list in parallel. Both
// failures are logged by their owners and are retried on demand.
func warmup(ctx context.Context, log *slog.Logger, controller *catalog.Controller, genres *catalog.GenreCatalog) {
	ctx, cancel := context.WithTimeout(ctx, warmupTimeout)
	defer cancel()

	var wg conc.WaitGroup
	wg.Go(func() { controller.Refetch(ctx) })
	wg.Go(func() { _, _ = genres.Load(ctx) })
	wg.Wait()

	state := controller.State()
	log.Info("catalog warmed up",
		slog.Int("movies", len(state.Movies)),
		slog.Int("total_pages", state.TotalPages),
		slog.Int("genres", len(genres.List())),
	)
}
