package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/handsomefox/movie-discovery/internal/logger"
	"github.com/handsomefox/movie-discovery/internal/tmdb"
)

type HandlerWithErr func(w http.ResponseWriter, r *http.Request) error

type Error struct {
	Status  int
	Message string
}

func (e Error) Error() string {
	return e.Message + " code=" + strconv.FormatInt(int64(e.Status), 10)
}

type errorResponse struct {
	Error string `json:"error"`
}

// Adapt turns a HandlerWithErr into an http.Handler. *Error values keep their
// status, gateway failures become 502 and anything else is a 500.
func Adapt(h HandlerWithErr) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var statusErr *Error
		switch {
		case errors.As(err, &statusErr):
			writeJSON(w, statusErr.Status, &errorResponse{Error: statusErr.Message})
		case errors.Is(err, tmdb.ErrRequestFailed):
			writeJSON(w, http.StatusBadGateway, &errorResponse{Error: err.Error()})
		default:
			slog.ErrorContext(r.Context(), "request failed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				logger.Error(err),
			)
			writeJSON(w, http.StatusInternalServerError, &errorResponse{Error: err.Error()})
		}
	})
}
