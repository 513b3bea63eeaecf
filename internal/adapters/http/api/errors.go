package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/asana/internal/adapters/history"
	"github.com/okian/asana/internal/adapters/repository"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrBackpressure  = errors.New("backpressure")
	ErrLowConfidence = errors.New("classifier confidence below threshold")
	ErrUnavailable   = errors.New("service unavailable")
	ErrLimitExceeded = errors.New("limit exceeds maximum")
)

// NewKind reports a failure of op classified as kind.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind reports err as a failure of op classified as kind.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// Wrap prefixes err with op.
func Wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// writeStoreError maps leaderboard and history errors onto HTTP responses.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, history.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, repository.ErrInvalidLimit), errors.Is(err, history.ErrInvalidLimit), errors.Is(err, history.ErrMissingID):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, history.ErrDisabled), errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// writeLimitError answers a rejected ?limit parameter.
func writeLimitError(w http.ResponseWriter, op string, err error) {
	code := "bad_request"
	if errors.Is(err, ErrLimitExceeded) {
		code = "limit_exceeded"
	}
	writeError(w, http.StatusBadRequest, code, Wrap(op, err))
}
