package http

import (
	"errors"
	"log/slog"
	"net/http"

	"confsched/internal/delivery/http/helpers"
	"confsched/internal/domain"
)

// writeDomainError maps domain sentinel errors to HTTP responses. Unknown
// errors become 500s and are logged; sentinel errors are the caller's fault
// or a retryable conflict and are not.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrImmutableVersion),
		errors.Is(err, domain.ErrDuplicateLabel),
		errors.Is(err, domain.ErrConcurrentModification):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
