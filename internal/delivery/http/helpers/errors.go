package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"conferencedirectory/internal/domain"
)

// WriteServiceError maps a service error onto the response envelope. Errors
// that match no domain sentinel are logged and reported as 500 without their text.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid email or password")
	case errors.Is(err, domain.ErrUnknownMembershipKind):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "unknown membership kind")
	case errors.Is(err, domain.ErrUnauthorized):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrConferenceNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "conference not found")
	case errors.Is(err, domain.ErrSpeakerNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "speaker not found")
	case errors.Is(err, domain.ErrUserNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "email already registered")
	case errors.Is(err, domain.ErrConflict):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "conflict")
	default:
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal error")
	}
}
