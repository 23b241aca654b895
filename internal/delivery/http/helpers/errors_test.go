package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencedirectory/internal/domain"
)

func TestWriteServiceError(t *testing.T) {
	verr := domain.NewValidationError("")
	verr.AddForm("no fields to update")

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"validation", fmt.Errorf("update: %w", verr), http.StatusBadRequest, ErrCodeBadRequest, "invalid properties"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, ErrCodeBadRequest, "invalid email or password"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required"},
		{"forbidden", fmt.Errorf("update conference: %w", domain.ErrForbidden), http.StatusForbidden, ErrCodeForbidden, "forbidden"},
		{"conference not found", fmt.Errorf("x: %w", domain.ErrConferenceNotFound), http.StatusNotFound, ErrCodeNotFound, "conference not found"},
		{"speaker not found", domain.ErrSpeakerNotFound, http.StatusNotFound, ErrCodeNotFound, "speaker not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, ErrCodeNotFound, "user not found"},
		{"duplicate email", fmt.Errorf("sign up: %w", domain.ErrDuplicateEmail), http.StatusConflict, ErrCodeConflict, "email already registered"},
		{"conflict", domain.ErrConflict, http.StatusConflict, ErrCodeConflict, "conflict"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, ErrCodeInternalError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))
			req := httptest.NewRequest(http.MethodPatch, "/conferences/x", nil)
			rr := httptest.NewRecorder()

			WriteServiceError(rr, req, logger, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			assert.Equal(t, tt.wantMessage, envelope.Error.Message)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.Contains(t, logs.String(), "connection refused")
				assert.NotContains(t, envelope.Error.Message, "pq")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}
