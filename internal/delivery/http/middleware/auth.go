package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "conferencedirectory/internal/delivery/http/helpers"
	"conferencedirectory/internal/domain"
)

// SessionCookieName is the cookie set on sign-in and read as a fallback to the Authorization header.
const SessionCookieName = "session"

type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context carrying p. Used by Authenticate.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the caller resolved by Authenticate. Requests
// without a valid session yield the anonymous principal.
func PrincipalFromContext(ctx context.Context) domain.Principal {
	p, _ := ctx.Value(principalKey).(domain.Principal)
	return p
}

// sessionToken returns the Bearer token, or the session cookie when no
// Authorization header is sent.
func sessionToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		const prefix = "Bearer "
		if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
			return strings.TrimSpace(auth[len(prefix):])
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// Authenticate resolves the request's principal once and stores it in the
// request context. A missing or invalid token is not an error: the request
// continues anonymously and handlers that need a user call RequirePrincipal.
func Authenticate(verifier domain.TokenVerifier, logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p domain.Principal
		if token := sessionToken(r); token != "" {
			verified, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "ignoring invalid session token", "err", err)
			} else {
				p = verified
			}
		}
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// RequirePrincipal returns the authenticated caller. If there is none it
// responds with 401 and returns false; callers should return immediately.
func RequirePrincipal(w http.ResponseWriter, r *http.Request) (domain.Principal, bool) {
	p := PrincipalFromContext(r.Context())
	if !p.IsAuthenticated() {
		h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "authentication required")
		return domain.Principal{}, false
	}
	return p, true
}
