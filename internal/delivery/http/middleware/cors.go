package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS adds credentialed CORS headers for allowed origins and answers
// preflight requests with 204. Origins are compared without a trailing slash.
// With no allowed origins the handler is returned unchanged.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	var origins []string
	for _, o := range allowedOrigins {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return next
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:       []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials:     true,
		MaxAge:               86400,
		OptionsSuccessStatus: http.StatusNoContent,
	})(next)
}
