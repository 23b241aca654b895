package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "conferencedirectory/docs"
	"conferencedirectory/internal/delivery/http/controllers"
	"conferencedirectory/internal/delivery/http/helpers"
	"conferencedirectory/internal/delivery/http/middleware"
	"conferencedirectory/internal/domain"
)

// RouterDeps holds the controllers and cross-cutting pieces the router wires together.
type RouterDeps struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AllowedOrigins []string

	Conferences *controllers.ConferenceController
	Speakers    *controllers.SpeakerController
	Memberships *controllers.MembershipController
	Auth        *controllers.AuthController
}

// NewRouter initializes the HTTP router with all application routes. Requests
// pass through logging, CORS and principal resolution before reaching a handler.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Conferences
	mux.HandleFunc("GET /conferences", d.Conferences.ListConferences)
	mux.HandleFunc("POST /conferences", d.Conferences.CreateConference)
	mux.HandleFunc("GET /conferences/{id}", d.Conferences.GetConference)
	mux.HandleFunc("PATCH /conferences/{id}", d.Conferences.UpdateConference)
	mux.HandleFunc("DELETE /conferences/{id}", d.Conferences.DeleteConference)
	mux.HandleFunc("PUT /conferences/{id}/tags", d.Conferences.SetConferenceTags)

	// Speakers
	mux.HandleFunc("POST /conferences/{id}/speaker", d.Speakers.CreateSpeaker)
	mux.HandleFunc("PATCH /conferences/{id}/speaker/{speakerId}", d.Speakers.UpdateSpeaker)
	mux.HandleFunc("DELETE /conferences/{id}/speaker/{speakerId}", d.Speakers.DeleteSpeaker)

	// Memberships
	mux.HandleFunc("POST /conferences/{id}/join", d.Memberships.JoinConference)
	mux.HandleFunc("DELETE /conferences/{id}/join", d.Memberships.LeaveConference)
	mux.HandleFunc("POST /conferences/{id}/favorite", d.Memberships.FavoriteConference)
	mux.HandleFunc("DELETE /conferences/{id}/favorite", d.Memberships.UnfavoriteConference)
	mux.HandleFunc("GET /me/joinedConferences", d.Memberships.ListJoined)
	mux.HandleFunc("GET /me/favoriteConferences", d.Memberships.ListFavorites)

	// Auth
	mux.HandleFunc("POST /auth/signup", d.Auth.SignUp)
	mux.HandleFunc("POST /auth/signin", d.Auth.SignIn)
	mux.HandleFunc("POST /auth/signout", d.Auth.SignOut)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "route not found")
	})

	var handler http.Handler = mux
	handler = middleware.Authenticate(d.Verifier, d.Logger, handler)
	handler = middleware.CORS(d.AllowedOrigins, handler)
	handler = middleware.Logging(d.Logger, handler)
	return handler
}
