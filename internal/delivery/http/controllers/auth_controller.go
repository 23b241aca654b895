package controllers

import (
	"log/slog"
	"net/http"
	"time"

	h "conferencedirectory/internal/delivery/http/helpers"
	"conferencedirectory/internal/delivery/http/middleware"
	"conferencedirectory/internal/domain"
)

// SignUpRequest is the request body for POST /auth/signup
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SignInRequest is the request body for POST /auth/signin
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (s *SignInRequest) Validate() *domain.ValidationError {
	ve := domain.NewValidationError("")
	requireText(ve, "email", s.Email)
	if s.Password == "" {
		ve.AddField("password", "required")
	}
	return validationResult(ve)
}

// SignUpResponse is the data of POST /auth/signup
type SignUpResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignInResponse is the data of POST /auth/signin. Token is also set as the session cookie.
type SignInResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type AuthController struct {
	Logger     *slog.Logger
	Service    domain.AuthService
	SessionTTL time.Duration
	// SecureCookie marks the session cookie Secure; set in production.
	SecureCookie bool
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService, sessionTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{
		Logger:       logger,
		Service:      svc,
		SessionTTL:   sessionTTL,
		SecureCookie: secureCookie,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create a new user with email, password (at least 8 characters) and optional name. Password is stored hashed.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 200 {object} helpers.APIResponse{data=controllers.SignUpResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SignUp(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, SignUpResponse{ID: user.ID, Email: user.Email})
}

// SignIn godoc
// @Summary Sign in
// @Description Authenticate with email and password. Returns a session JWT and sets it as the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignInRequest true "Credentials"
// @Success 200 {object} helpers.APIResponse{data=controllers.SignInResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signin [post]
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.WriteServiceError(w, r, c.Logger, err)
		return
	}
	http.SetCookie(w, c.sessionCookie(token, int(c.SessionTTL.Seconds())))
	h.WriteJSONSuccess(w, http.StatusOK, SignInResponse{ID: user.ID, Email: user.Email, Token: token})
}

// SignOut godoc
// @Summary Sign out
// @Description Clears the session cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} helpers.APIResponse "data is null"
// @Router /auth/signout [post]
func (c *AuthController) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, c.sessionCookie("", -1))
	h.WriteJSONSuccess(w, http.StatusOK, nil)
}

func (c *AuthController) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
