package controllers

import (
	"log/slog"
	"net/http"

	"conferencedirectory/internal/delivery/http/helpers"
	"conferencedirectory/internal/delivery/http/middleware"
	"conferencedirectory/internal/domain"
)

// JoinedConferencesResponse is the data of GET /me/joinedConferences.
type JoinedConferencesResponse struct {
	JoinedConferences []domain.ConferenceRef `json:"joinedConferences"`
}

// FavoriteConferencesResponse is the data of GET /me/favoriteConferences.
type FavoriteConferencesResponse struct {
	FavoriteConferences []domain.ConferenceRef `json:"favoriteConferences"`
}

// MembershipController serves join and favorite toggling for the caller.
type MembershipController struct {
	Logger  *slog.Logger
	Service domain.MembershipService
}

func NewMembershipController(logger *slog.Logger, svc domain.MembershipService) *MembershipController {
	return &MembershipController{
		Logger:  logger,
		Service: svc,
	}
}

// JoinConference godoc
// @Summary Join a conference
// @Description Idempotent. A first join sends a confirmation email.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/join [post]
func (c *MembershipController) JoinConference(w http.ResponseWriter, r *http.Request) {
	c.add(w, r, domain.MembershipJoin)
}

// LeaveConference godoc
// @Summary Leave a conference
// @Description Idempotent; leaving a conference that was never joined succeeds.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/join [delete]
func (c *MembershipController) LeaveConference(w http.ResponseWriter, r *http.Request) {
	c.remove(w, r, domain.MembershipJoin)
}

// FavoriteConference godoc
// @Summary Favorite a conference
// @Description Idempotent.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/favorite [post]
func (c *MembershipController) FavoriteConference(w http.ResponseWriter, r *http.Request) {
	c.add(w, r, domain.MembershipFavorite)
}

// UnfavoriteConference godoc
// @Summary Unfavorite a conference
// @Description Idempotent.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/favorite [delete]
func (c *MembershipController) UnfavoriteConference(w http.ResponseWriter, r *http.Request) {
	c.remove(w, r, domain.MembershipFavorite)
}

func (c *MembershipController) add(w http.ResponseWriter, r *http.Request, kind domain.MembershipKind) {
	conferenceID, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Service.AddMembership(r.Context(), kind, principal, conferenceID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

func (c *MembershipController) remove(w http.ResponseWriter, r *http.Request, kind domain.MembershipKind) {
	conferenceID, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Service.RemoveMembership(r.Context(), kind, principal, conferenceID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// ListJoined godoc
// @Summary List joined conferences
// @Description IDs of the conferences the caller joined, by conference date descending.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse{data=controllers.JoinedConferencesResponse}
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/joinedConferences [get]
func (c *MembershipController) ListJoined(w http.ResponseWriter, r *http.Request) {
	refs, ok := c.list(w, r, domain.MembershipJoin)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, JoinedConferencesResponse{JoinedConferences: refs})
}

// ListFavorites godoc
// @Summary List favorite conferences
// @Description IDs of the conferences the caller favorited, by conference date descending.
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse{data=controllers.FavoriteConferencesResponse}
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /me/favoriteConferences [get]
func (c *MembershipController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	refs, ok := c.list(w, r, domain.MembershipFavorite)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FavoriteConferencesResponse{FavoriteConferences: refs})
}

func (c *MembershipController) list(w http.ResponseWriter, r *http.Request, kind domain.MembershipKind) ([]domain.ConferenceRef, bool) {
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return nil, false
	}
	refs, err := c.Service.ListMemberships(r.Context(), kind, principal.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return nil, false
	}
	return refs, true
}
