package controllers

import (
	"log/slog"
	"net/http"

	"conferencedirectory/internal/delivery/http/helpers"
	"conferencedirectory/internal/delivery/http/middleware"
	"conferencedirectory/internal/domain"
)

// CreateSpeakerRequest is the request body for POST /conferences/{id}/speaker.
type CreateSpeakerRequest struct {
	Name      string  `json:"name"`
	Title     string  `json:"title"`
	Company   string  `json:"company"`
	Bio       string  `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

// Validate implements helpers.Validator.
func (s *CreateSpeakerRequest) Validate() *domain.ValidationError {
	ve := domain.NewValidationError("")
	requireText(ve, "name", s.Name)
	requireText(ve, "title", s.Title)
	requireText(ve, "company", s.Company)
	requireText(ve, "bio", s.Bio)
	return validationResult(ve)
}

// UpdateSpeakerRequest is the request body for PATCH /conferences/{id}/speaker/{speakerId}.
type UpdateSpeakerRequest struct {
	Name      *string `json:"name"`
	Title     *string `json:"title"`
	Company   *string `json:"company"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

// Validate implements helpers.Validator.
func (s *UpdateSpeakerRequest) Validate() *domain.ValidationError {
	ve := domain.NewValidationError("")
	for field, v := range map[string]*string{"name": s.Name, "title": s.Title, "company": s.Company, "bio": s.Bio} {
		if v != nil {
			requireText(ve, field, *v)
		}
	}
	return validationResult(ve)
}

// UpdateSpeakerResponse is the data of PATCH /conferences/{id}/speaker/{speakerId}.
type UpdateSpeakerResponse struct {
	Speaker *domain.Speaker `json:"speaker"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSpeaker godoc
// @Summary Add a speaker
// @Description Adds a speaker to a conference. Only the conference owner may add speakers.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Param body body CreateSpeakerRequest true "Speaker"
// @Success 200 {object} helpers.APIResponse{data=domain.Speaker}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/speaker [post]
func (c *SpeakerController) CreateSpeaker(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	var req CreateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sp := domain.NewSpeaker(conferenceID, req.Name, req.Title, req.Company, req.Bio, req.AvatarURL)
	created, err := c.Service.AddSpeaker(r.Context(), principal.UserID, sp)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, created)
}

// UpdateSpeaker godoc
// @Summary Update a speaker
// @Description Partially updates a speaker of a conference. Only the conference owner may update speakers.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Param speakerId path string true "Speaker ID (UUID)"
// @Param body body UpdateSpeakerRequest true "Fields to update (at least one)"
// @Success 200 {object} helpers.APIResponse{data=controllers.UpdateSpeakerResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/speaker/{speakerId} [patch]
func (c *SpeakerController) UpdateSpeaker(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	speakerID, ok := helpers.PathUUID(w, r, "speakerId")
	if !ok {
		return
	}
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	var req UpdateSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.SpeakerUpdate{Name: req.Name, Title: req.Title, Company: req.Company, Bio: req.Bio, AvatarURL: req.AvatarURL}
	updated, err := c.Service.UpdateSpeaker(r.Context(), conferenceID, speakerID, principal.UserID, upd)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, UpdateSpeakerResponse{Speaker: updated})
}

// DeleteSpeaker godoc
// @Summary Remove a speaker
// @Description Removes a speaker from a conference. Only the conference owner may remove speakers.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Param speakerId path string true "Speaker ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/speaker/{speakerId} [delete]
func (c *SpeakerController) DeleteSpeaker(w http.ResponseWriter, r *http.Request) {
	conferenceID, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	speakerID, ok := helpers.PathUUID(w, r, "speakerId")
	if !ok {
		return
	}
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteSpeaker(r.Context(), conferenceID, speakerID, principal.UserID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}
