package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"conferencedirectory/internal/delivery/http/helpers"
	"conferencedirectory/internal/delivery/http/middleware"
	"conferencedirectory/internal/domain"
)

// dateOnly is the YYYY-MM-DD form accepted by the startDate and endDate filters.
const dateOnly = "2006-01-02"

// CreateConferenceRequest is the request body for POST /conferences.
type CreateConferenceRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Date         string        `json:"date" example:"2025-06-01T09:00:00Z"`
	Location     string        `json:"location"`
	Price        *domain.Money `json:"price" swaggertype:"number" example:"50.00"`
	MaxAttendees *int          `json:"maxAttendees"`
	IsFeatured   bool          `json:"isFeatured"`
	ImageURL     *string       `json:"imageUrl"`

	date time.Time
}

// Validate implements helpers.Validator.
func (c *CreateConferenceRequest) Validate() *domain.ValidationError {
	ve := domain.NewValidationError("")
	requireText(ve, "name", c.Name)
	requireText(ve, "description", c.Description)
	requireText(ve, "location", c.Location)
	if c.Date == "" {
		ve.AddField("date", "required")
	} else if d, ok := parseDateTime(ve, "date", c.Date); ok {
		c.date = d
	}
	if c.Price == nil {
		ve.AddField("price", "required")
	} else {
		checkPrice(ve, *c.Price)
	}
	if c.MaxAttendees == nil {
		ve.AddField("maxAttendees", "required")
	} else {
		checkMaxAttendees(ve, *c.MaxAttendees)
	}
	return validationResult(ve)
}

// UpdateConferenceRequest is the request body for PATCH /conferences/{id}. All fields
// optional; omitted fields are unchanged.
type UpdateConferenceRequest struct {
	Name         *string       `json:"name"`
	Description  *string       `json:"description"`
	Date         *string       `json:"date" example:"2025-06-01T09:00:00Z"`
	Location     *string       `json:"location"`
	Price        *domain.Money `json:"price" swaggertype:"number" example:"50.00"`
	MaxAttendees *int          `json:"maxAttendees"`
	IsFeatured   *bool         `json:"isFeatured"`
	ImageURL     *string       `json:"imageUrl"`

	date *time.Time
}

// Validate implements helpers.Validator. Present fields obey the create rules.
func (u *UpdateConferenceRequest) Validate() *domain.ValidationError {
	ve := domain.NewValidationError("")
	if u.Name != nil {
		requireText(ve, "name", *u.Name)
	}
	if u.Description != nil {
		requireText(ve, "description", *u.Description)
	}
	if u.Location != nil {
		requireText(ve, "location", *u.Location)
	}
	if u.Date != nil {
		if d, ok := parseDateTime(ve, "date", *u.Date); ok {
			u.date = &d
		}
	}
	if u.Price != nil {
		checkPrice(ve, *u.Price)
	}
	if u.MaxAttendees != nil {
		checkMaxAttendees(ve, *u.MaxAttendees)
	}
	return validationResult(ve)
}

func (u *UpdateConferenceRequest) update() domain.ConferenceUpdate {
	return domain.ConferenceUpdate{
		Name:         u.Name,
		Description:  u.Description,
		Date:         u.date,
		Location:     u.Location,
		Price:        u.Price,
		MaxAttendees: u.MaxAttendees,
		IsFeatured:   u.IsFeatured,
		ImageURL:     u.ImageURL,
	}
}

// SetTagsRequest is the request body for PUT /conferences/{id}/tags.
type SetTagsRequest struct {
	Tags []string `json:"tags"`
}

// Validate implements helpers.Validator.
func (s *SetTagsRequest) Validate() *domain.ValidationError {
	ve := domain.NewValidationError("")
	if len(s.Tags) == 0 {
		ve.AddField("tags", "at least one tag is required")
	}
	return validationResult(ve)
}

// ListConferencesResponse is the data of GET /conferences.
type ListConferencesResponse struct {
	Count       int                      `json:"count"`
	Total       int                      `json:"total"`
	Page        int                      `json:"page"`
	PageSize    int                      `json:"pageSize"`
	Conferences []*domain.ConferenceView `json:"conferences"`
}

// GetConferenceResponse is the data of GET /conferences/{id}. Conference is null when no conference has that id.
type GetConferenceResponse struct {
	Conference *domain.ConferenceView `json:"conference"`
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// ListConferences godoc
// @Summary List conferences
// @Description Filtered, paginated conference listing ordered by date descending. Each conference carries its speakers and tags.
// @Tags conferences
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size (max 100)" default(20)
// @Param name query string false "Case-insensitive substring of the name"
// @Param startDate query string false "Earliest date, RFC 3339 or YYYY-MM-DD"
// @Param endDate query string false "Latest date, RFC 3339 or YYYY-MM-DD (whole day)"
// @Param priceFrom query number false "Minimum price"
// @Param priceTo query number false "Maximum price"
// @Param tags query string false "Comma-separated tag names; any match"
// @Param ownerId query string false "Owner user ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=controllers.ListConferencesResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [get]
func (c *ConferenceController) ListConferences(w http.ResponseWriter, r *http.Request) {
	filter, ve := parseConferenceFilter(r)
	if ve != nil {
		helpers.WriteValidationError(w, ve)
		return
	}
	page, err := c.Service.ListConferences(r.Context(), filter, helpers.ParsePagination(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListConferencesResponse{
		Count:       len(page.Conferences),
		Total:       page.Total,
		Page:        page.Pagination.Page,
		PageSize:    page.Pagination.PageSize,
		Conferences: page.Conferences,
	})
}

// GetConference godoc
// @Summary Get a conference
// @Description Returns the conference with its speakers and tags, or null when it does not exist.
// @Tags conferences
// @Produce json
// @Param id path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse{data=controllers.GetConferenceResponse}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	view, err := c.Service.GetConference(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GetConferenceResponse{Conference: view})
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference owned by the caller.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateConferenceRequest true "Conference"
// @Success 200 {object} helpers.APIResponse{data=domain.ConferenceView}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	conf := domain.NewConference(principal.UserID, req.Name, req.Description, req.Location, req.date, *req.Price, *req.MaxAttendees, req.IsFeatured, req.ImageURL)
	view, err := c.Service.CreateConference(r.Context(), conf)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Partially updates a conference. Only the owner may update it.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Param body body UpdateConferenceRequest true "Fields to update (at least one)"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id} [patch]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	if err := c.Service.UpdateConference(r.Context(), id, principal.UserID, req.update()); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// DeleteConference godoc
// @Summary Delete a conference
// @Description Deletes a conference with its speakers, tag links and memberships. Only the owner may delete it.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id} [delete]
func (c *ConferenceController) DeleteConference(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteConference(r.Context(), id, principal.UserID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

// SetConferenceTags godoc
// @Summary Replace the tags of a conference
// @Description Makes the conference's tag set equal to the given names, creating missing tags. Only the owner may set tags.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conference ID (UUID)"
// @Param body body SetTagsRequest true "Tag names"
// @Success 200 {object} helpers.APIResponse{data=domain.TagChanges}
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{id}/tags [put]
func (c *ConferenceController) SetConferenceTags(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathUUID(w, r, "id")
	if !ok {
		return
	}
	principal, ok := middleware.RequirePrincipal(w, r)
	if !ok {
		return
	}
	var req SetTagsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	changes, err := c.Service.SetConferenceTags(r.Context(), id, principal.UserID, req.Tags)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, changes)
}

// parseConferenceFilter reads the listing filters from the query string.
// Unparseable values are reported per field.
func parseConferenceFilter(r *http.Request) (domain.ConferenceFilter, *domain.ValidationError) {
	q := r.URL.Query()
	ve := domain.NewValidationError("")
	var f domain.ConferenceFilter

	if name := strings.TrimSpace(q.Get("name")); name != "" {
		f.Name = &name
	}
	if s := q.Get("startDate"); s != "" {
		if d, ok := parseFilterDate(s, false); ok {
			f.StartDate = &d
		} else {
			ve.AddField("startDate", "must be an RFC 3339 datetime or YYYY-MM-DD")
		}
	}
	if s := q.Get("endDate"); s != "" {
		if d, ok := parseFilterDate(s, true); ok {
			f.EndDate = &d
		} else {
			ve.AddField("endDate", "must be an RFC 3339 datetime or YYYY-MM-DD")
		}
	}
	f.PriceFrom = parseFilterPrice(ve, "priceFrom", q.Get("priceFrom"))
	f.PriceTo = parseFilterPrice(ve, "priceTo", q.Get("priceTo"))
	for _, t := range strings.Split(q.Get("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			f.Tags = append(f.Tags, t)
		}
	}
	if s := q.Get("ownerId"); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			owner := id.String()
			f.OwnerID = &owner
		} else {
			ve.AddField("ownerId", "must be a UUID")
		}
	}
	if ve.HasErrors() {
		return domain.ConferenceFilter{}, ve
	}
	return f, nil
}

// parseFilterDate accepts RFC 3339 or a bare date. A bare end date is moved
// to the last representable instant of that UTC day.
func parseFilterDate(s string, endOfDay bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Microsecond)
	}
	return t, true
}

func parseFilterPrice(ve *domain.ValidationError, field, s string) *domain.Money {
	if s == "" {
		return nil
	}
	m, err := domain.ParseMoney(s)
	if err != nil {
		ve.AddField(field, err.Error())
		return nil
	}
	return &m
}

func requireText(ve *domain.ValidationError, field, v string) {
	if strings.TrimSpace(v) == "" {
		ve.AddField(field, "required")
	}
}

func parseDateTime(ve *domain.ValidationError, field, s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		ve.AddField(field, "must be an RFC 3339 datetime")
		return time.Time{}, false
	}
	return t.UTC(), true
}

func checkPrice(ve *domain.ValidationError, m domain.Money) {
	switch {
	case m < 0:
		ve.AddField("price", "must be greater than or equal to 0")
	case m > domain.MaxPrice:
		ve.AddField("price", "must be less than or equal to "+domain.MaxPrice.String())
	}
}

func checkMaxAttendees(ve *domain.ValidationError, n int) {
	switch {
	case n <= 0:
		ve.AddField("maxAttendees", "must be greater than 0")
	case n > domain.MaxAttendeesLimit:
		ve.AddField("maxAttendees", "must be less than or equal to "+strconv.Itoa(domain.MaxAttendeesLimit))
	}
}

// validationResult returns nil when ve recorded nothing, so Validate can return it directly.
func validationResult(ve *domain.ValidationError) *domain.ValidationError {
	if !ve.HasErrors() {
		return nil
	}
	return ve
}
