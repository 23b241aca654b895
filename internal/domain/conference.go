package domain

import (
	"context"
	"math"
	"time"
)

// MaxAttendeesLimit is the largest attendee cap the INTEGER column holds.
const MaxAttendeesLimit = math.MaxInt32

// Conference is a conference row. It is owned by exactly one user.
// swagger:model Conference
type Conference struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"ownerId"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	Price        Money     `json:"price" swaggertype:"number"`
	MaxAttendees int       `json:"maxAttendees"`
	IsFeatured   bool      `json:"isFeatured"`
	ImageURL     *string   `json:"imageUrl"`
}

// NewConference returns a new Conference with the given fields. ID is set by the repository on create.
func NewConference(ownerID, name, description, location string, date time.Time, price Money, maxAttendees int, isFeatured bool, imageURL *string) *Conference {
	return &Conference{
		OwnerID:      ownerID,
		Name:         name,
		Description:  description,
		Date:         date,
		Location:     location,
		Price:        price,
		MaxAttendees: maxAttendees,
		IsFeatured:   isFeatured,
		ImageURL:     imageURL,
	}
}

// ConferenceView is the client-facing aggregate: the conference plus its
// speakers and tag names, each listed once.
// swagger:model ConferenceView
type ConferenceView struct {
	Conference
	Speakers []Speaker `json:"speakers"`
	Tags     []string  `json:"tags"`
}

// ConferenceFilter narrows a conference listing. Nil fields and an empty Tags
// slice are not applied; all applied fields are combined with AND.
type ConferenceFilter struct {
	ID        *string
	Name      *string
	StartDate *time.Time
	EndDate   *time.Time
	PriceFrom *Money
	PriceTo   *Money
	// Tags matches conferences having at least one of the names.
	Tags    []string
	OwnerID *string
}

// ConferencePage is one page of a conference listing.
type ConferencePage struct {
	Conferences []*ConferenceView
	Total       int
	Pagination  PaginationParams
}

// ConferenceUpdate carries the fields of a partial update. Nil fields are unchanged.
type ConferenceUpdate struct {
	Name         *string
	Description  *string
	Date         *time.Time
	Location     *string
	Price        *Money
	MaxAttendees *int
	IsFeatured   *bool
	ImageURL     *string
}

// IsEmpty reports whether no field is set.
func (u ConferenceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Date == nil && u.Location == nil &&
		u.Price == nil && u.MaxAttendees == nil && u.IsFeatured == nil && u.ImageURL == nil
}

// ConferenceRepository defines storage for conferences and their aggregated views.
type ConferenceRepository interface {
	Create(ctx context.Context, c *Conference) error
	// GetByID returns the bare conference row, or ErrConferenceNotFound.
	GetByID(ctx context.Context, id string) (*Conference, error)
	// List returns the page of views matching filter, ordered by date descending.
	List(ctx context.Context, filter ConferenceFilter, page PaginationParams) ([]*ConferenceView, error)
	// Count returns how many conferences match filter.
	Count(ctx context.Context, filter ConferenceFilter) (int, error)
	// Update applies the set fields. Returns ErrConferenceNotFound if no row matched.
	Update(ctx context.Context, id string, upd ConferenceUpdate) error
	// Delete removes the conference and, by cascade, its speakers, tag links and memberships.
	Delete(ctx context.Context, id string) error
}

// TagChanges reports how many conference-tag links a reconciliation inserted and deleted.
// swagger:model TagChanges
type TagChanges struct {
	AddCount    int64 `json:"addCount"`
	DeleteCount int64 `json:"deleteCount"`
}

// ConferenceService defines the business logic for browsing and managing conferences.
// Every mutating method checks that userID owns the conference.
type ConferenceService interface {
	ListConferences(ctx context.Context, filter ConferenceFilter, page PaginationParams) (*ConferencePage, error)
	GetConference(ctx context.Context, id string) (*ConferenceView, error)
	CreateConference(ctx context.Context, c *Conference) (*ConferenceView, error)
	UpdateConference(ctx context.Context, conferenceID, userID string, upd ConferenceUpdate) error
	DeleteConference(ctx context.Context, conferenceID, userID string) error
	SetConferenceTags(ctx context.Context, conferenceID, userID string, tags []string) (*TagChanges, error)
}
