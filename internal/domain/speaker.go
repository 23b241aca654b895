package domain

import "context"

// Speaker represents a speaker at a conference. ConferenceID is omitted inside
// a ConferenceView.
// swagger:model Speaker
type Speaker struct {
	ID           string  `json:"id"`
	ConferenceID string  `json:"conferenceId,omitempty"`
	Name         string  `json:"name"`
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	Bio          string  `json:"bio"`
	AvatarURL    *string `json:"avatarUrl"`
}

// NewSpeaker returns a new Speaker with the given fields. ID is set by the repository on create.
func NewSpeaker(conferenceID, name, title, company, bio string, avatarURL *string) *Speaker {
	return &Speaker{
		ConferenceID: conferenceID,
		Name:         name,
		Title:        title,
		Company:      company,
		Bio:          bio,
		AvatarURL:    avatarURL,
	}
}

// SpeakerUpdate carries the fields of a partial speaker update.
type SpeakerUpdate struct {
	Name      *string
	Title     *string
	Company   *string
	Bio       *string
	AvatarURL *string
}

// IsEmpty reports whether no field is set.
func (u SpeakerUpdate) IsEmpty() bool {
	return u.Name == nil && u.Title == nil && u.Company == nil && u.Bio == nil && u.AvatarURL == nil
}

// SpeakerRepository defines storage for conference speakers. Every lookup is
// scoped to the conference so a speaker id from another conference never matches.
type SpeakerRepository interface {
	Create(ctx context.Context, s *Speaker) error
	// Update returns the updated row, or ErrSpeakerNotFound.
	Update(ctx context.Context, conferenceID, speakerID string, upd SpeakerUpdate) (*Speaker, error)
	// Delete returns ErrSpeakerNotFound when no row matched.
	Delete(ctx context.Context, conferenceID, speakerID string) error
}

// SpeakerService manages speakers on behalf of the conference owner.
type SpeakerService interface {
	AddSpeaker(ctx context.Context, userID string, s *Speaker) (*Speaker, error)
	UpdateSpeaker(ctx context.Context, conferenceID, speakerID, userID string, upd SpeakerUpdate) (*Speaker, error)
	DeleteSpeaker(ctx context.Context, conferenceID, speakerID, userID string) error
}
