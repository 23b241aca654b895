package domain

import "context"

// MaxTagNameLength matches the tags.name column width.
const MaxTagNameLength = 50

// Tag represents a named tag shared across conferences.
// swagger:model Tag
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagRepository defines storage for tags and conference-tag links.
type TagRepository interface {
	// SetConferenceTags makes the conference's tag set equal to names, creating
	// missing tags first. It runs atomically and returns ErrConferenceNotFound
	// when the conference does not exist.
	SetConferenceTags(ctx context.Context, conferenceID string, names []string) (*TagChanges, error)
}
