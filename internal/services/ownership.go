package services

import (
	"context"
	"errors"
	"fmt"

	"conferencedirectory/internal/domain"
)

// authorizeOwner loads the conference and checks that userID owns it.
// A missing conference is ErrConferenceNotFound; one owned by someone else is ErrForbidden.
func authorizeOwner(ctx context.Context, repo domain.ConferenceRepository, conferenceID, userID string) (*domain.Conference, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	c, err := repo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrConferenceNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if c.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}
