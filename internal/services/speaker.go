package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencedirectory/internal/domain"
)

type speakerService struct {
	conferenceRepo domain.ConferenceRepository
	speakerRepo    domain.SpeakerRepository
	contextTimeout time.Duration
}

// NewSpeakerService returns a SpeakerService that checks conference ownership before every change.
func NewSpeakerService(conferenceRepo domain.ConferenceRepository, speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.SpeakerService {
	return &speakerService{
		conferenceRepo: conferenceRepo,
		speakerRepo:    speakerRepo,
		contextTimeout: timeout,
	}
}

func (s *speakerService) AddSpeaker(ctx context.Context, userID string, sp *domain.Speaker) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := authorizeOwner(ctx, s.conferenceRepo, sp.ConferenceID, userID); err != nil {
		return nil, err
	}
	if err := s.speakerRepo.Create(ctx, sp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrConferenceNotFound
		}
		return nil, fmt.Errorf("create speaker: %w", err)
	}
	return sp, nil
}

func (s *speakerService) UpdateSpeaker(ctx context.Context, conferenceID, speakerID, userID string, upd domain.SpeakerUpdate) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.IsEmpty() {
		ve := domain.NewValidationError("")
		ve.AddForm("no fields to update")
		return nil, ve
	}
	if _, err := authorizeOwner(ctx, s.conferenceRepo, conferenceID, userID); err != nil {
		return nil, err
	}
	updated, err := s.speakerRepo.Update(ctx, conferenceID, speakerID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSpeakerNotFound
		}
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	return updated, nil
}

func (s *speakerService) DeleteSpeaker(ctx context.Context, conferenceID, speakerID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := authorizeOwner(ctx, s.conferenceRepo, conferenceID, userID); err != nil {
		return err
	}
	if err := s.speakerRepo.Delete(ctx, conferenceID, speakerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrSpeakerNotFound
		}
		return fmt.Errorf("delete speaker: %w", err)
	}
	return nil
}
