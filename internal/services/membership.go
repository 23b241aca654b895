package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencedirectory/internal/domain"
)

type membershipService struct {
	membershipRepo domain.MembershipRepository
	conferenceRepo domain.ConferenceRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewMembershipService returns a MembershipService. emailService may be nil, in
// which case no join confirmation is sent.
func NewMembershipService(
	membershipRepo domain.MembershipRepository,
	conferenceRepo domain.ConferenceRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.MembershipService {
	if logger == nil {
		logger = slog.Default()
	}
	return &membershipService{
		membershipRepo: membershipRepo,
		conferenceRepo: conferenceRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *membershipService) AddMembership(ctx context.Context, kind domain.MembershipKind, principal domain.Principal, conferenceID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !principal.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMembershipKind, kind)
	}
	inserted, err := s.membershipRepo.Add(ctx, kind, principal.UserID, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrConferenceNotFound) {
			return domain.ErrConferenceNotFound
		}
		return fmt.Errorf("add %s: %w", kind, err)
	}
	if inserted && kind == domain.MembershipJoin {
		s.sendJoinConfirmation(ctx, principal, conferenceID)
	}
	return nil
}

// sendJoinConfirmation is best-effort: failures are logged and never returned.
func (s *membershipService) sendJoinConfirmation(ctx context.Context, principal domain.Principal, conferenceID string) {
	if s.emailService == nil || principal.Email == "" {
		return
	}
	c, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		s.logger.WarnContext(ctx, "join confirmation skipped", "conference_id", conferenceID, "err", err)
		return
	}
	data := &domain.JoinConfirmationEmailData{
		Email:          principal.Email,
		ConferenceName: c.Name,
		Date:           c.Date,
		Location:       c.Location,
	}
	if err := s.emailService.SendJoinConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "join confirmation failed", "conference_id", conferenceID, "err", err)
	}
}

func (s *membershipService) RemoveMembership(ctx context.Context, kind domain.MembershipKind, principal domain.Principal, conferenceID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !principal.IsAuthenticated() {
		return domain.ErrUnauthorized
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownMembershipKind, kind)
	}
	if _, err := s.membershipRepo.Remove(ctx, kind, principal.UserID, conferenceID); err != nil {
		return fmt.Errorf("remove %s: %w", kind, err)
	}
	return nil
}

func (s *membershipService) ListMemberships(ctx context.Context, kind domain.MembershipKind, userID string) ([]domain.ConferenceRef, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	ids, err := s.membershipRepo.ListConferenceIDs(ctx, kind, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	refs := make([]domain.ConferenceRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, domain.ConferenceRef{ID: id})
	}
	return refs, nil
}
