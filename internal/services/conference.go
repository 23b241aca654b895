package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"conferencedirectory/internal/domain"
)

// Page size bounds applied when callers pass out-of-range pagination.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	tagRepo        domain.TagRepository
	contextTimeout time.Duration
}

// NewConferenceService returns a ConferenceService over the given repositories.
func NewConferenceService(conferenceRepo domain.ConferenceRepository, tagRepo domain.TagRepository, timeout time.Duration) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		tagRepo:        tagRepo,
		contextTimeout: timeout,
	}
}

func normalizePage(p domain.PaginationParams) domain.PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > domain.MaxPage {
		p.Page = domain.MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

func (s *conferenceService) ListConferences(ctx context.Context, filter domain.ConferenceFilter, page domain.PaginationParams) (*domain.ConferencePage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	page = normalizePage(page)
	views, err := s.conferenceRepo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}
	if views == nil {
		views = []*domain.ConferenceView{}
	}
	total, err := s.conferenceRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count conferences: %w", err)
	}
	return &domain.ConferencePage{Conferences: views, Total: total, Pagination: page}, nil
}

func (s *conferenceService) GetConference(ctx context.Context, id string) (*domain.ConferenceView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.getView(ctx, id)
}

func (s *conferenceService) getView(ctx context.Context, id string) (*domain.ConferenceView, error) {
	views, err := s.conferenceRepo.List(ctx, domain.ConferenceFilter{ID: &id}, domain.PaginationParams{Page: 1, PageSize: 1})
	if err != nil {
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if len(views) == 0 {
		return nil, domain.ErrConferenceNotFound
	}
	return views[0], nil
}

func (s *conferenceService) CreateConference(ctx context.Context, c *domain.Conference) (*domain.ConferenceView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if c.OwnerID == "" {
		return nil, domain.ErrUnauthorized
	}
	c.Date = c.Date.UTC()
	if err := s.conferenceRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}
	return &domain.ConferenceView{
		Conference: *c,
		Speakers:   []domain.Speaker{},
		Tags:       []string{},
	}, nil
}

func (s *conferenceService) UpdateConference(ctx context.Context, conferenceID, userID string, upd domain.ConferenceUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.IsEmpty() {
		ve := domain.NewValidationError("")
		ve.AddForm("no fields to update")
		return ve
	}
	if _, err := authorizeOwner(ctx, s.conferenceRepo, conferenceID, userID); err != nil {
		return err
	}
	if upd.Date != nil {
		d := upd.Date.UTC()
		upd.Date = &d
	}
	if err := s.conferenceRepo.Update(ctx, conferenceID, upd); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConferenceNotFound
		}
		return fmt.Errorf("update conference: %w", err)
	}
	return nil
}

func (s *conferenceService) DeleteConference(ctx context.Context, conferenceID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := authorizeOwner(ctx, s.conferenceRepo, conferenceID, userID); err != nil {
		return err
	}
	if err := s.conferenceRepo.Delete(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrConferenceNotFound
		}
		return fmt.Errorf("delete conference: %w", err)
	}
	return nil
}

func (s *conferenceService) SetConferenceTags(ctx context.Context, conferenceID, userID string, tags []string) (*domain.TagChanges, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	names, err := NormalizeTagNames(tags)
	if err != nil {
		return nil, err
	}
	if _, err := authorizeOwner(ctx, s.conferenceRepo, conferenceID, userID); err != nil {
		return nil, err
	}
	changes, err := s.tagRepo.SetConferenceTags(ctx, conferenceID, names)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrConferenceNotFound
		}
		return nil, fmt.Errorf("set conference tags: %w", err)
	}
	return changes, nil
}

// NormalizeTagNames trims, de-duplicates and sorts tag names. The set must be
// non-empty and every name must be 1 to MaxTagNameLength characters.
func NormalizeTagNames(tags []string) ([]string, error) {
	ve := domain.NewValidationError("")
	if len(tags) == 0 {
		ve.AddField("tags", "at least one tag is required")
		return nil, ve
	}
	seen := make(map[string]struct{}, len(tags))
	names := make([]string, 0, len(tags))
	for _, raw := range tags {
		name := strings.TrimSpace(raw)
		switch {
		case name == "":
			ve.AddField("tags", "tag name must not be empty")
			continue
		case utf8.RuneCountInString(name) > domain.MaxTagNameLength:
			ve.AddField("tags", fmt.Sprintf("tag name must be at most %d characters", domain.MaxTagNameLength))
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	if ve.HasErrors() {
		return nil, ve
	}
	sort.Strings(names)
	return names, nil
}
