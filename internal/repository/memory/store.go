// Package memory is a mutex-guarded, process-local implementation of every
// repository port. It mirrors the Postgres constraints (unique email, unique
// tag name, junction primary keys, cascades) and serves local runs and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"conferencedirectory/internal/domain"
	"conferencedirectory/internal/repository/aggregate"
)

type speakerRecord struct {
	speaker domain.Speaker
	seq     int64
}

type membershipKey struct {
	userID       string
	conferenceID string
}

// Store holds all tables. Use the accessor methods to obtain repositories.
type Store struct {
	mu sync.RWMutex

	seq          int64
	users        map[string]domain.User
	usersByEmail map[string]string
	conferences  map[string]domain.Conference
	speakers     map[string]speakerRecord
	tagsByName   map[string]string
	confTags     map[string]map[string]struct{}
	memberships  map[domain.MembershipKind]map[membershipKey]struct{}
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		users:        map[string]domain.User{},
		usersByEmail: map[string]string{},
		conferences:  map[string]domain.Conference{},
		speakers:     map[string]speakerRecord{},
		tagsByName:   map[string]string{},
		confTags:     map[string]map[string]struct{}{},
		memberships: map[domain.MembershipKind]map[membershipKey]struct{}{
			domain.MembershipJoin:     {},
			domain.MembershipFavorite: {},
		},
	}
}

func (s *Store) Users() domain.UserRepository             { return userRepo{s} }
func (s *Store) Conferences() domain.ConferenceRepository { return conferenceRepo{s} }
func (s *Store) Speakers() domain.SpeakerRepository       { return speakerRepo{s} }
func (s *Store) Tags() domain.TagRepository               { return tagRepo{s} }
func (s *Store) Memberships() domain.MembershipRepository { return membershipRepo{s} }

// MembershipCount returns how many rows the kind's junction holds.
func (s *Store) MembershipCount(kind domain.MembershipKind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memberships[kind])
}

// TagCount returns how many distinct tag rows exist.
func (s *Store) TagCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tagsByName)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.usersByEmail[u.Email]; taken {
		return domain.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	r.s.users[u.ID] = *u
	r.s.usersByEmail[u.Email] = u.ID
	return nil
}

func (r userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.s.users[id]
	return &u, nil
}

type conferenceRepo struct{ s *Store }

func (r conferenceRepo) Create(ctx context.Context, c *domain.Conference) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[c.OwnerID]; !ok {
		return domain.ErrUserNotFound
	}
	c.ID = uuid.NewString()
	r.s.conferences[c.ID] = cloneConference(*c)
	return nil
}

func (r conferenceRepo) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.conferences[id]
	if !ok {
		return nil, domain.ErrConferenceNotFound
	}
	c = cloneConference(c)
	return &c, nil
}

func (r conferenceRepo) List(ctx context.Context, filter domain.ConferenceFilter, page domain.PaginationParams) ([]*domain.ConferenceView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matches := r.s.filterConferences(filter)
	start := page.Offset()
	if start > len(matches) {
		start = len(matches)
	}
	end := start + page.Limit()
	if end > len(matches) {
		end = len(matches)
	}

	agg := aggregate.New()
	for _, c := range matches[start:end] {
		for _, row := range r.s.joinedRows(c) {
			agg.Add(row)
		}
	}
	return agg.Views(), nil
}

func (r conferenceRepo) Count(ctx context.Context, filter domain.ConferenceFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.filterConferences(filter)), nil
}

func (r conferenceRepo) Update(ctx context.Context, id string, upd domain.ConferenceUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.conferences[id]
	if !ok {
		return domain.ErrConferenceNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.Date != nil {
		c.Date = upd.Date.UTC()
	}
	if upd.Location != nil {
		c.Location = *upd.Location
	}
	if upd.Price != nil {
		c.Price = *upd.Price
	}
	if upd.MaxAttendees != nil {
		c.MaxAttendees = *upd.MaxAttendees
	}
	if upd.IsFeatured != nil {
		c.IsFeatured = *upd.IsFeatured
	}
	if upd.ImageURL != nil {
		v := *upd.ImageURL
		c.ImageURL = &v
	}
	r.s.conferences[id] = c
	return nil
}

func (r conferenceRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conferences[id]; !ok {
		return domain.ErrConferenceNotFound
	}
	delete(r.s.conferences, id)
	delete(r.s.confTags, id)
	for sid, rec := range r.s.speakers {
		if rec.speaker.ConferenceID == id {
			delete(r.s.speakers, sid)
		}
	}
	for _, rows := range r.s.memberships {
		for k := range rows {
			if k.conferenceID == id {
				delete(rows, k)
			}
		}
	}
	return nil
}

// filterConferences returns matching conferences ordered by date desc, id asc.
// Callers hold the lock.
func (s *Store) filterConferences(f domain.ConferenceFilter) []domain.Conference {
	var wantTags map[string]struct{}
	if len(f.Tags) > 0 {
		wantTags = make(map[string]struct{}, len(f.Tags))
		for _, t := range f.Tags {
			wantTags[t] = struct{}{}
		}
	}
	out := make([]domain.Conference, 0)
	for _, c := range s.conferences {
		if f.ID != nil && c.ID != *f.ID {
			continue
		}
		if f.Name != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*f.Name)) {
			continue
		}
		if f.StartDate != nil && c.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && c.Date.After(*f.EndDate) {
			continue
		}
		if f.PriceFrom != nil && c.Price < *f.PriceFrom {
			continue
		}
		if f.PriceTo != nil && c.Price > *f.PriceTo {
			continue
		}
		if f.OwnerID != nil && c.OwnerID != *f.OwnerID {
			continue
		}
		if wantTags != nil && !s.hasAnyTag(c.ID, wantTags) {
			continue
		}
		out = append(out, cloneConference(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) hasAnyTag(conferenceID string, names map[string]struct{}) bool {
	for _, name := range s.tagNames(conferenceID) {
		if _, ok := names[name]; ok {
			return true
		}
	}
	return false
}

func (s *Store) tagNames(conferenceID string) []string {
	byID := make(map[string]string, len(s.tagsByName))
	for name, id := range s.tagsByName {
		byID[id] = name
	}
	names := make([]string, 0, len(s.confTags[conferenceID]))
	for tagID := range s.confTags[conferenceID] {
		names = append(names, byID[tagID])
	}
	sort.Strings(names)
	return names
}

// joinedRows reproduces the rows the Postgres left joins yield for one conference.
func (s *Store) joinedRows(c domain.Conference) []aggregate.Row {
	recs := make([]speakerRecord, 0)
	for _, rec := range s.speakers {
		if rec.speaker.ConferenceID == c.ID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	names := s.tagNames(c.ID)

	var speakers []*domain.Speaker
	for i := range recs {
		sp := recs[i].speaker
		speakers = append(speakers, &sp)
	}
	if len(speakers) == 0 {
		speakers = []*domain.Speaker{nil}
	}
	tags := make([]*string, 0, len(names))
	for i := range names {
		tags = append(tags, &names[i])
	}
	if len(tags) == 0 {
		tags = []*string{nil}
	}

	rows := make([]aggregate.Row, 0, len(speakers)*len(tags))
	for _, sp := range speakers {
		for _, tg := range tags {
			rows = append(rows, aggregate.Row{Conference: c, Speaker: sp, TagName: tg})
		}
	}
	return rows
}

func cloneConference(c domain.Conference) domain.Conference {
	if c.ImageURL != nil {
		v := *c.ImageURL
		c.ImageURL = &v
	}
	c.Date = c.Date.UTC()
	return c
}

type speakerRepo struct{ s *Store }

func (r speakerRepo) Create(ctx context.Context, sp *domain.Speaker) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conferences[sp.ConferenceID]; !ok {
		return domain.ErrConferenceNotFound
	}
	sp.ID = uuid.NewString()
	r.s.seq++
	r.s.speakers[sp.ID] = speakerRecord{speaker: *sp, seq: r.s.seq}
	return nil
}

func (r speakerRepo) Update(ctx context.Context, conferenceID, speakerID string, upd domain.SpeakerUpdate) (*domain.Speaker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.speakers[speakerID]
	if !ok || rec.speaker.ConferenceID != conferenceID {
		return nil, domain.ErrSpeakerNotFound
	}
	sp := &rec.speaker
	if upd.Name != nil {
		sp.Name = *upd.Name
	}
	if upd.Title != nil {
		sp.Title = *upd.Title
	}
	if upd.Company != nil {
		sp.Company = *upd.Company
	}
	if upd.Bio != nil {
		sp.Bio = *upd.Bio
	}
	if upd.AvatarURL != nil {
		v := *upd.AvatarURL
		sp.AvatarURL = &v
	}
	r.s.speakers[speakerID] = rec
	out := rec.speaker
	return &out, nil
}

func (r speakerRepo) Delete(ctx context.Context, conferenceID, speakerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.speakers[speakerID]
	if !ok || rec.speaker.ConferenceID != conferenceID {
		return domain.ErrSpeakerNotFound
	}
	delete(r.s.speakers, speakerID)
	return nil
}

type tagRepo struct{ s *Store }

func (r tagRepo) SetConferenceTags(ctx context.Context, conferenceID string, names []string) (*domain.TagChanges, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.conferences[conferenceID]; !ok {
		return nil, domain.ErrConferenceNotFound
	}

	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		id, ok := r.s.tagsByName[name]
		if !ok {
			id = uuid.NewString()
			r.s.tagsByName[name] = id
		}
		want[id] = struct{}{}
	}

	current := r.s.confTags[conferenceID]
	if current == nil {
		current = map[string]struct{}{}
		r.s.confTags[conferenceID] = current
	}
	changes := &domain.TagChanges{}
	for id := range current {
		if _, keep := want[id]; !keep {
			delete(current, id)
			changes.DeleteCount++
		}
	}
	for id := range want {
		if _, have := current[id]; !have {
			current[id] = struct{}{}
			changes.AddCount++
		}
	}
	return changes, nil
}

type membershipRepo struct{ s *Store }

func (r membershipRepo) Add(ctx context.Context, kind domain.MembershipKind, userID, conferenceID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows, ok := r.s.memberships[kind]
	if !ok {
		return false, domain.ErrUnknownMembershipKind
	}
	if _, ok := r.s.conferences[conferenceID]; !ok {
		return false, domain.ErrConferenceNotFound
	}
	if _, ok := r.s.users[userID]; !ok {
		return false, domain.ErrUserNotFound
	}
	key := membershipKey{userID: userID, conferenceID: conferenceID}
	if _, exists := rows[key]; exists {
		return false, nil
	}
	rows[key] = struct{}{}
	return true, nil
}

func (r membershipRepo) Remove(ctx context.Context, kind domain.MembershipKind, userID, conferenceID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows, ok := r.s.memberships[kind]
	if !ok {
		return false, domain.ErrUnknownMembershipKind
	}
	key := membershipKey{userID: userID, conferenceID: conferenceID}
	if _, exists := rows[key]; !exists {
		return false, nil
	}
	delete(rows, key)
	return true, nil
}

func (r membershipRepo) ListConferenceIDs(ctx context.Context, kind domain.MembershipKind, userID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows, ok := r.s.memberships[kind]
	if !ok {
		return nil, domain.ErrUnknownMembershipKind
	}
	confs := make([]domain.Conference, 0)
	for k := range rows {
		if k.userID == userID {
			confs = append(confs, r.s.conferences[k.conferenceID])
		}
	}
	sort.Slice(confs, func(i, j int) bool {
		if !confs[i].Date.Equal(confs[j].Date) {
			return confs[i].Date.After(confs[j].Date)
		}
		return confs[i].ID < confs[j].ID
	})
	ids := make([]string, 0, len(confs))
	for _, c := range confs {
		ids = append(ids, c.ID)
	}
	return ids, nil
}
