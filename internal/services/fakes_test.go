package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"conferencedirectory/internal/domain"
	"conferencedirectory/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

const testTimeout = 2 * time.Second

var errStore = errors.New("connection reset")

// fixture is a memory store seeded with two users and one conference owned by the first.
type fixture struct {
	store      *memory.Store
	owner      *domain.User
	other      *domain.User
	conference *domain.Conference
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	owner := domain.NewUser("owner@example.com", "hash", "Owner")
	other := domain.NewUser("other@example.com", "hash", "Other")
	require.NoError(t, s.Users().Create(ctx, owner))
	require.NoError(t, s.Users().Create(ctx, other))
	c := domain.NewConference(owner.ID, "GopherCon", "Go all day", "Berlin",
		time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), 10000, 50, false, nil)
	require.NoError(t, s.Conferences().Create(ctx, c))
	return &fixture{store: s, owner: owner, other: other, conference: c}
}

func (f *fixture) addConference(t *testing.T, name string, price domain.Money, date time.Time) *domain.Conference {
	t.Helper()
	c := domain.NewConference(f.owner.ID, name, "d", "l", date, price, 10, false, nil)
	require.NoError(t, f.store.Conferences().Create(context.Background(), c))
	return c
}

// failingConferenceRepo fails every call with err.
type failingConferenceRepo struct {
	err error
}

func (f *failingConferenceRepo) Create(ctx context.Context, c *domain.Conference) error {
	return f.err
}

func (f *failingConferenceRepo) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	return nil, f.err
}

func (f *failingConferenceRepo) List(ctx context.Context, filter domain.ConferenceFilter, page domain.PaginationParams) ([]*domain.ConferenceView, error) {
	return nil, f.err
}

func (f *failingConferenceRepo) Count(ctx context.Context, filter domain.ConferenceFilter) (int, error) {
	return 0, f.err
}

func (f *failingConferenceRepo) Update(ctx context.Context, id string, upd domain.ConferenceUpdate) error {
	return f.err
}

func (f *failingConferenceRepo) Delete(ctx context.Context, id string) error {
	return f.err
}

// fakeEmailService records join confirmations.
type fakeEmailService struct {
	sent []*domain.JoinConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendJoinConfirmation(ctx context.Context, data *domain.JoinConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	err error
}

func (f *fakePasswordHasher) Hash(password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hash-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, password string) error {
	if hash != "hash-"+password {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	lastExpiry time.Duration
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	f.lastExpiry = expiry
	return fmt.Sprintf("token-%s", userID), nil
}
