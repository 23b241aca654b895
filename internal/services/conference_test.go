package services

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"conferencedirectory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConferenceService_PriceBoundaries(t *testing.T) {
	f := newFixture(t)
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	free := f.addConference(t, "free", 0, day)
	f.addConference(t, "cheap", 1, day)
	svc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)
	ctx := context.Background()

	zero := domain.Money(0)
	page, err := svc.ListConferences(ctx, domain.ConferenceFilter{PriceFrom: &zero}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total, "priceFrom=0 keeps every non-negative price")

	page, err = svc.ListConferences(ctx, domain.ConferenceFilter{PriceFrom: &zero, PriceTo: &zero}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, page.Conferences, 1)
	assert.Equal(t, free.ID, page.Conferences[0].ID)
	assert.Equal(t, 1, page.Total)
}

func TestConferenceService_ListNormalizesPagination(t *testing.T) {
	f := newFixture(t)
	svc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)

	page, err := svc.ListConferences(context.Background(), domain.ConferenceFilter{}, domain.PaginationParams{Page: 0, PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.PaginationParams{Page: 1, PageSize: MaxPageSize}, page.Pagination)

	page, err = svc.ListConferences(context.Background(), domain.ConferenceFilter{}, domain.PaginationParams{Page: math.MaxInt, PageSize: MaxPageSize})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPage, page.Pagination.Page)
	assert.Empty(t, page.Conferences)
	assert.Equal(t, 1, page.Total)

	name := "nothing matches"
	page, err = svc.ListConferences(context.Background(), domain.ConferenceFilter{Name: &name}, domain.PaginationParams{})
	require.NoError(t, err)
	assert.NotNil(t, page.Conferences)
	assert.Empty(t, page.Conferences)
	assert.Equal(t, DefaultPageSize, page.Pagination.PageSize)
}

func TestConferenceService_GetConference(t *testing.T) {
	f := newFixture(t)
	svc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)

	v, err := svc.GetConference(context.Background(), f.conference.ID)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", v.Name)
	assert.Empty(t, v.Speakers)

	_, err = svc.GetConference(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, domain.ErrConferenceNotFound)
}

func TestConferenceService_CreateConference(t *testing.T) {
	f := newFixture(t)
	svc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)
	loc := time.FixedZone("CEST", 2*60*60)

	c := domain.NewConference(f.other.ID, "New", "d", "Paris", time.Date(2026, 9, 1, 11, 0, 0, 0, loc), 2550, 10, true, nil)
	v, err := svc.CreateConference(context.Background(), c)
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, time.UTC, v.Date.Location())
	assert.Equal(t, 9, v.Date.Hour())
	assert.NotNil(t, v.Speakers)
	assert.NotNil(t, v.Tags)

	_, err = svc.CreateConference(context.Background(), domain.NewConference("", "x", "d", "l", time.Now(), 0, 1, false, nil))
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestConferenceService_Ownership(t *testing.T) {
	price := domain.Money(5000)
	missing := "00000000-0000-0000-0000-000000000000"

	tests := []struct {
		name    string
		userID  func(f *fixture) string
		confID  func(f *fixture) string
		wantErr error
	}{
		{
			name:    "owner may update",
			userID:  func(f *fixture) string { return f.owner.ID },
			confID:  func(f *fixture) string { return f.conference.ID },
			wantErr: nil,
		},
		{
			name:    "non-owner is forbidden",
			userID:  func(f *fixture) string { return f.other.ID },
			confID:  func(f *fixture) string { return f.conference.ID },
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "missing conference is not found",
			userID:  func(f *fixture) string { return f.other.ID },
			confID:  func(f *fixture) string { return missing },
			wantErr: domain.ErrConferenceNotFound,
		},
		{
			name:    "anonymous is unauthorized",
			userID:  func(f *fixture) string { return "" },
			confID:  func(f *fixture) string { return f.conference.ID },
			wantErr: domain.ErrUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)
			ctx := context.Background()

			err := svc.UpdateConference(ctx, tt.confID(f), tt.userID(f), domain.ConferenceUpdate{Price: &price})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				got, gerr := f.store.Conferences().GetByID(ctx, f.conference.ID)
				require.NoError(t, gerr)
				assert.Equal(t, domain.Money(10000), got.Price, "rejected update must not change the row")

				_, err = svc.SetConferenceTags(ctx, tt.confID(f), tt.userID(f), []string{"ai"})
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, svc.DeleteConference(ctx, tt.confID(f), tt.userID(f)), tt.wantErr)
				return
			}
			require.NoError(t, err)
			got, err := f.store.Conferences().GetByID(ctx, f.conference.ID)
			require.NoError(t, err)
			assert.Equal(t, price, got.Price)
			assert.Equal(t, "GopherCon", got.Name, "unset fields are unchanged")
		})
	}
}

func TestConferenceService_UpdateRequiresAField(t *testing.T) {
	f := newFixture(t)
	svc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)

	err := svc.UpdateConference(context.Background(), f.conference.ID, f.owner.ID, domain.ConferenceUpdate{})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, []string{"no fields to update"}, ve.FormErrors)
}

func TestConferenceService_DeleteConference(t *testing.T) {
	f := newFixture(t)
	svc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)
	ctx := context.Background()

	require.NoError(t, svc.DeleteConference(ctx, f.conference.ID, f.owner.ID))
	require.ErrorIs(t, svc.DeleteConference(ctx, f.conference.ID, f.owner.ID), domain.ErrConferenceNotFound)
}

func TestConferenceService_SetConferenceTags(t *testing.T) {
	f := newFixture(t)
	svc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)
	ctx := context.Background()

	changes, err := svc.SetConferenceTags(ctx, f.conference.ID, f.owner.ID, []string{"ai", " cloud ", "ai"})
	require.NoError(t, err)
	assert.Equal(t, &domain.TagChanges{AddCount: 2, DeleteCount: 0}, changes)

	changes, err = svc.SetConferenceTags(ctx, f.conference.ID, f.owner.ID, []string{"cloud", "ai"})
	require.NoError(t, err)
	assert.Equal(t, &domain.TagChanges{AddCount: 0, DeleteCount: 0}, changes, "same set is a no-op")

	changes, err = svc.SetConferenceTags(ctx, f.conference.ID, f.owner.ID, []string{"cloud", "web"})
	require.NoError(t, err)
	assert.Equal(t, &domain.TagChanges{AddCount: 1, DeleteCount: 1}, changes)

	v, err := svc.GetConference(ctx, f.conference.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"cloud", "web"}, v.Tags)
	assert.Equal(t, 3, f.store.TagCount(), "unlinked tags are kept")
}

func TestNormalizeTagNames(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{name: "trims dedupes and sorts", in: []string{" web", "ai", "web "}, want: []string{"ai", "web"}},
		{name: "case sensitive", in: []string{"AI", "ai"}, want: []string{"AI", "ai"}},
		{name: "empty set", in: []string{}, wantErr: true},
		{name: "blank name", in: []string{"ai", "  "}, wantErr: true},
		{name: "too long", in: []string{strings.Repeat("x", domain.MaxTagNameLength+1)}, wantErr: true},
		{name: "max length ok", in: []string{strings.Repeat("x", domain.MaxTagNameLength)}, want: []string{strings.Repeat("x", domain.MaxTagNameLength)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTagNames(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConferenceService_StoreErrorsAreWrapped(t *testing.T) {
	repo := &failingConferenceRepo{err: errStore}
	svc := NewConferenceService(repo, nil, testTimeout)
	ctx := context.Background()

	_, err := svc.ListConferences(ctx, domain.ConferenceFilter{}, domain.PaginationParams{Page: 1, PageSize: 20})
	require.ErrorIs(t, err, errStore)
	assert.Contains(t, err.Error(), "list conferences")

	_, err = svc.GetConference(ctx, "id")
	require.ErrorIs(t, err, errStore)

	price := domain.Money(1)
	err = svc.UpdateConference(ctx, "id", "user", domain.ConferenceUpdate{Price: &price})
	require.ErrorIs(t, err, errStore)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
