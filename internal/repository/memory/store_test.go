package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencedirectory/internal/domain"
)

func seedOwner(t *testing.T, s *Store) *domain.User {
	t.Helper()
	u := domain.NewUser("owner@example.com", "hash", "")
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}

func TestStore_DuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, domain.NewUser("a@b.com", "h", "")))
	err := s.Users().Create(ctx, domain.NewUser("a@b.com", "h", ""))
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = s.Users().GetByEmail(ctx, "nobody@b.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestStore_PaginationCoversEachMatchOnce(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	owner := seedOwner(t, s)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		// pairs share a date to exercise the id tie-break
		c := domain.NewConference(owner.ID, fmt.Sprintf("conf %d", i), "d", "l", base.AddDate(0, 0, i/2), 1000, 10, false, nil)
		require.NoError(t, s.Conferences().Create(ctx, c))
		require.NoError(t, s.Speakers().Create(ctx, domain.NewSpeaker(c.ID, "a", "t", "c", "b", nil)))
		require.NoError(t, s.Speakers().Create(ctx, domain.NewSpeaker(c.ID, "b", "t", "c", "b", nil)))
		_, err := s.Tags().SetConferenceTags(ctx, c.ID, []string{"x", "y"})
		require.NoError(t, err)
	}

	seen := map[string]int{}
	var ordered []*domain.ConferenceView
	for page := 1; page <= 5; page++ {
		views, err := s.Conferences().List(ctx, domain.ConferenceFilter{}, domain.PaginationParams{Page: page, PageSize: 5})
		require.NoError(t, err)
		for _, v := range views {
			seen[v.ID]++
			assert.Len(t, v.Speakers, 2)
			assert.Equal(t, []string{"x", "y"}, v.Tags)
		}
		ordered = append(ordered, views...)
	}
	assert.Len(t, seen, 23)
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		ok := prev.Date.After(cur.Date) || (prev.Date.Equal(cur.Date) && prev.ID < cur.ID)
		assert.True(t, ok, "order broken at %d", i)
	}

	n, err := s.Conferences().Count(ctx, domain.ConferenceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 23, n)
}

func TestStore_DeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	owner := seedOwner(t, s)
	c := domain.NewConference(owner.ID, "c", "d", "l", time.Now(), 0, 1, false, nil)
	require.NoError(t, s.Conferences().Create(ctx, c))
	sp := domain.NewSpeaker(c.ID, "a", "t", "c", "b", nil)
	require.NoError(t, s.Speakers().Create(ctx, sp))
	_, err := s.Tags().SetConferenceTags(ctx, c.ID, []string{"ai"})
	require.NoError(t, err)
	_, err = s.Memberships().Add(ctx, domain.MembershipJoin, owner.ID, c.ID)
	require.NoError(t, err)

	require.NoError(t, s.Conferences().Delete(ctx, c.ID))
	assert.Equal(t, 0, s.MembershipCount(domain.MembershipJoin))
	assert.Equal(t, 1, s.TagCount(), "tag rows survive association removal")
	require.ErrorIs(t, s.Speakers().Delete(ctx, c.ID, sp.ID), domain.ErrSpeakerNotFound)
	require.ErrorIs(t, s.Conferences().Delete(ctx, c.ID), domain.ErrConferenceNotFound)
}

func TestStore_SpeakerScopedToConference(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	owner := seedOwner(t, s)
	a := domain.NewConference(owner.ID, "a", "d", "l", time.Now(), 0, 1, false, nil)
	b := domain.NewConference(owner.ID, "b", "d", "l", time.Now(), 0, 1, false, nil)
	require.NoError(t, s.Conferences().Create(ctx, a))
	require.NoError(t, s.Conferences().Create(ctx, b))
	sp := domain.NewSpeaker(a.ID, "a", "t", "c", "b", nil)
	require.NoError(t, s.Speakers().Create(ctx, sp))

	name := "x"
	_, err := s.Speakers().Update(ctx, b.ID, sp.ID, domain.SpeakerUpdate{Name: &name})
	require.ErrorIs(t, err, domain.ErrSpeakerNotFound)
	got, err := s.Speakers().Update(ctx, a.ID, sp.ID, domain.SpeakerUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
}
