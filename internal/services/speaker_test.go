package services

import (
	"context"
	"testing"

	"conferencedirectory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeakerService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewSpeakerService(f.store.Conferences(), f.store.Speakers(), testTimeout)
	confSvc := NewConferenceService(f.store.Conferences(), f.store.Tags(), testTimeout)
	ctx := context.Background()

	alice, err := svc.AddSpeaker(ctx, f.owner.ID, domain.NewSpeaker(f.conference.ID, "Alice", "Engineer", "Acme", "Bio", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, alice.ID)
	_, err = svc.AddSpeaker(ctx, f.owner.ID, domain.NewSpeaker(f.conference.ID, "Bob", "PM", "Acme", "Bio", nil))
	require.NoError(t, err)

	title := "CTO"
	updated, err := svc.UpdateSpeaker(ctx, f.conference.ID, alice.ID, f.owner.ID, domain.SpeakerUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "CTO", updated.Title)
	assert.Equal(t, "Alice", updated.Name)

	v, err := confSvc.GetConference(ctx, f.conference.ID)
	require.NoError(t, err)
	require.Len(t, v.Speakers, 2)
	assert.Equal(t, "Alice", v.Speakers[0].Name)
	assert.Equal(t, "Bob", v.Speakers[1].Name)

	require.NoError(t, svc.DeleteSpeaker(ctx, f.conference.ID, alice.ID, f.owner.ID))
	require.ErrorIs(t, svc.DeleteSpeaker(ctx, f.conference.ID, alice.ID, f.owner.ID), domain.ErrSpeakerNotFound)
}

func TestSpeakerService_Ownership(t *testing.T) {
	f := newFixture(t)
	svc := NewSpeakerService(f.store.Conferences(), f.store.Speakers(), testTimeout)
	ctx := context.Background()
	sp, err := svc.AddSpeaker(ctx, f.owner.ID, domain.NewSpeaker(f.conference.ID, "Alice", "Engineer", "Acme", "Bio", nil))
	require.NoError(t, err)

	_, err = svc.AddSpeaker(ctx, f.other.ID, domain.NewSpeaker(f.conference.ID, "Mallory", "x", "x", "x", nil))
	require.ErrorIs(t, err, domain.ErrForbidden)

	name := "Mallory"
	_, err = svc.UpdateSpeaker(ctx, f.conference.ID, sp.ID, f.other.ID, domain.SpeakerUpdate{Name: &name})
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.ErrorIs(t, svc.DeleteSpeaker(ctx, f.conference.ID, sp.ID, f.other.ID), domain.ErrForbidden)

	_, err = svc.AddSpeaker(ctx, f.owner.ID, domain.NewSpeaker("00000000-0000-0000-0000-000000000000", "x", "x", "x", "x", nil))
	require.ErrorIs(t, err, domain.ErrConferenceNotFound)
}

func TestSpeakerService_ScopedToConference(t *testing.T) {
	f := newFixture(t)
	svc := NewSpeakerService(f.store.Conferences(), f.store.Speakers(), testTimeout)
	ctx := context.Background()
	sp, err := svc.AddSpeaker(ctx, f.owner.ID, domain.NewSpeaker(f.conference.ID, "Alice", "Engineer", "Acme", "Bio", nil))
	require.NoError(t, err)
	second := f.addConference(t, "second", 0, f.conference.Date)

	name := "x"
	_, err = svc.UpdateSpeaker(ctx, second.ID, sp.ID, f.owner.ID, domain.SpeakerUpdate{Name: &name})
	require.ErrorIs(t, err, domain.ErrSpeakerNotFound)

	_, err = svc.UpdateSpeaker(ctx, f.conference.ID, sp.ID, f.owner.ID, domain.SpeakerUpdate{})
	require.ErrorIs(t, err, domain.ErrValidation)
}
