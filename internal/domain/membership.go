package domain

import (
	"context"
	"errors"
)

// MembershipKind selects one of the user/conference junction tables.
type MembershipKind string

const (
	MembershipJoin     MembershipKind = "join"
	MembershipFavorite MembershipKind = "favorite"
)

// Valid reports whether k is a known kind.
func (k MembershipKind) Valid() bool {
	return k == MembershipJoin || k == MembershipFavorite
}

// ErrUnknownMembershipKind is returned for kinds other than join and favorite.
var ErrUnknownMembershipKind = errors.New("unknown membership kind")

// ConferenceRef identifies a conference in membership listings.
// swagger:model ConferenceRef
type ConferenceRef struct {
	ID string `json:"id"`
}

// MembershipRepository stores (user, conference) pairs. Add and Remove are
// idempotent: Add reports whether a row was inserted, Remove whether one was deleted.
type MembershipRepository interface {
	Add(ctx context.Context, kind MembershipKind, userID, conferenceID string) (bool, error)
	Remove(ctx context.Context, kind MembershipKind, userID, conferenceID string) (bool, error)
	ListConferenceIDs(ctx context.Context, kind MembershipKind, userID string) ([]string, error)
}

// MembershipService exposes join/favorite toggling to authenticated users.
type MembershipService interface {
	AddMembership(ctx context.Context, kind MembershipKind, principal Principal, conferenceID string) error
	RemoveMembership(ctx context.Context, kind MembershipKind, principal Principal, conferenceID string) error
	ListMemberships(ctx context.Context, kind MembershipKind, userID string) ([]ConferenceRef, error)
}
