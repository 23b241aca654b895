package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"conferencedirectory/internal/delivery/http/middleware"
	"conferencedirectory/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testConferenceID = "0b6f3f4e-8a1b-4c8e-9d61-3f1f2c9a7b10"
	testSpeakerID    = "5d1c9a3e-2f4b-4e6a-8c7d-1a2b3c4d5e6f"
	testUserID       = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
)

// fakeConferenceService implements domain.ConferenceService for handler tests.
type fakeConferenceService struct {
	listResult *domain.ConferencePage
	getResult  *domain.ConferenceView
	err        error

	lastFilter   domain.ConferenceFilter
	lastPage     domain.PaginationParams
	lastID       string
	lastUserID   string
	lastCreate   *domain.Conference
	lastUpdate   domain.ConferenceUpdate
	lastTags     []string
	tagChanges   *domain.TagChanges
	calledMethod string
}

func (f *fakeConferenceService) ListConferences(_ context.Context, filter domain.ConferenceFilter, page domain.PaginationParams) (*domain.ConferencePage, error) {
	f.calledMethod, f.lastFilter, f.lastPage = "list", filter, page
	if f.err != nil {
		return nil, f.err
	}
	return f.listResult, nil
}

func (f *fakeConferenceService) GetConference(_ context.Context, id string) (*domain.ConferenceView, error) {
	f.calledMethod, f.lastID = "get", id
	if f.err != nil {
		return nil, f.err
	}
	return f.getResult, nil
}

func (f *fakeConferenceService) CreateConference(_ context.Context, c *domain.Conference) (*domain.ConferenceView, error) {
	f.calledMethod, f.lastCreate = "create", c
	if f.err != nil {
		return nil, f.err
	}
	c.ID = testConferenceID
	return &domain.ConferenceView{Conference: *c, Speakers: []domain.Speaker{}, Tags: []string{}}, nil
}

func (f *fakeConferenceService) UpdateConference(_ context.Context, conferenceID, userID string, upd domain.ConferenceUpdate) error {
	f.calledMethod, f.lastID, f.lastUserID, f.lastUpdate = "update", conferenceID, userID, upd
	return f.err
}

func (f *fakeConferenceService) DeleteConference(_ context.Context, conferenceID, userID string) error {
	f.calledMethod, f.lastID, f.lastUserID = "delete", conferenceID, userID
	return f.err
}

func (f *fakeConferenceService) SetConferenceTags(_ context.Context, conferenceID, userID string, tags []string) (*domain.TagChanges, error) {
	f.calledMethod, f.lastID, f.lastUserID, f.lastTags = "tags", conferenceID, userID, tags
	if f.err != nil {
		return nil, f.err
	}
	return f.tagChanges, nil
}

// fakeSpeakerService implements domain.SpeakerService for handler tests.
type fakeSpeakerService struct {
	err error

	lastSpeaker      *domain.Speaker
	lastConferenceID string
	lastSpeakerID    string
	lastUserID       string
	lastUpdate       domain.SpeakerUpdate
	called           bool
}

func (f *fakeSpeakerService) AddSpeaker(_ context.Context, userID string, s *domain.Speaker) (*domain.Speaker, error) {
	f.called, f.lastUserID, f.lastSpeaker = true, userID, s
	if f.err != nil {
		return nil, f.err
	}
	s.ID = testSpeakerID
	return s, nil
}

func (f *fakeSpeakerService) UpdateSpeaker(_ context.Context, conferenceID, speakerID, userID string, upd domain.SpeakerUpdate) (*domain.Speaker, error) {
	f.called, f.lastConferenceID, f.lastSpeakerID, f.lastUserID, f.lastUpdate = true, conferenceID, speakerID, userID, upd
	if f.err != nil {
		return nil, f.err
	}
	sp := &domain.Speaker{ID: speakerID, ConferenceID: conferenceID, Name: "Alice", Title: "CTO", Company: "Acme", Bio: "bio"}
	if upd.Name != nil {
		sp.Name = *upd.Name
	}
	return sp, nil
}

func (f *fakeSpeakerService) DeleteSpeaker(_ context.Context, conferenceID, speakerID, userID string) error {
	f.called, f.lastConferenceID, f.lastSpeakerID, f.lastUserID = true, conferenceID, speakerID, userID
	return f.err
}

// fakeMembershipService implements domain.MembershipService for handler tests.
type fakeMembershipService struct {
	err  error
	refs []domain.ConferenceRef

	calls []string
}

func (f *fakeMembershipService) AddMembership(_ context.Context, kind domain.MembershipKind, p domain.Principal, conferenceID string) error {
	f.calls = append(f.calls, "add "+string(kind)+" "+p.UserID+" "+conferenceID)
	return f.err
}

func (f *fakeMembershipService) RemoveMembership(_ context.Context, kind domain.MembershipKind, p domain.Principal, conferenceID string) error {
	f.calls = append(f.calls, "remove "+string(kind)+" "+p.UserID+" "+conferenceID)
	return f.err
}

func (f *fakeMembershipService) ListMemberships(_ context.Context, kind domain.MembershipKind, userID string) ([]domain.ConferenceRef, error) {
	f.calls = append(f.calls, "list "+string(kind)+" "+userID)
	if f.err != nil {
		return nil, f.err
	}
	return f.refs, nil
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr error
	signInErr error

	lastEmail    string
	lastPassword string
	lastName     string
}

func (f *fakeAuthService) SignUp(_ context.Context, email, password, name string) (*domain.User, error) {
	f.lastEmail, f.lastPassword, f.lastName = email, password, name
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &domain.User{ID: testUserID, Email: email, Name: name}, nil
}

func (f *fakeAuthService) SignIn(_ context.Context, email, password string) (string, *domain.User, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.signInErr != nil {
		return "", nil, f.signInErr
	}
	return "signed-token", &domain.User{ID: testUserID, Email: email}, nil
}

// newRequest builds a request with optional path values and an authenticated principal.
func newRequest(method, target, body string, userID string, pathValues map[string]string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if userID != "" {
		req = req.WithContext(middleware.WithPrincipal(req.Context(), domain.Principal{UserID: userID, Email: "u@example.com"}))
	}
	return req
}

// envelope mirrors the response envelope with raw data for per-test decoding.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}
