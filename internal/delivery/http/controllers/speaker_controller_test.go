package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencedirectory/internal/domain"
)

func speakerPath() map[string]string {
	return map[string]string{"id": testConferenceID, "speakerId": testSpeakerID}
}

func TestSpeakerController_CreateSpeaker(t *testing.T) {
	svc := &fakeSpeakerService{}
	rr := httptest.NewRecorder()
	NewSpeakerController(testLogger, svc).CreateSpeaker(rr, newRequest(http.MethodPost, "/conferences/"+testConferenceID+"/speaker",
		`{"name":"Alice","title":"CTO","company":"Acme","bio":"Builds things"}`, testUserID, map[string]string{"id": testConferenceID}))

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, svc.lastSpeaker)
	assert.Equal(t, testConferenceID, svc.lastSpeaker.ConferenceID)
	assert.Equal(t, testUserID, svc.lastUserID)

	var sp domain.Speaker
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &sp))
	assert.Equal(t, testSpeakerID, sp.ID)
	assert.Equal(t, "Alice", sp.Name)
	assert.Nil(t, sp.AvatarURL)
}

func TestSpeakerController_CreateSpeaker_Validation(t *testing.T) {
	svc := &fakeSpeakerService{}
	rr := httptest.NewRecorder()
	NewSpeakerController(testLogger, svc).CreateSpeaker(rr, newRequest(http.MethodPost, "/conferences/"+testConferenceID+"/speaker",
		`{"name":"Alice"}`, testUserID, map[string]string{"id": testConferenceID}))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var detail domain.ValidationError
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Error.Detail, &detail))
	assert.ElementsMatch(t, []string{"title", "company", "bio"}, keys(detail.FieldErrors))
	assert.False(t, svc.called)
}

func TestSpeakerController_UpdateSpeaker(t *testing.T) {
	svc := &fakeSpeakerService{}
	rr := httptest.NewRecorder()
	NewSpeakerController(testLogger, svc).UpdateSpeaker(rr, newRequest(http.MethodPatch, "/conferences/"+testConferenceID+"/speaker/"+testSpeakerID,
		`{"name":"Alicia"}`, testUserID, speakerPath()))

	require.Equal(t, http.StatusOK, rr.Code)
	var data struct {
		Speaker domain.Speaker `json:"speaker"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &data))
	assert.Equal(t, "Alicia", data.Speaker.Name)
	assert.Equal(t, testSpeakerID, svc.lastSpeakerID)
	assert.Equal(t, testConferenceID, svc.lastConferenceID)
	assert.Nil(t, svc.lastUpdate.Bio)
}

func TestSpeakerController_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       map[string]string
		userID     string
		body       string
		svcErr     error
		wantStatus int
		wantMsg    string
	}{
		{name: "bad speaker id", method: http.MethodPatch, path: map[string]string{"id": testConferenceID, "speakerId": "x"}, userID: testUserID, body: `{"name":"a"}`, wantStatus: http.StatusBadRequest, wantMsg: "invalid speakerId"},
		{name: "anonymous delete", method: http.MethodDelete, path: speakerPath(), wantStatus: http.StatusUnauthorized, wantMsg: "authentication required"},
		{name: "empty update", method: http.MethodPatch, path: speakerPath(), userID: testUserID, body: `{}`, svcErr: emptyUpdateError(), wantStatus: http.StatusBadRequest, wantMsg: "invalid properties"},
		{name: "speaker missing", method: http.MethodDelete, path: speakerPath(), userID: testUserID, svcErr: domain.ErrSpeakerNotFound, wantStatus: http.StatusNotFound, wantMsg: "speaker not found"},
		{name: "not owner", method: http.MethodPatch, path: speakerPath(), userID: testUserID, body: `{"bio":"b"}`, svcErr: domain.ErrForbidden, wantStatus: http.StatusForbidden, wantMsg: "forbidden"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewSpeakerController(testLogger, &fakeSpeakerService{err: tt.svcErr})
			rr := httptest.NewRecorder()
			req := newRequest(tt.method, "/conferences/x/speaker/y", tt.body, tt.userID, tt.path)
			if tt.method == http.MethodDelete {
				c.DeleteSpeaker(rr, req)
			} else {
				c.UpdateSpeaker(rr, req)
			}

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantMsg, decodeEnvelope(t, rr).Error.Message)
		})
	}
}

func emptyUpdateError() error {
	ve := domain.NewValidationError("")
	ve.AddForm("no fields to update")
	return ve
}

func keys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
