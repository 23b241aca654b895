package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	ve := NewValidationError("")
	assert.False(t, ve.HasErrors())

	ve.AddField("price", "price must be at least 0")
	ve.AddField("name", "name is required")
	ve.AddForm("at least one property must be provided")
	assert.True(t, ve.HasErrors())
	assert.Equal(t, "invalid properties", ve.ClientMessage())
	assert.Equal(t, "invalid properties: at least one property must be provided; name: name is required; price: price must be at least 0", ve.Error())

	wrapped := fmt.Errorf("create: %w", ve)
	assert.True(t, errors.Is(wrapped, ErrValidation))
	var target *ValidationError
	assert.True(t, errors.As(wrapped, &target))

	var nilErr *ValidationError
	assert.False(t, nilErr.HasErrors())
}

func TestNotFoundSentinels(t *testing.T) {
	assert.True(t, errors.Is(ErrConferenceNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrSpeakerNotFound, ErrNotFound))
	assert.True(t, errors.Is(ErrDuplicateEmail, ErrConflict))
	assert.Equal(t, "conference not found", ErrConferenceNotFound.Error())
}

func TestPaginationParams(t *testing.T) {
	assert.Equal(t, 0, PaginationParams{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 40, PaginationParams{Page: 3, PageSize: 20}.Offset())
	assert.Equal(t, 0, PaginationParams{Page: 0, PageSize: 20}.Offset())
	assert.Equal(t, 1, PaginationParams{PageSize: 0}.Limit())
}

func TestUpdatesIsEmpty(t *testing.T) {
	assert.True(t, ConferenceUpdate{}.IsEmpty())
	f := false
	assert.False(t, ConferenceUpdate{IsFeatured: &f}.IsEmpty())
	assert.True(t, SpeakerUpdate{}.IsEmpty())
	bio := ""
	assert.False(t, SpeakerUpdate{Bio: &bio}.IsEmpty())
}
