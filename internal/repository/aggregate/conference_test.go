package aggregate

import (
	"fmt"
	"testing"

	"conferencedirectory/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAggregator_CollapsesCrossProduct(t *testing.T) {
	conf := domain.Conference{ID: "c1", Name: "GopherCon"}
	speakers := []domain.Speaker{
		{ID: "s1", ConferenceID: "c1", Name: "Alice"},
		{ID: "s2", ConferenceID: "c1", Name: "Bob"},
		{ID: "s3", ConferenceID: "c1", Name: "Carol"},
	}
	tags := []string{"ai", "cloud"}

	a := New()
	for i := range speakers {
		for _, tg := range tags {
			sp := speakers[i]
			a.Add(Row{Conference: conf, Speaker: &sp, TagName: strPtr(tg)})
		}
	}

	views := a.Views()
	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, "c1", v.ID)
	require.Len(t, v.Speakers, 3)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, []string{v.Speakers[0].Name, v.Speakers[1].Name, v.Speakers[2].Name})
	for _, sp := range v.Speakers {
		assert.Empty(t, sp.ConferenceID, "conferenceId is not exposed in views")
	}
	assert.Equal(t, []string{"ai", "cloud"}, v.Tags)
}

func TestAggregator_NullJoinColumns(t *testing.T) {
	a := New()
	a.Add(Row{Conference: domain.Conference{ID: "c1"}})
	a.Add(Row{Conference: domain.Conference{ID: "c2"}, TagName: strPtr("go")})
	a.Add(Row{Conference: domain.Conference{ID: "c3"}, Speaker: &domain.Speaker{ID: "s9", Name: "Dan"}})

	views := a.Views()
	require.Len(t, views, 3)
	assert.Empty(t, views[0].Speakers)
	assert.NotNil(t, views[0].Speakers)
	assert.Empty(t, views[0].Tags)
	assert.NotNil(t, views[0].Tags)
	assert.Equal(t, []string{"go"}, views[1].Tags)
	assert.Len(t, views[2].Speakers, 1)
}

func TestAggregator_PreservesConferenceOrder(t *testing.T) {
	a := New()
	ids := []string{"c3", "c1", "c2"}
	for round := 0; round < 3; round++ {
		for _, id := range ids {
			a.Add(Row{
				Conference: domain.Conference{ID: id},
				Speaker:    &domain.Speaker{ID: fmt.Sprintf("%s-s%d", id, round)},
			})
		}
	}
	assert.Equal(t, 3, a.Len())
	views := a.Views()
	got := make([]string, 0, len(views))
	for _, v := range views {
		got = append(got, v.ID)
		assert.Len(t, v.Speakers, 3)
	}
	assert.Equal(t, ids, got)
}

func TestAggregator_SpeakerWithDuplicateTagRows(t *testing.T) {
	a := New()
	conf := domain.Conference{ID: "c1"}
	sp := domain.Speaker{ID: "s1"}
	for i := 0; i < 4; i++ {
		a.Add(Row{Conference: conf, Speaker: &sp, TagName: strPtr("ai")})
	}
	views := a.Views()
	require.Len(t, views, 1)
	assert.Len(t, views[0].Speakers, 1)
	assert.Equal(t, []string{"ai"}, views[0].Tags)
}
