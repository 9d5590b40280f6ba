package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog([]Activity{
		{ID: "a", Name: "Board games", Participants: []Participant{{UserID: "u1"}, {UserID: "u2", Optional: true}}, MaxMissingOptionalParticipants: 1},
		{ID: "b", Participants: []Participant{{UserID: "u2"}, {UserID: "u3"}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"u1", "u2", "u3"}, c.People())

	b, ok := c.Activity("b")
	require.True(t, ok)
	assert.Equal(t, "b", b.DisplayName())
	_, ok = c.Activity("missing")
	assert.False(t, ok)
}

func TestNewCatalog_Rejects(t *testing.T) {
	cases := map[string][]Activity{
		"empty id":           {{Participants: []Participant{{UserID: "u1"}}}},
		"no participants":    {{ID: "a"}},
		"negative missing":   {{ID: "a", Participants: []Participant{{UserID: "u1"}}, MaxMissingOptionalParticipants: -1}},
		"duplicate person":   {{ID: "a", Participants: []Participant{{UserID: "u1"}, {UserID: "u1", Optional: true}}}},
		"empty person":       {{ID: "a", Participants: []Participant{{UserID: ""}}}},
		"duplicate activity": {{ID: "a", Participants: []Participant{{UserID: "u1"}}}, {ID: "a", Participants: []Participant{{UserID: "u2"}}}},
	}
	for name, activities := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewCatalog(activities)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidActivity))
			assert.True(t, IsValidation(err))
		})
	}
}

func TestCatalog_CopiesParticipants(t *testing.T) {
	parts := []Participant{{UserID: "u1"}}
	c, err := NewCatalog([]Activity{{ID: "a", Participants: parts}})
	require.NoError(t, err)
	parts[0].UserID = "changed"

	a, _ := c.Activity("a")
	assert.Equal(t, "u1", a.Participants[0].UserID)
}

func TestUserResponse(t *testing.T) {
	one := 1
	neg := -1
	slot := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)

	assert.Equal(t, DefaultSessionLimit, UserResponse{UserID: "u"}.Limit())
	assert.Equal(t, 1, UserResponse{UserID: "u", SessionLimit: &one}.Limit())

	assert.NoError(t, UserResponse{UserID: "u", Availability: []SlotAvailability{{Slot: slot, Status: IfNeedBe}}}.Validate())
	assert.ErrorIs(t, UserResponse{UserID: "u", SessionLimit: &neg}.Validate(), ErrInvalidResponse)
	assert.ErrorIs(t, UserResponse{UserID: "u", Availability: []SlotAvailability{{Slot: slot, Status: "MAYBE"}}}.Validate(), ErrInvalidResponse)
	assert.ErrorIs(t, ValidateResponses([]UserResponse{{UserID: "u"}, {UserID: "u"}}), ErrInvalidResponse)
}

func TestScoreCompare(t *testing.T) {
	base := Score{RegularAttendees: 3, IfNeedBeAttendees: 1, WellSpaced: true}

	assert.Equal(t, 0, base.Compare(base))
	assert.Equal(t, 1, base.Compare(Score{RegularAttendees: 2, IfNeedBeAttendees: 5, WellSpaced: true}))
	assert.Equal(t, -1, base.Compare(Score{RegularAttendees: 3, IfNeedBeAttendees: 2}))
	assert.Equal(t, 1, base.Compare(Score{RegularAttendees: 3, IfNeedBeAttendees: 1}))
}

func TestPlanKey_IgnoresOrder(t *testing.T) {
	s1 := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
	s2 := s1.Add(48 * time.Hour)
	a := Plan{Sessions: []Session{
		{Slot: s1, ActivityID: "a", Attendees: []Attendee{{UserID: "u1"}, {UserID: "u2"}}},
		{Slot: s2, ActivityID: "b", Attendees: []Attendee{{UserID: "u3", IfNeedBe: true}}},
	}}
	b := Plan{Sessions: []Session{
		{Slot: s2.In(time.FixedZone("X", 3600)), ActivityID: "b", Attendees: []Attendee{{UserID: "u3", IfNeedBe: true}}},
		{Slot: s1, ActivityID: "a", Attendees: []Attendee{{UserID: "u2"}, {UserID: "u1"}}},
	}}
	assert.Equal(t, a.Key(), b.Key())

	b.Sessions[0].Attendees[0].IfNeedBe = false
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestPlanKey_DistinguishesLookalikeIDs(t *testing.T) {
	slot := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
	maybe := Plan{Sessions: []Session{{Slot: slot, ActivityID: "a", Attendees: []Attendee{{UserID: "a", IfNeedBe: true}}}}}
	regular := Plan{Sessions: []Session{{Slot: slot, ActivityID: "a", Attendees: []Attendee{{UserID: "a?"}}}}}
	assert.NotEqual(t, maybe.Key(), regular.Key())

	joined := Plan{Sessions: []Session{{Slot: slot, ActivityID: "x", Attendees: []Attendee{{UserID: "u1,u2"}}}}}
	split := Plan{Sessions: []Session{{Slot: slot, ActivityID: "x", Attendees: []Attendee{{UserID: "u1"}, {UserID: "u2"}}}}}
	assert.NotEqual(t, joined.Key(), split.Key())
}
