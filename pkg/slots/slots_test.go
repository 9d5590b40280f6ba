package slots

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/group-planner-go/pkg/models"
)

func TestGenerate_Week(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // Monday
	got := Generate(Period{Kind: Week, Start: start}, []Rule{
		{Weekday: time.Friday, Hour: 18},
		{Weekday: time.Monday, Hour: 19, Minute: 30},
		{Weekday: time.Monday, Hour: 19, Minute: 30},
	}, time.UTC)

	assert.Equal(t, []time.Time{
		time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 18, 0, 0, 0, time.UTC),
	}, got)
}

func TestGenerate_Month(t *testing.T) {
	start := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	got := Generate(Period{Kind: Month, Start: start}, []Rule{
		{Weekday: time.Tuesday, Hour: 20},
		{Weekday: time.Thursday, Hour: 20},
	}, time.UTC)

	require.Len(t, got, 9)
	assert.Equal(t, time.Date(2026, 3, 3, 20, 0, 0, 0, time.UTC), got[0])
	assert.Equal(t, time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC), got[8])
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Before(got[i]))
	}
}

func TestFromRequest_KeepsLocalTimeAcrossDST(t *testing.T) {
	got, err := FromRequest(models.SlotRules{
		Period:   "week",
		Start:    "2026-03-26",
		Location: "Europe/Berlin",
		Rules: []models.SlotRule{
			{Weekday: "Thursday", Time: "19:00"},
			{Weekday: "mon", Time: "19:00"},
		},
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2026, 3, 26, 18, 0, 0, 0, time.UTC), got[0].UTC())
	assert.Equal(t, time.Date(2026, 3, 30, 17, 0, 0, 0, time.UTC), got[1].UTC())
}

func TestFromRequest_Rejects(t *testing.T) {
	cases := map[string]models.SlotRules{
		"period":   {Period: "year", Start: "2026-03-02"},
		"start":    {Period: "week", Start: "02.03.2026"},
		"location": {Period: "week", Start: "2026-03-02", Location: "Mars/Olympus"},
		"weekday":  {Period: "week", Start: "2026-03-02", Rules: []models.SlotRule{{Weekday: "funday", Time: "10:00"}}},
		"time":     {Period: "week", Start: "2026-03-02", Rules: []models.SlotRule{{Weekday: "monday", Time: "25:00"}}},
	}
	for field, req := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := FromRequest(req)
			require.ErrorIs(t, err, models.ErrInvalidSlot)

			var ve *models.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, field, ve.Field)
		})
	}
}

func TestResolve(t *testing.T) {
	explicit := []time.Time{time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)}
	rules := &models.SlotRules{Period: "week", Start: "2026-03-02", Rules: []models.SlotRule{{Weekday: "tue", Time: "20:00"}}}

	got, err := Resolve(explicit, nil)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)

	got, err = Resolve(nil, rules)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Tuesday, got[0].Weekday())

	_, err = Resolve(explicit, rules)
	require.ErrorIs(t, err, models.ErrInvalidSlot)
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "slots", ve.Field)
}
