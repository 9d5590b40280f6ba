package planner

import (
	"sort"
	"time"

	"github.com/arnavshah/group-planner-go/pkg/models"
)

// Planner enumerates, filters and ranks the plans of one period.
// It only reads its inputs and keeps no state between calls.
type Planner struct {
	Catalog *models.Catalog
	Slots   []time.Time

	activities   []models.Activity
	availability map[string]map[int64]models.AvailabilityStatus
	limits       map[string]int
}

// NewPlanner validates the responses and builds the lookup tables for one period.
// Slots are sorted chronologically and deduplicated by instant.
func NewPlanner(catalog *models.Catalog, slots []time.Time, responses []models.UserResponse) (*Planner, error) {
	if err := models.ValidateResponses(responses); err != nil {
		return nil, err
	}
	normalized, err := NormalizeSlots(slots)
	if err != nil {
		return nil, err
	}

	p := &Planner{
		Catalog:      catalog,
		Slots:        normalized,
		activities:   catalog.Activities(),
		availability: make(map[string]map[int64]models.AvailabilityStatus, len(responses)),
		limits:       make(map[string]int, len(responses)),
	}
	for _, r := range responses {
		statuses := make(map[int64]models.AvailabilityStatus, len(r.Availability))
		for _, a := range r.Availability {
			statuses[models.SlotKey(a.Slot)] = a.Status
		}
		p.availability[r.UserID] = statuses
		p.limits[r.UserID] = r.Limit()
	}
	return p, nil
}

// NormalizeSlots returns the slots in chronological order without duplicate instants
func NormalizeSlots(slots []time.Time) ([]time.Time, error) {
	out := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		if s.IsZero() {
			return nil, &models.ValidationError{Kind: models.ErrInvalidSlot, Field: "slots", Reason: "zero time"}
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(out[j]) })

	deduped := out[:0]
	for i, s := range out {
		if i > 0 && s.Equal(deduped[len(deduped)-1]) {
			continue
		}
		deduped = append(deduped, s)
	}
	return deduped, nil
}

// StatusAt returns the answer of userID for slot; no answer means unavailable
func (p *Planner) StatusAt(userID string, slot time.Time) models.AvailabilityStatus {
	status, ok := p.availability[userID][models.SlotKey(slot)]
	if !ok {
		return models.Unavailable
	}
	return status
}

// Limit returns the session cap of userID for the period
func (p *Planner) Limit(userID string) int {
	if limit, ok := p.limits[userID]; ok {
		return limit
	}
	return models.DefaultSessionLimit
}

// Plans runs the whole pipeline and returns every optimal plan, best first
func (p *Planner) Plans() []models.Plan {
	return Rank(p.FilterOptimal(p.GeneratePlans()))
}

// eligible reports whether userID can join a session at slot given the sessions already counted
func (p *Planner) eligible(userID string, slot time.Time, counts map[string]int) bool {
	return p.StatusAt(userID, slot).CanAttend() && counts[userID] < p.Limit(userID)
}
