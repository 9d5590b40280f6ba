package models

import (
	"fmt"
	"time"
)

// DefaultSessionLimit is the per-period session cap of a person without an explicit limit
const DefaultSessionLimit = 2

// AvailabilityStatus is a person's answer for one time slot
type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "AVAILABLE"
	IfNeedBe    AvailabilityStatus = "IF_NEED_BE"
	Unavailable AvailabilityStatus = "UNAVAILABLE"
)

// Valid reports whether s is one of the known statuses
func (s AvailabilityStatus) Valid() bool {
	switch s {
	case Available, IfNeedBe, Unavailable:
		return true
	}
	return false
}

// CanAttend reports whether a person with this status may be scheduled
func (s AvailabilityStatus) CanAttend() bool {
	return s == Available || s == IfNeedBe
}

// Participant is a person taking part in one activity
type Participant struct {
	UserID   string `json:"user_id"`
	Optional bool   `json:"optional"`
}

// Activity is a recurring group event with a fixed set of participants
type Activity struct {
	ID                             string        `json:"id"`
	Name                           string        `json:"name"`
	Participants                   []Participant `json:"participants"`
	MaxMissingOptionalParticipants int           `json:"max_missing_optional_participants"`
}

// Validate checks the structural rules of a single activity
func (a Activity) Validate() error {
	if a.ID == "" {
		return invalid(ErrInvalidActivity, "id", "must not be empty")
	}
	if len(a.Participants) == 0 {
		return invalid(ErrInvalidActivity, a.ID, "at least one participant is required")
	}
	if a.MaxMissingOptionalParticipants < 0 {
		return invalid(ErrInvalidActivity, a.ID, "max_missing_optional_participants must not be negative, got %d", a.MaxMissingOptionalParticipants)
	}
	seen := make(map[string]bool, len(a.Participants))
	for _, p := range a.Participants {
		if p.UserID == "" {
			return invalid(ErrInvalidActivity, a.ID, "participant user_id must not be empty")
		}
		if seen[p.UserID] {
			return invalid(ErrInvalidActivity, a.ID, "participant %s is listed more than once", p.UserID)
		}
		seen[p.UserID] = true
	}
	return nil
}

// OptionalCount returns the number of optional participants
func (a Activity) OptionalCount() int {
	n := 0
	for _, p := range a.Participants {
		if p.Optional {
			n++
		}
	}
	return n
}

// DisplayName falls back to the ID when no name is set
func (a Activity) DisplayName() string {
	if a.Name == "" {
		return a.ID
	}
	return a.Name
}

// Catalog is a validated, read-only set of activities
type Catalog struct {
	activities []Activity
	index      map[string]int
}

// NewCatalog validates the activities and takes a private copy of them
func NewCatalog(activities []Activity) (*Catalog, error) {
	c := &Catalog{
		activities: make([]Activity, 0, len(activities)),
		index:      make(map[string]int, len(activities)),
	}
	for _, a := range activities {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[a.ID]; dup {
			return nil, invalid(ErrInvalidActivity, a.ID, "duplicate activity id")
		}
		a.Participants = append([]Participant(nil), a.Participants...)
		c.index[a.ID] = len(c.activities)
		c.activities = append(c.activities, a)
	}
	return c, nil
}

// Activities returns the activities in catalog order
func (c *Catalog) Activities() []Activity {
	out := make([]Activity, len(c.activities))
	copy(out, c.activities)
	return out
}

// Activity looks an activity up by ID
func (c *Catalog) Activity(id string) (Activity, bool) {
	i, ok := c.index[id]
	if !ok {
		return Activity{}, false
	}
	return c.activities[i], true
}

// Len returns the number of activities
func (c *Catalog) Len() int {
	return len(c.activities)
}

// People returns every user ID that participates in at least one activity, in first-seen order
func (c *Catalog) People() []string {
	seen := make(map[string]bool)
	var people []string
	for _, a := range c.activities {
		for _, p := range a.Participants {
			if !seen[p.UserID] {
				seen[p.UserID] = true
				people = append(people, p.UserID)
			}
		}
	}
	return people
}

// SlotAvailability is one recorded answer of a person
type SlotAvailability struct {
	Slot   time.Time          `json:"slot"`
	Status AvailabilityStatus `json:"status"`
}

// UserResponse holds everything one person answered for a period
type UserResponse struct {
	UserID       string             `json:"user_id"`
	SessionLimit *int               `json:"session_limit,omitempty"`
	Availability []SlotAvailability `json:"availability"`
}

// Limit returns the effective session cap for the period
func (r UserResponse) Limit() int {
	if r.SessionLimit == nil {
		return DefaultSessionLimit
	}
	return *r.SessionLimit
}

// Validate checks the response for unusable values
func (r UserResponse) Validate() error {
	if r.UserID == "" {
		return invalid(ErrInvalidResponse, "user_id", "must not be empty")
	}
	if r.SessionLimit != nil && *r.SessionLimit < 0 {
		return invalid(ErrInvalidResponse, r.UserID, "session_limit must not be negative, got %d", *r.SessionLimit)
	}
	for _, a := range r.Availability {
		if a.Slot.IsZero() {
			return invalid(ErrInvalidResponse, r.UserID, "availability entry without slot")
		}
		if !a.Status.Valid() {
			return invalid(ErrInvalidResponse, r.UserID, "unknown status %q at %s", a.Status, a.Slot.Format(time.RFC3339))
		}
	}
	return nil
}

// ValidateResponses validates every response and rejects duplicate users
func ValidateResponses(responses []UserResponse) error {
	seen := make(map[string]bool, len(responses))
	for _, r := range responses {
		if err := r.Validate(); err != nil {
			return err
		}
		if seen[r.UserID] {
			return invalid(ErrInvalidResponse, r.UserID, "duplicate response")
		}
		seen[r.UserID] = true
	}
	return nil
}

// SlotKey is the identity of a time slot, independent of its location
func SlotKey(t time.Time) int64 {
	return t.UnixNano()
}

// FormatSlot renders a slot for logs and exports
func FormatSlot(t time.Time) string {
	return fmt.Sprintf("%s %s", t.Weekday().String()[:3], t.Format("2006-01-02 15:04"))
}
