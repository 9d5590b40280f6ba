package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Attendee is a person assigned to a session
type Attendee struct {
	UserID   string `json:"user_id"`
	IfNeedBe bool   `json:"if_need_be"`
}

// Session is one occurrence of an activity at one slot
type Session struct {
	Slot         time.Time  `json:"slot"`
	ActivityID   string     `json:"activity_id"`
	ActivityName string     `json:"activity_name"`
	Attendees    []Attendee `json:"attendees"`
}

// Attends reports whether userID is an attendee of the session
func (s Session) Attends(userID string) bool {
	for _, a := range s.Attendees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// key identifies the session independently of attendee order
func (s Session) key() string {
	ids := make([]string, len(s.Attendees))
	for i, a := range s.Attendees {
		ids[i] = strconv.Quote(a.UserID) + ":" + strconv.FormatBool(a.IfNeedBe)
	}
	sort.Strings(ids)
	return strconv.FormatInt(SlotKey(s.Slot), 10) + "|" + strconv.Quote(s.ActivityID) + "|" + strings.Join(ids, ",")
}

// Plan is a non-conflicting assignment of sessions across one period, in chronological order
type Plan struct {
	Sessions []Session `json:"sessions"`
}

// Key identifies the plan by its set of sessions
func (p Plan) Key() string {
	keys := make([]string, len(p.Sessions))
	for i, s := range p.Sessions {
		keys[i] = s.key()
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// IsEmpty reports whether no session is scheduled
func (p Plan) IsEmpty() bool {
	return len(p.Sessions) == 0
}

// SessionAt returns the session scheduled at slot, if any
func (p Plan) SessionAt(slot time.Time) (Session, bool) {
	k := SlotKey(slot)
	for _, s := range p.Sessions {
		if SlotKey(s.Slot) == k {
			return s, true
		}
	}
	return Session{}, false
}

// AttendanceCounts returns the number of sessions each person attends
func (p Plan) AttendanceCounts() map[string]int {
	counts := make(map[string]int)
	for _, s := range p.Sessions {
		for _, a := range s.Attendees {
			counts[a.UserID]++
		}
	}
	return counts
}

// Score orders plans; higher is better
type Score struct {
	RegularAttendees  int  `json:"regular_attendees"`
	IfNeedBeAttendees int  `json:"if_need_be_attendees"`
	WellSpaced        bool `json:"well_spaced"`
}

// Compare returns 1 if s ranks above o, -1 if below and 0 on a tie
func (s Score) Compare(o Score) int {
	switch {
	case s.RegularAttendees != o.RegularAttendees:
		return sign(s.RegularAttendees - o.RegularAttendees)
	case s.IfNeedBeAttendees != o.IfNeedBeAttendees:
		return sign(s.IfNeedBeAttendees - o.IfNeedBeAttendees)
	case s.WellSpaced != o.WellSpaced:
		if s.WellSpaced {
			return 1
		}
		return -1
	}
	return 0
}

func sign(n int) int {
	if n > 0 {
		return 1
	}
	if n < 0 {
		return -1
	}
	return 0
}

// PlanSummary holds statistics derived from a plan for presentation only
type PlanSummary struct {
	Sessions              int `json:"sessions"`
	RegularAttendees      int `json:"regular_attendees"`
	IfNeedBeAttendees     int `json:"if_need_be_attendees"`
	MissingOptional       int `json:"missing_optional"`
	DirectlyFollowingDays int `json:"directly_following_days"`
}
