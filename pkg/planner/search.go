package planner

import (
	"time"

	"github.com/arnavshah/group-planner-go/pkg/models"
)

// search is the backtracking state of one GeneratePlans call
type search struct {
	p       *Planner
	counts  map[string]int
	partial []models.Session
	seen    map[string]bool
	plans   []models.Plan
}

// GeneratePlans enumerates every feasible, non-empty plan of the period.
// Each slot either hosts one session of one activity or stays free;
// identical plans reached through different paths are returned once.
func (p *Planner) GeneratePlans() []models.Plan {
	s := &search{
		p:      p,
		counts: make(map[string]int),
		seen:   make(map[string]bool),
	}
	s.visit(0)
	return s.plans
}

func (s *search) visit(i int) {
	if i == len(s.p.Slots) {
		s.emit()
		return
	}

	slot := s.p.Slots[i]
	for _, activity := range s.p.activities {
		s.branch(i, slot, activity)
	}
	s.visit(i + 1)
}

// branch schedules every feasible attendee set of activity at slot, largest first.
// Required participants and the missing-optional allowance are checked before
// any subset is built, and only exclusions within the allowance are enumerated.
func (s *search) branch(i int, slot time.Time, activity models.Activity) {
	var required, optional []models.Attendee
	absent := 0
	for _, part := range activity.Participants {
		ok := s.p.eligible(part.UserID, slot, s.counts)
		attendee := models.Attendee{
			UserID:   part.UserID,
			IfNeedBe: s.p.StatusAt(part.UserID, slot) == models.IfNeedBe,
		}
		switch {
		case !part.Optional && !ok:
			return
		case !part.Optional:
			required = append(required, attendee)
		case ok:
			optional = append(optional, attendee)
		default:
			absent++
		}
	}
	if absent > activity.MaxMissingOptionalParticipants {
		return
	}

	n := len(optional)
	maxExcluded := activity.MaxMissingOptionalParticipants - absent
	if maxExcluded > n {
		maxExcluded = n
	}
	for k := 0; k <= maxExcluded; k++ {
		if k == n && len(required) == 0 {
			break
		}
		combinations(n, k, func(excluded []int) {
			attendees := make([]models.Attendee, 0, len(required)+n-k)
			attendees = append(attendees, required...)
			next := 0
			for j, a := range optional {
				if next < len(excluded) && excluded[next] == j {
					next++
					continue
				}
				attendees = append(attendees, a)
			}
			s.place(i, models.Session{
				Slot:         slot,
				ActivityID:   activity.ID,
				ActivityName: activity.DisplayName(),
				Attendees:    attendees,
			})
		})
	}
}

// combinations calls fn with every ascending k-subset of 0..n-1 in lexicographic order
func combinations(n, k int, fn func(idx []int)) {
	idx := make([]int, k)
	for j := range idx {
		idx[j] = j
	}
	for {
		fn(idx)
		j := k - 1
		for j >= 0 && idx[j] == n-k+j {
			j--
		}
		if j < 0 {
			return
		}
		idx[j]++
		for l := j + 1; l < k; l++ {
			idx[l] = idx[l-1] + 1
		}
	}
}

func (s *search) place(i int, session models.Session) {
	for _, a := range session.Attendees {
		s.counts[a.UserID]++
	}
	s.partial = append(s.partial, session)

	s.visit(i + 1)

	s.partial = s.partial[:len(s.partial)-1]
	for _, a := range session.Attendees {
		s.counts[a.UserID]--
	}
}

func (s *search) emit() {
	if len(s.partial) == 0 {
		return
	}
	plan := models.Plan{Sessions: append([]models.Session(nil), s.partial...)}
	key := plan.Key()
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.plans = append(s.plans, plan)
}
