package planner

import (
	"time"

	"github.com/arnavshah/group-planner-go/pkg/models"
)

// FilterOptimal drops every dominated plan, keeping the input order of the rest
func (p *Planner) FilterOptimal(plans []models.Plan) []models.Plan {
	out := make([]models.Plan, 0, len(plans))
	for _, plan := range plans {
		if !p.IsDominated(plan) {
			out = append(out, plan)
		}
	}
	return out
}

// IsDominated reports whether someone below their session cap was left out of
// a slot they were available for and could have been used at: either as an extra
// attendee of the session scheduled there, or in a feasible session of one of
// their activities at a free slot.
func (p *Planner) IsDominated(plan models.Plan) bool {
	counts := plan.AttendanceCounts()
	scheduled := make(map[int64]models.Session, len(plan.Sessions))
	for _, s := range plan.Sessions {
		scheduled[models.SlotKey(s.Slot)] = s
	}

	for _, slot := range p.Slots {
		if session, ok := scheduled[models.SlotKey(slot)]; ok {
			activity, found := p.Catalog.Activity(session.ActivityID)
			if !found {
				continue
			}
			for _, part := range activity.Participants {
				if !session.Attends(part.UserID) && p.eligible(part.UserID, slot, counts) {
					return true
				}
			}
			continue
		}
		for _, activity := range p.activities {
			if p.couldJoin(activity, slot, counts) {
				return true
			}
		}
	}
	return false
}

// couldJoin reports whether activity can be scheduled at slot on top of counts
// with at least one participant who still has spare capacity
func (p *Planner) couldJoin(activity models.Activity, slot time.Time, counts map[string]int) bool {
	absent, present := 0, 0
	for _, part := range activity.Participants {
		switch {
		case p.eligible(part.UserID, slot, counts):
			present++
		case !part.Optional:
			return false
		default:
			absent++
		}
	}
	return present > 0 && absent <= activity.MaxMissingOptionalParticipants
}
