package planner

import (
	"sort"
	"time"

	"github.com/arnavshah/group-planner-go/pkg/models"
)

// minSpacingDays is the calendar-day gap every pair of consecutive sessions needs for a plan to count as well spaced
const minSpacingDays = 2

// ScorePlan computes the ranking key of a plan
func ScorePlan(plan models.Plan) models.Score {
	var score models.Score
	for _, s := range plan.Sessions {
		for _, a := range s.Attendees {
			if a.IfNeedBe {
				score.IfNeedBeAttendees++
			} else {
				score.RegularAttendees++
			}
		}
	}
	score.WellSpaced = true
	for _, gap := range dayGaps(plan) {
		if gap < minSpacingDays {
			score.WellSpaced = false
			break
		}
	}
	return score
}

// Rank orders plans best first. Ties keep their input order.
func Rank(plans []models.Plan) []models.Plan {
	type scored struct {
		plan  models.Plan
		score models.Score
	}
	items := make([]scored, len(plans))
	for i, plan := range plans {
		items[i] = scored{plan: plan, score: ScorePlan(plan)}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score.Compare(items[j].score) > 0
	})

	out := make([]models.Plan, len(items))
	for i, it := range items {
		out[i] = it.plan
	}
	return out
}

// dayGaps returns the calendar-day distance between chronologically adjacent sessions
func dayGaps(plan models.Plan) []int {
	slots := make([]time.Time, len(plan.Sessions))
	for i, s := range plan.Sessions {
		slots[i] = s.Slot
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })

	var gaps []int
	for i := 1; i < len(slots); i++ {
		gaps = append(gaps, calendarDays(slots[i-1], slots[i]))
	}
	return gaps
}

// calendarDays counts date changes from a to b, each read in its own location
func calendarDays(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
