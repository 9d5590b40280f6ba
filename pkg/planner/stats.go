package planner

import "github.com/arnavshah/group-planner-go/pkg/models"

// Summarize derives the presentation statistics of a plan. None of them affect ranking.
func Summarize(plan models.Plan, catalog *models.Catalog) models.PlanSummary {
	score := ScorePlan(plan)
	summary := models.PlanSummary{
		Sessions:          len(plan.Sessions),
		RegularAttendees:  score.RegularAttendees,
		IfNeedBeAttendees: score.IfNeedBeAttendees,
	}
	for _, s := range plan.Sessions {
		activity, ok := catalog.Activity(s.ActivityID)
		if !ok {
			continue
		}
		for _, part := range activity.Participants {
			if part.Optional && !s.Attends(part.UserID) {
				summary.MissingOptional++
			}
		}
	}
	for _, gap := range dayGaps(plan) {
		if gap == 1 {
			summary.DirectlyFollowingDays++
		}
	}
	return summary
}

// Window returns alternatives offset..offset+limit of a ranked list.
// A non-positive limit means everything from offset on.
func Window(plans []models.Plan, offset, limit int) []models.Plan {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(plans) {
		return nil
	}
	end := len(plans)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return plans[offset:end]
}
