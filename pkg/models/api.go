package models

import "time"

// SlotRule is one weekly recurrence, e.g. {"weekday": "tuesday", "time": "19:30"}
type SlotRule struct {
	Weekday string `json:"weekday"`
	Time    string `json:"time"`
}

// SlotRules describes how to derive the slots of a period
type SlotRules struct {
	Period   string     `json:"period"` // week or month
	Start    string     `json:"start"`  // YYYY-MM-DD
	Location string     `json:"location,omitempty"`
	Rules    []SlotRule `json:"rules"`
}

// PlanRequest is the data structure for the planning endpoints
type PlanRequest struct {
	Activities []Activity     `json:"activities"`
	Responses  []UserResponse `json:"responses"`
	Slots      []time.Time    `json:"slots,omitempty"`
	SlotRules  *SlotRules     `json:"slot_rules,omitempty"`
	Offset     int            `json:"offset"`
	Limit      int            `json:"limit"`
}

// RankedPlan is one entry of a ranked result window
type RankedPlan struct {
	Rank    int         `json:"rank"`
	Score   Score       `json:"score"`
	Summary PlanSummary `json:"summary"`
	Plan
}

// PlanResponse is the data structure for the planning result
type PlanResponse struct {
	Total  int          `json:"total"`
	Offset int          `json:"offset"`
	Slots  []time.Time  `json:"slots"`
	Plans  []RankedPlan `json:"plans"`
}

// ChoiceRequest records which plan a group settled on for a period
type ChoiceRequest struct {
	Period string `json:"period"`
	Rank   int    `json:"rank"`
	Plan   Plan   `json:"plan"`
}
