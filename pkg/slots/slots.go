package slots

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arnavshah/group-planner-go/pkg/models"
)

// PeriodKind is the length of a planning period
type PeriodKind string

const (
	Week  PeriodKind = "week"
	Month PeriodKind = "month"
)

// Rule is a weekly recurring time of day
type Rule struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

// Period is the date range slots are generated for
type Period struct {
	Kind  PeriodKind
	Start time.Time
}

// Bounds returns the first day of the period and the first day after it, in loc.
// A week starts on Start; a month starts on the first of Start's month.
func (p Period) Bounds(loc *time.Location) (time.Time, time.Time) {
	y, m, d := p.Start.Date()
	if p.Kind == Month {
		from := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return from, from.AddDate(0, 1, 0)
	}
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 7)
}

// Generate evaluates the rules over the period in loc.
// The result is chronological and holds every instant once.
func Generate(period Period, rules []Rule, loc *time.Location) []time.Time {
	from, to := period.Bounds(loc)
	seen := make(map[int64]bool)
	var out []time.Time
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		for _, r := range rules {
			if day.Weekday() != r.Weekday {
				continue
			}
			slot := time.Date(day.Year(), day.Month(), day.Day(), r.Hour, r.Minute, 0, 0, loc)
			if key := models.SlotKey(slot); !seen[key] {
				seen[key] = true
				out = append(out, slot)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Resolve returns the slots of a planning request: the explicit list, or the
// slots generated from rules. Giving both is rejected.
func Resolve(explicit []time.Time, rules *models.SlotRules) ([]time.Time, error) {
	switch {
	case len(explicit) > 0 && rules != nil:
		return nil, invalid("slots", "give either slots or slot_rules, not both")
	case rules != nil:
		return FromRequest(*rules)
	}
	return explicit, nil
}

// FromRequest parses the JSON rule set and generates its slots
func FromRequest(req models.SlotRules) ([]time.Time, error) {
	loc := time.UTC
	if req.Location != "" {
		l, err := time.LoadLocation(req.Location)
		if err != nil {
			return nil, invalid("location", "unknown time zone %q", req.Location)
		}
		loc = l
	}

	kind := PeriodKind(strings.ToLower(req.Period))
	if kind != Week && kind != Month {
		return nil, invalid("period", "must be week or month, got %q", req.Period)
	}
	start, err := time.ParseInLocation("2006-01-02", req.Start, loc)
	if err != nil {
		return nil, invalid("start", "expected YYYY-MM-DD, got %q", req.Start)
	}

	rules := make([]Rule, 0, len(req.Rules))
	for _, r := range req.Rules {
		rule, err := ParseRule(r.Weekday, r.Time)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return Generate(Period{Kind: kind, Start: start}, rules, loc), nil
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseRule parses a weekday name and an HH:MM time of day
func ParseRule(weekday, clock string) (Rule, error) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(weekday))]
	if !ok {
		return Rule{}, invalid("weekday", "unknown weekday %q", weekday)
	}
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return Rule{}, invalid("time", "expected HH:MM, got %q", clock)
	}
	return Rule{Weekday: wd, Hour: t.Hour(), Minute: t.Minute()}, nil
}

func invalid(field, format string, args ...any) error {
	return &models.ValidationError{Kind: models.ErrInvalidSlot, Field: field, Reason: fmt.Sprintf(format, args...)}
}
