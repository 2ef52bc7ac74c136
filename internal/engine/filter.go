package engine

import (
	"time"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// AnniversaryEvent is one milestone of one person, derived for a query and never stored.
type AnniversaryEvent struct {
	Name            string
	AnniversaryDate time.Time
	Milestone       MilestoneType
	Years           int
}

// AnniversaryDate advances start by years.
// A February 29 start falls back to February 28 when the target year has no leap day;
// every other date keeps its month and day.
func AnniversaryDate(start time.Time, years int) time.Time {
	targetYear := start.Year() + years

	if start.Month() == config.LeapMonth && start.Day() == config.LeapDay {
		if IsLeapYear(targetYear) {
			return Date(targetYear, config.LeapMonth, config.LeapDay)
		}
		return Date(targetYear, config.LeapMonth, config.LeapFallbackDay)
	}

	return Date(targetYear, start.Month(), start.Day())
}

// Candidates returns the anniversary of every person for every milestone, unfiltered,
// in roster then catalog order. Milestones sharing a year count are considered once
// (first label wins), so the result holds exactly len(roster) x distinct(catalog) events.
func Candidates(roster []Person, catalog []MilestoneType) []AnniversaryEvent {
	milestones := distinct(catalog)
	if len(roster) == 0 || len(milestones) == 0 {
		return nil
	}

	out := make([]AnniversaryEvent, 0, len(roster)*len(milestones))
	for _, p := range roster {
		for _, m := range milestones {
			out = append(out, AnniversaryEvent{
				Name:            p.Name,
				AnniversaryDate: AnniversaryDate(p.StartDate, m.Years),
				Milestone:       m,
				Years:           m.Years,
			})
		}
	}
	return out
}

// Compute returns the anniversaries falling inside period.
// It is pure: the inputs are not modified and nothing is retained.
// An invalid period fails with ErrInvalidArgument; empty inputs yield an empty result.
func Compute(roster []Person, period Period, catalog []MilestoneType) ([]AnniversaryEvent, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	var out []AnniversaryEvent
	for _, e := range Candidates(roster, catalog) {
		if period.Contains(e.AnniversaryDate) {
			out = append(out, e)
		}
	}
	return out, nil
}

func distinct(catalog []MilestoneType) []MilestoneType {
	seen := make(map[int]bool, len(catalog))
	out := make([]MilestoneType, 0, len(catalog))
	for _, m := range catalog {
		if seen[m.Years] {
			continue
		}
		seen[m.Years] = true
		out = append(out, m)
	}
	return out
}
