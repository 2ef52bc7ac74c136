package engine

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// MilestoneType is a named interval, in whole years, after which an anniversary is recognized.
type MilestoneType struct {
	Years int
	Label string
}

// LabelRule renders the stored label for a year count.
// Stored labels round-trip through snapshots, so they stay in the "N Years" form;
// translated display labels are produced at output time.
type LabelRule func(years int) string

// EnglishLabel is the default rule: "1 Year", "5 Years".
func EnglishLabel(years int) string {
	unit := config.MilestoneUnitPlural
	if years == 1 {
		unit = config.MilestoneUnitSingle
	}
	return fmt.Sprintf(config.FormatMilestoneLabel, years, unit)
}

// NewMilestone is the validated constructor. A nil rule means EnglishLabel.
func NewMilestone(years int, rule LabelRule) (MilestoneType, error) {
	if years <= 0 {
		return MilestoneType{}, invalid(fmt.Sprintf("%s: got %d", config.ErrMilestoneYears, years))
	}
	if rule == nil {
		rule = EnglishLabel
	}
	return MilestoneType{Years: years, Label: rule(years)}, nil
}

var milestoneLabelPattern = regexp.MustCompile(`^\s*(\d+)\s+(?i:years?)\s*$`)

// ParseMilestone accepts "<positive integer> Year" or "<positive integer> Years"
// and normalizes the label through rule, so "20 Year" and "20 Years" are the same milestone.
func ParseMilestone(label string, rule LabelRule) (MilestoneType, error) {
	m := milestoneLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return MilestoneType{}, invalid(fmt.Sprintf("%s: %q", config.ErrMilestoneLabel, label))
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return MilestoneType{}, invalid(fmt.Sprintf("%s: %q", config.ErrMilestoneLabel, label))
	}
	return NewMilestone(years, rule)
}

// String returns the label.
func (m MilestoneType) String() string {
	return m.Label
}
