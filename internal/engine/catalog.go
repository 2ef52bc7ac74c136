package engine

import (
	"fmt"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// Catalog is the set of active milestones, unique by year count, in insertion order.
// The zero value is an empty catalog using EnglishLabel.
type Catalog struct {
	Rule  LabelRule
	items []MilestoneType
}

// NewCatalog returns an empty catalog labelling milestones with rule.
func NewCatalog(rule LabelRule) *Catalog {
	return &Catalog{Rule: rule}
}

// DefaultCatalog returns the catalog a new session starts with (1, 5, 10, 15, 25, 30, 40, 50 years).
func DefaultCatalog(rule LabelRule) *Catalog {
	c := NewCatalog(rule)
	for _, years := range config.DefaultMilestoneYears {
		m, _ := NewMilestone(years, rule)
		c.items = append(c.items, m)
	}
	return c
}

// Add inserts m, rejecting non-positive years and duplicates.
func (c *Catalog) Add(m MilestoneType) error {
	if m.Years <= 0 {
		return invalid(fmt.Sprintf("%s: got %d", config.ErrMilestoneYears, m.Years))
	}
	if c.Has(m.Years) {
		return fmt.Errorf("%w: %q", ErrDuplicateMilestone, m.Label)
	}
	c.items = append(c.items, m)
	return nil
}

// AddLabel parses label and adds the resulting milestone.
func (c *Catalog) AddLabel(label string) (MilestoneType, error) {
	m, err := ParseMilestone(label, c.Rule)
	if err != nil {
		return MilestoneType{}, err
	}
	if err := c.Add(m); err != nil {
		return MilestoneType{}, err
	}
	return m, nil
}

// Remove deletes the milestone with the given year count and reports whether it existed.
func (c *Catalog) Remove(years int) bool {
	for i, m := range c.items {
		if m.Years == years {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveLabel parses label and removes the matching milestone.
func (c *Catalog) RemoveLabel(label string) (bool, error) {
	m, err := ParseMilestone(label, c.Rule)
	if err != nil {
		return false, err
	}
	return c.Remove(m.Years), nil
}

// Has reports whether a milestone with this year count exists.
func (c *Catalog) Has(years int) bool {
	for _, m := range c.items {
		if m.Years == years {
			return true
		}
	}
	return false
}

// Len returns the number of milestones.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Milestones returns a copy of the milestones in insertion order.
func (c *Catalog) Milestones() []MilestoneType {
	out := make([]MilestoneType, len(c.items))
	copy(out, c.items)
	return out
}

// Subset returns the milestones whose year count is listed, in catalog order.
// Unknown year counts are ignored.
func (c *Catalog) Subset(years ...int) []MilestoneType {
	want := make(map[int]bool, len(years))
	for _, y := range years {
		want[y] = true
	}
	var out []MilestoneType
	for _, m := range c.items {
		if want[m.Years] {
			out = append(out, m)
		}
	}
	return out
}

// Labels returns the milestone labels in catalog order.
func (c *Catalog) Labels() []string {
	out := make([]string, len(c.items))
	for i, m := range c.items {
		out[i] = m.Label
	}
	return out
}

// Clone returns an independent copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	return &Catalog{Rule: c.Rule, items: c.Milestones()}
}
