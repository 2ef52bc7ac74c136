package engine

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// Change tells the caller which part of a Session a mutation touched,
// so it can decide what to re-render.
type Change uint8

const (
	ChangeRoster Change = 1 << iota
	ChangeCatalog
	ChangePeriod

	ChangeNone Change = 0
)

// Has reports whether c includes other.
func (c Change) Has(other Change) bool {
	return c&other != 0
}

// Session is the state owned by one user run: who is tracked, which milestones
// count, and which month is being looked at. It is not safe for concurrent use.
type Session struct {
	Roster  *Roster
	Catalog *Catalog
	Period  Period
	Clock   Clock
}

// NewSession starts with an empty roster, the default catalog and the current month.
func NewSession(clock Clock, rule LabelRule) *Session {
	if clock == nil {
		clock = RealClock{}
	}
	return &Session{
		Roster:  NewRoster(),
		Catalog: DefaultCatalog(rule),
		Period:  CurrentPeriod(clock),
		Clock:   clock,
	}
}

func (s *Session) log() *slog.Logger {
	return slog.With(config.LogKeyComponent, config.CompSession)
}

// AddPerson validates and adds (or replaces) a person.
func (s *Session) AddPerson(name string, start time.Time) (Change, error) {
	p, err := NewPerson(name, start)
	if err != nil {
		return ChangeNone, err
	}
	s.Roster.Put(p)
	s.log().Debug(config.MsgPersonAdded,
		config.LogKeyName, p.Name,
		config.LogKeyValue, FormatDate(p.StartDate))
	return ChangeRoster, nil
}

// RemovePerson deletes a person; removing an unknown name changes nothing.
func (s *Session) RemovePerson(name string) Change {
	if !s.Roster.Remove(name) {
		return ChangeNone
	}
	s.log().Debug(config.MsgPersonRemoved, config.LogKeyName, name)
	return ChangeRoster
}

// ResetRoster removes everybody.
func (s *Session) ResetRoster() Change {
	if s.Roster.Len() == 0 {
		return ChangeNone
	}
	s.Roster.Reset()
	s.log().Debug(config.MsgRosterReset)
	return ChangeRoster
}

// ImportPeople adds a batch of already-validated people.
func (s *Session) ImportPeople(people []Person) Change {
	if len(people) == 0 {
		return ChangeNone
	}
	for _, p := range people {
		s.Roster.Put(p)
	}
	s.log().Info(config.MsgImported, config.LogKeyCount, len(people))
	return ChangeRoster
}

// AddMilestone parses label and adds it to the catalog.
func (s *Session) AddMilestone(label string) (Change, error) {
	m, err := s.Catalog.AddLabel(label)
	if err != nil {
		return ChangeNone, err
	}
	s.log().Debug(config.MsgMilestoneAdd,
		config.LogKeyLabel, m.Label,
		config.LogKeyYears, m.Years)
	return ChangeCatalog, nil
}

// RemoveMilestones removes every listed label. All labels are validated first;
// on error the catalog is untouched.
func (s *Session) RemoveMilestones(labels ...string) (Change, error) {
	years := make([]int, 0, len(labels))
	for _, label := range labels {
		m, err := ParseMilestone(label, s.Catalog.Rule)
		if err != nil {
			return ChangeNone, err
		}
		years = append(years, m.Years)
	}

	change := ChangeNone
	for _, y := range years {
		if s.Catalog.Remove(y) {
			change = ChangeCatalog
			s.log().Debug(config.MsgMilestoneDel, config.LogKeyYears, y)
		}
	}
	return change, nil
}

// SetPeriod moves to p.
func (s *Session) SetPeriod(p Period) (Change, error) {
	if err := p.Validate(); err != nil {
		return ChangeNone, err
	}
	if p == s.Period {
		return ChangeNone, nil
	}
	s.Period = p
	s.log().Debug(config.MsgPeriodChanged, config.LogKeyPeriod, p.String())
	return ChangePeriod, nil
}

// NextMonth advances the target period by one month.
func (s *Session) NextMonth() Change {
	c, _ := s.SetPeriod(s.Period.Next())
	return c
}

// PrevMonth moves the target period back one month.
func (s *Session) PrevMonth() Change {
	c, _ := s.SetPeriod(s.Period.Prev())
	return c
}

// CurrentMonth resets the target period to the clock's month.
func (s *Session) CurrentMonth() Change {
	c, _ := s.SetPeriod(CurrentPeriod(s.Clock))
	return c
}

// Anniversaries computes the events of the target period over the full catalog.
func (s *Session) Anniversaries() ([]AnniversaryEvent, error) {
	return Compute(s.Roster.People(), s.Period, s.Catalog.Milestones())
}

// AnniversariesFor restricts the computation to the listed milestone years.
// No years means the full catalog.
func (s *Session) AnniversariesFor(years ...int) ([]AnniversaryEvent, error) {
	if len(years) == 0 {
		return s.Anniversaries()
	}
	return Compute(s.Roster.People(), s.Period, s.Catalog.Subset(years...))
}

// Export writes the session snapshot document.
func (s *Session) Export(w io.Writer) error {
	return EncodeSnapshot(w, s.Roster, s.Catalog)
}

// Import replaces the roster and/or catalog from a snapshot document.
// Fields missing from the document are left as they are. On error nothing changes.
func (s *Session) Import(r io.Reader) (Change, error) {
	snap, err := DecodeSnapshot(r, s.Catalog.Rule)
	if err != nil {
		return ChangeNone, err
	}

	change := ChangeNone
	if snap.Roster != nil {
		s.Roster = snap.Roster
		change |= ChangeRoster
	}
	if snap.Catalog != nil {
		s.Catalog = snap.Catalog
		change |= ChangeCatalog
	}

	s.log().Info(config.MsgSessionLoaded,
		config.LogKeyPeople, s.Roster.Len(),
		config.LogKeyCount, s.Catalog.Len())
	return change, nil
}

// String summarises the session for logs.
func (s *Session) String() string {
	return fmt.Sprintf("%s: %d people, %d milestones", s.Period, s.Roster.Len(), s.Catalog.Len())
}
