// Package feed renders anniversaries as an iCalendar document.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-anniversary/internal/config"
	"github.com/tartampluch/go-anniversary/internal/engine"
)

// uidSpace namespaces event UIDs so they never collide with other producers.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// Window is the span of months covered by a feed, relative to the current month.
type Window struct {
	Before int
	After  int
}

// DefaultWindow is one month back and eleven ahead, a rolling year.
func DefaultWindow() Window {
	return Window{Before: config.DefaultWindowBefore, After: config.DefaultWindowAfter}
}

// Months lists the periods of w around center, oldest first.
func (w Window) Months(center engine.Period) []engine.Period {
	before, after := max(w.Before, 0), max(w.After, 0)
	months := make([]engine.Period, 0, before+after+1)
	for i := -before; i <= after; i++ {
		months = append(months, center.Add(i))
	}
	return months
}

// Generator builds anniversary feeds from a session.
type Generator struct {
	Clock engine.Clock // Falls back to the session clock when nil.

	// FormatSummary lets the caller inject localized event titles.
	FormatSummary func(name string, m engine.MilestoneType) string

	// CalendarName is the X-WR-CALNAME shown by clients. Empty means config.ICalCalName.
	CalendarName string

	// Only restricts the feed to these milestone years. Empty means the whole catalog.
	Only []int
}

// Build computes every anniversary falling in the window around the current month
// and encodes them. It returns the document and the number of events in it.
func (g *Generator) Build(ctx context.Context, s *engine.Session, w Window) ([]byte, int, error) {
	start := time.Now()
	clock := g.Clock
	if clock == nil {
		clock = s.Clock
	}
	now := clock.Now()

	catalog := s.Catalog.Milestones()
	if len(g.Only) > 0 {
		catalog = s.Catalog.Subset(g.Only...)
	}
	people := s.Roster.People()
	months := w.Months(engine.CurrentPeriod(clock))

	var events []engine.AnniversaryEvent
	for _, p := range months {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		found, err := engine.Compute(people, p, catalog)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, found...)
	}

	data, err := g.encode(events, now)
	if err != nil {
		return nil, 0, err
	}

	slog.Info(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompFeed,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyPeople, len(people)),
			slog.Int(config.LogKeyMonths, len(months)),
			slog.Int(config.LogKeyEvents, len(events)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return data, len(events), nil
}

func (g *Generator) encode(events []engine.AnniversaryEvent, now time.Time) ([]byte, error) {
	if len(events) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	calName := g.CalendarName
	if calName == "" {
		calName = config.ICalCalName
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, calName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refresh := ical.NewProp(config.PropRefresh)
	refresh.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refresh)

	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(now.UTC())

	for _, e := range events {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, EventUID(e))
		event.Props.SetText(config.PropSummary, g.summary(e))
		event.Props.SetText(config.PropCategories, config.ICalCategory)
		event.Props.Set(stamp)

		// All-day event: the anniversary is a civil date, not an instant.
		dtStart := ical.NewProp(config.PropDTStart)
		dtStart.SetDate(e.AnniversaryDate)
		event.Props.Set(dtStart)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) summary(e engine.AnniversaryEvent) string {
	if g.FormatSummary != nil {
		return g.FormatSummary(e.Name, e.Milestone)
	}
	return fmt.Sprintf(config.FallbackSummary, e.Name, e.Milestone.Label)
}

// EventUID is stable across rebuilds: the same person, milestone and date
// always yield the same UID, so clients update events instead of duplicating them.
func EventUID(e engine.AnniversaryEvent) string {
	input := fmt.Sprintf(config.FormatUIDInput, e.Name, e.Years, engine.FormatDate(e.AnniversaryDate))
	return uuid.NewSHA1(uidSpace, []byte(input)).String()
}
