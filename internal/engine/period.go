package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// Period is the (year, month) window an anniversary query is scoped to.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod validates month and returns the period.
func NewPeriod(year int, month time.Month) (Period, error) {
	p := Period{Year: year, Month: month}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// CurrentPeriod returns the month the clock is in.
func CurrentPeriod(c Clock) Period {
	return PeriodOf(c.Now())
}

// ParsePeriod reads a YYYY-MM string.
func ParsePeriod(value string) (Period, error) {
	t, err := time.Parse(config.PeriodFormat, strings.TrimSpace(value))
	if err != nil {
		return Period{}, invalid(fmt.Sprintf("%s: %q", config.ErrPeriodParse, value))
	}
	return PeriodOf(t), nil
}

// Validate fails with ErrInvalidArgument when the month is outside 1..12.
func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return invalid(fmt.Sprintf("%s: got %d", config.ErrInvalidMonth, int(p.Month)))
	}
	return nil
}

// Add moves the period by n months; n may be negative.
func (p Period) Add(n int) Period {
	idx := p.Year*config.MonthsPerYear + int(p.Month-1) + n
	year := idx / config.MonthsPerYear
	month := idx % config.MonthsPerYear
	if month < 0 {
		month += config.MonthsPerYear
		year--
	}
	return Period{Year: year, Month: time.Month(month + 1)}
}

// Next returns the following month.
func (p Period) Next() Period { return p.Add(1) }

// Prev returns the preceding month.
func (p Period) Prev() Period { return p.Add(-1) }

// Contains reports whether d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	return d.Year() == p.Year && d.Month() == p.Month
}

// Start returns the first day of the period.
func (p Period) Start() time.Time {
	return Date(p.Year, p.Month, 1)
}

// String renders the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Display renders the period as "January 2006".
func (p Period) Display() string {
	return p.Start().Format(config.PeriodDisplay)
}
