package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-anniversary/internal/config"
)

// Date returns the civil date y-m-d as a time at 00:00 UTC.
// Dates carry no timezone meaning anywhere in this package.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf strips the clock and location from t, keeping its wall-clock date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// IsLeapYear reports whether year has a February 29 in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// ParseDate reads a start date in any of the layouts produced by the snapshot
// export, spreadsheet CSV exports, and vCard ANNIVERSARY values.
// Year-less vCard dates (--MM-DD) are rejected because milestones need a year.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New(config.ErrDateRequired)
	}

	layouts := []string{
		config.DateFormatISO,
		config.DateFormatISOTime,
		config.DateFormatRFC3339,
		config.DateFormatBasic,
		config.DateFormatSlashISO,
		config.DateFormatUS,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOf(t), nil
		}
	}

	for _, layout := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if _, err := time.Parse(layout, value); err == nil {
			return time.Time{}, fmt.Errorf("%s: %s: %q", config.ErrDateParse, config.ErrDateNoYear, value)
		}
	}

	return time.Time{}, fmt.Errorf("%s: %q", config.ErrDateParse, value)
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d time.Time) string {
	return d.Format(config.DateFormatISO)
}
