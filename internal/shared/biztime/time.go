// Package biztime provides business timezone date arithmetic.
// Instants are stored in UTC; the business timezone only decides where a day starts.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is used when no timezone is configured.
	DefaultTimezone = "UTC"

	// DateLayout is the wire format for calendar dates.
	DateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init sets the business timezone. Only the first call has effect.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns midnight of t's business day, expressed in UTC.
func StartOfDay(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location()).UTC()
}

// StartOfDayAfter returns midnight of the business day n days after t's, expressed in UTC.
func StartOfDayAfter(t time.Time, n int) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day()+n, 0, 0, 0, 0, Location()).UTC()
}

// DaysBetween counts calendar days from the business day of from to that of to.
// The result is negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	f := from.In(Location())
	t := to.In(Location())
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(td.Sub(fd).Hours() / 24)
}

// AddMonths moves t forward by n calendar months in the business timezone.
// Day overflow normalizes forward, so Jan 31 + 1 month lands in early March.
func AddMonths(t time.Time, n int) time.Time {
	return t.In(Location()).AddDate(0, n, 0).UTC()
}

// ParseDateInBizTimezone parses YYYY-MM-DD as business-timezone midnight and returns it in UTC.
func ParseDateInBizTimezone(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// ParseFlexible accepts either a calendar date or an RFC3339 instant.
func ParseFlexible(s string) (time.Time, error) {
	if t, err := ParseDateInBizTimezone(s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

// FormatDate renders t as a business-timezone calendar date.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}
