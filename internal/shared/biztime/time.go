// Package biztime holds the business-timezone helpers. Storage and transport
// use UTC; the business timezone only decides calendar boundaries such as
// "which day is this holiday date" or "which month was this created in".
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DateLayout is the wire format of holiday and day-off dates.
const DateLayout = "2006-01-02"

var (
	bizLocation   *time.Location
	bizLocationMu sync.RWMutex
)

// Init sets the business timezone. An empty tz means UTC.
func Init(tz string) error {
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("load business timezone %q: %w", tz, err)
	}
	bizLocationMu.Lock()
	bizLocation = loc
	bizLocationMu.Unlock()
	return nil
}

// Location returns the business timezone, UTC when Init was never called.
func Location() *time.Location {
	bizLocationMu.RLock()
	defer bizLocationMu.RUnlock()
	if bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses a YYYY-MM-DD string as midnight in the business timezone.
// Values carrying a time part (RFC3339) are accepted and truncated to their
// business-timezone day.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout, s, Location()); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return StartOfDay(t), nil
}

// StartOfDay returns midnight of t's business-timezone day.
func StartOfDay(t time.Time) time.Time {
	b := t.In(Location())
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, Location())
}

// FormatDate renders t as YYYY-MM-DD in the business timezone.
func FormatDate(t time.Time) string {
	return t.In(Location()).Format(DateLayout)
}

// MonthRangeUTC returns [start, end) of the given month of year, as UTC instants.
func MonthRangeUTC(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, Location())
	return start.UTC(), start.AddDate(0, 1, 0).UTC()
}
