package fleetview

import "time"

// Status classifies a tracked document date against a reference day.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusExpired Status = "expired"
	StatusUnknown Status = "unknown"
)

// DefaultLookaheadMonths is the warning window for tax, insurance and
// license expiries.
const DefaultLookaheadMonths = 3

// DateLayout is the calendar-day format every document date field uses.
const DateLayout = "2006-01-02"

// ParseDate parses a document date field. The second return is false for
// an empty or malformed value.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Classify maps a date to ok/warning/expired, or unknown when the field is
// absent. Both sides are truncated to midnight; time-of-day never matters.
// The boundary is inclusive on both ends: a date equal to now is already a
// warning, a date equal to now plus the lookahead still is.
//
// now is always caller-supplied so the classification stays reproducible.
func Classify(date string, now time.Time, lookaheadMonths int) Status {
	d, ok := ParseDate(date)
	if !ok {
		return StatusUnknown
	}
	d = midnight(d)
	today := midnight(now)
	if d.Before(today) {
		return StatusExpired
	}
	if !d.After(addCalendarMonths(today, lookaheadMonths)) {
		return StatusWarning
	}
	return StatusOK
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addCalendarMonths preserves the day-of-month, clamping to the target
// month's length (Jan 31 + 3 months = Apr 30, not the May 1 that
// time.AddDate would normalize to).
func addCalendarMonths(t time.Time, months int) time.Time {
	total := int(t.Month()) - 1 + months
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)
	day := t.Day()
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
