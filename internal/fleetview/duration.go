package fleetview

import (
	"fmt"
	"time"
)

// Mode selects how Duration treats the target date.
type Mode string

const (
	// ModeCountdown measures time remaining until the target, flipping to
	// time elapsed since it once passed.
	ModeCountdown Mode = "countdown"
	// ModeAge measures time elapsed since the target (birth dates, start
	// dates). Never expired.
	ModeAge Mode = "age"
)

// Countdown is a calendar decomposition of the distance to/from a date.
type Countdown struct {
	Text    string `json:"text"`
	Years   int    `json:"years"`
	Months  int    `json:"months"`
	Days    int    `json:"days"`
	Expired bool   `json:"isExpired"`
}

// Duration renders the distance between now and target as Thai
// years/months/days. An absent target renders "-".
func Duration(target string, now time.Time, mode Mode) Countdown {
	t, ok := ParseDate(target)
	if !ok {
		return Countdown{Text: "-"}
	}
	t = midnight(t)
	today := midnight(now)

	var from, to time.Time
	expired := false
	switch mode {
	case ModeAge:
		from, to = t, today
		if from.After(to) {
			// a future birth date still reads as a non-negative age of zero
			from, to = to, from
		}
	default:
		if today.After(t) {
			from, to = t, today
			expired = true
		} else {
			from, to = today, t
		}
	}

	years, months, days := decompose(from, to)
	return Countdown{
		Text:    fmt.Sprintf("%d ปี %d เดือน %d วัน", years, months, days),
		Years:   years,
		Months:  months,
		Days:    days,
		Expired: expired,
	}
}

// decompose computes the calendar difference from..to (to >= from),
// borrowing days from the true length of the month preceding `to` and
// borrowing a year for a negative month count. A year count that still
// ends up negative clamps to zero.
func decompose(from, to time.Time) (years, months, days int) {
	years = to.Year() - from.Year()
	months = int(to.Month()) - int(from.Month())
	days = to.Day() - from.Day()
	if days < 0 {
		days += daysIn(to.Year(), to.Month()-1)
		months--
	}
	if months < 0 {
		months += 12
		years--
	}
	if years < 0 {
		years = 0
	}
	return years, months, days
}
