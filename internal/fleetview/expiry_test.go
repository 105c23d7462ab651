package fleetview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassify(t *testing.T) {
	now := day("2024-06-15")

	testCases := []struct {
		name string
		date string
		want Status
	}{
		{"missing date", "", StatusUnknown},
		{"malformed date", "15/06/2024", StatusUnknown},
		{"yesterday", "2024-06-14", StatusExpired},
		{"today", "2024-06-15", StatusWarning},
		{"inside the window", "2024-08-01", StatusWarning},
		{"window boundary", "2024-09-15", StatusWarning},
		{"day past the boundary", "2024-09-16", StatusOK},
		{"far future", "2026-01-01", StatusOK},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.date, now, DefaultLookaheadMonths))
		})
	}
}

func TestClassifyIgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, StatusWarning, Classify("2024-06-15", lateEvening, DefaultLookaheadMonths))
	assert.Equal(t, StatusExpired, Classify("2024-06-14", lateEvening, DefaultLookaheadMonths))
}

func TestClassifyClampsShortMonths(t *testing.T) {
	// Jan 31 + 3 months clamps to Apr 30, so May 1 is already ok.
	now := day("2024-01-31")
	assert.Equal(t, StatusWarning, Classify("2024-04-30", now, DefaultLookaheadMonths))
	assert.Equal(t, StatusOK, Classify("2024-05-01", now, DefaultLookaheadMonths))
}

func TestAddCalendarMonths(t *testing.T) {
	testCases := []struct {
		start  string
		months int
		want   string
	}{
		{"2024-01-31", 3, "2024-04-30"},
		{"2024-11-30", 3, "2025-02-28"},
		{"2023-11-30", 3, "2024-02-29"},
		{"2024-06-15", 3, "2024-09-15"},
		{"2024-10-01", 12, "2025-10-01"},
	}
	for _, tc := range testCases {
		got := addCalendarMonths(day(tc.start), tc.months)
		assert.Equal(t, tc.want, got.Format(DateLayout), "%s + %d months", tc.start, tc.months)
	}
}
