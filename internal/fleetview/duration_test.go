package fleetview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationCountdownFuture(t *testing.T) {
	got := Duration("2025-08-20", day("2024-06-15"), ModeCountdown)

	assert.Equal(t, 1, got.Years)
	assert.Equal(t, 2, got.Months)
	assert.Equal(t, 5, got.Days)
	assert.False(t, got.Expired)
	assert.Equal(t, "1 ปี 2 เดือน 5 วัน", got.Text)
}

func TestDurationCountdownBorrowsDays(t *testing.T) {
	// จาก 20 มิ.ย. ถึง 5 ส.ค.: ยืมวันจากเดือนกรกฎาคม (31 วัน)
	got := Duration("2024-08-05", day("2024-06-20"), ModeCountdown)

	assert.Equal(t, 0, got.Years)
	assert.Equal(t, 1, got.Months)
	assert.Equal(t, 16, got.Days)
}

func TestDurationCountdownExpired(t *testing.T) {
	got := Duration("2024-06-01", day("2024-06-15"), ModeCountdown)

	assert.True(t, got.Expired)
	assert.Equal(t, 0, got.Years)
	assert.Equal(t, 0, got.Months)
	assert.Equal(t, 14, got.Days)
	assert.Equal(t, "0 ปี 0 เดือน 14 วัน", got.Text)
}

func TestDurationCountdownSameDay(t *testing.T) {
	got := Duration("2024-06-15", day("2024-06-15"), ModeCountdown)

	assert.False(t, got.Expired)
	assert.Equal(t, "0 ปี 0 เดือน 0 วัน", got.Text)
}

func TestDurationAge(t *testing.T) {
	got := Duration("1990-03-10", day("2024-06-15"), ModeAge)

	assert.False(t, got.Expired)
	assert.Equal(t, 34, got.Years)
	assert.Equal(t, 3, got.Months)
	assert.Equal(t, 5, got.Days)
}

func TestDurationAgeNeverExpires(t *testing.T) {
	got := Duration("2025-01-01", day("2024-06-15"), ModeAge)

	assert.False(t, got.Expired)
}

func TestDurationMissingTarget(t *testing.T) {
	assert.Equal(t, "-", Duration("", day("2024-06-15"), ModeCountdown).Text)
	assert.Equal(t, "-", Duration("not-a-date", day("2024-06-15"), ModeAge).Text)
}
