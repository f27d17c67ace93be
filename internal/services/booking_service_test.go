package services

import (
	"testing"
	"time"

	"kbox/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputePrice(t *testing.T) {
	base := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		hourlyRate int64
		duration   time.Duration
		want       int64
	}{
		{"两小时整", 8800, 2 * time.Hour, 17600},
		{"一个半小时", 6000, 90 * time.Minute, 9000},
		{"一小时整", 9900, time.Hour, 9900},
		{"半小时", 10000, 30 * time.Minute, 5000},
		{"零时长", 8800, 0, 0},
		{"负时长", 8800, -time.Hour, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePrice(tc.hourlyRate, base, base.Add(tc.duration))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestValidateTimeRange(t *testing.T) {
	base := time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateTimeRange(base, base.Add(2*time.Hour)))
	assert.NoError(t, ValidateTimeRange(base, base.Add(24*time.Hour)))

	assert.Error(t, ValidateTimeRange(time.Time{}, base))
	assert.Error(t, ValidateTimeRange(base, time.Time{}))
	assert.ErrorIs(t, ValidateTimeRange(base, base), ErrInvalidTimeRange)
	assert.ErrorIs(t, ValidateTimeRange(base, base.Add(-time.Hour)), ErrInvalidTimeRange)
	assert.Error(t, ValidateTimeRange(base, base.Add(25*time.Hour)))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{models.BookingStatusPending, models.BookingStatusConfirmed, true},
		{models.BookingStatusPending, models.BookingStatusCancelled, true},
		{models.BookingStatusPending, models.BookingStatusCompleted, false},
		{models.BookingStatusConfirmed, models.BookingStatusCompleted, true},
		{models.BookingStatusConfirmed, models.BookingStatusCancelled, true},
		{models.BookingStatusConfirmed, models.BookingStatusPending, false},
		{models.BookingStatusCancelled, models.BookingStatusConfirmed, false},
		{models.BookingStatusCancelled, models.BookingStatusPending, false},
		{models.BookingStatusCompleted, models.BookingStatusCancelled, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, canTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBookingIsValidStatus(t *testing.T) {
	s := &BookingService{}
	for _, status := range []string{"pending", "confirmed", "cancelled", "completed"} {
		assert.True(t, s.IsValidStatus(status), status)
	}
	assert.False(t, s.IsValidStatus("expired"))
	assert.False(t, s.IsValidStatus(""))
}
