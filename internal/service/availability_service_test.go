package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusbooking/internal/apperr"
	"campusbooking/internal/db"
	"campusbooking/internal/timeutil"
)

func newAvailabilityService(t *testing.T) (*AvailabilityService, *fakeBookingStore) {
	t.Helper()
	store := newFakeBookingStore()
	facilities := newFakeFacilityStore(openFacility, inactiveFacility)
	return NewAvailabilityService(store, facilities), store
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := timeutil.ParseDate(s)
	require.NoError(t, err)
	return parsed
}

func TestDailyGridDefaultWindow(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	grid, err := svc.DailyGrid(1, mustDate(t, "2026-03-05"), DefaultOpen, DefaultClose, 0)
	require.NoError(t, err)

	// 08:00 to 22:00 at 30 minutes is exactly 28 slots.
	require.Len(t, grid.Slots, 28)
	assert.Equal(t, "08:00", grid.Slots[0].Start)
	assert.Equal(t, "08:30", grid.Slots[0].End)
	assert.Equal(t, "21:30", grid.Slots[27].Start)
	assert.Equal(t, "22:00", grid.Slots[27].End)
	for _, slot := range grid.Slots {
		assert.Equal(t, "available", slot.Status)
		assert.Nil(t, slot.BookingID)
	}
	assert.Equal(t, 28, grid.Summary.Total)
	assert.Equal(t, 28, grid.Summary.Available)
	assert.Equal(t, 0, grid.Summary.Booked)
	assert.Equal(t, "2026-03-05", grid.Date)
}

func TestDailyGridOverlay(t *testing.T) {
	svc, store := newAvailabilityService(t)
	b := seedBooking(t, store, 1, owner.ID, "2026-03-05", "10:00", "11:30", db.StatusConfirmed)
	seedBooking(t, store, 1, other.ID, "2026-03-05", "14:00", "15:00", db.StatusPending)
	// Terminal bookings leave the grid untouched.
	seedBooking(t, store, 1, other.ID, "2026-03-05", "09:00", "10:00", db.StatusCancelled)

	grid, err := svc.DailyGrid(1, mustDate(t, "2026-03-05"), DefaultOpen, DefaultClose, 0)
	require.NoError(t, err)

	byStart := map[string]string{}
	for _, slot := range grid.Slots {
		byStart[slot.Start] = slot.Status
	}
	assert.Equal(t, "available", byStart["09:00"])
	assert.Equal(t, "available", byStart["09:30"])
	assert.Equal(t, "confirmed", byStart["10:00"])
	assert.Equal(t, "confirmed", byStart["10:30"])
	assert.Equal(t, "confirmed", byStart["11:00"])
	assert.Equal(t, "available", byStart["11:30"])
	assert.Equal(t, "pending", byStart["14:00"])
	assert.Equal(t, "pending", byStart["14:30"])
	assert.Equal(t, "available", byStart["15:00"])

	for _, slot := range grid.Slots {
		if slot.Status == "confirmed" {
			require.NotNil(t, slot.BookingID)
			assert.Equal(t, b.ID, *slot.BookingID)
		}
	}

	assert.Equal(t, 28, grid.Summary.Total)
	assert.Equal(t, 5, grid.Summary.Booked)
	assert.Equal(t, 23, grid.Summary.Available)
	assert.Equal(t, grid.Summary.Total, grid.Summary.Available+grid.Summary.Booked)
}

func TestDailyGridIdempotent(t *testing.T) {
	svc, store := newAvailabilityService(t)
	seedBooking(t, store, 1, owner.ID, "2026-03-05", "10:00", "11:30", db.StatusConfirmed)

	first, err := svc.DailyGrid(1, mustDate(t, "2026-03-05"), DefaultOpen, DefaultClose, 0)
	require.NoError(t, err)
	second, err := svc.DailyGrid(1, mustDate(t, "2026-03-05"), DefaultOpen, DefaultClose, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDailyGridCustomRange(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	grid, err := svc.DailyGrid(1, mustDate(t, "2026-03-05"),
		timeutil.Clock(9*60), timeutil.Clock(12*60), 60)
	require.NoError(t, err)

	require.Len(t, grid.Slots, 3)
	assert.Equal(t, "09:00", grid.Slots[0].Start)
	assert.Equal(t, "11:00", grid.Slots[2].Start)
	assert.Equal(t, "12:00", grid.Slots[2].End)
}

func TestDailyGridEmptyRange(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	// An explicitly empty range is honored, not swapped for the defaults.
	grid, err := svc.DailyGrid(1, mustDate(t, "2026-03-05"), 0, 0, DefaultGranularityMinutes)
	require.NoError(t, err)
	assert.Empty(t, grid.Slots)
	assert.Equal(t, 0, grid.Summary.Total)

	grid, err = svc.DailyGrid(1, mustDate(t, "2026-03-05"),
		timeutil.Clock(10*60), timeutil.Clock(10*60), DefaultGranularityMinutes)
	require.NoError(t, err)
	assert.Empty(t, grid.Slots)
}

func TestDailyGridDropsDanglingRemainder(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	// 09:00 to 10:45 at 30 minutes yields 3 full slots; the 15-minute
	// remainder is dropped.
	grid, err := svc.DailyGrid(1, mustDate(t, "2026-03-05"),
		timeutil.Clock(9*60), timeutil.Clock(10*60+45), 30)
	require.NoError(t, err)

	require.Len(t, grid.Slots, 3)
	assert.Equal(t, "10:30", grid.Slots[2].End)
}

func TestDailyGridPartialOverlapMarksSlot(t *testing.T) {
	svc, store := newAvailabilityService(t)
	// A booking covering only part of a slot still claims the whole slot.
	seedBooking(t, store, 1, owner.ID, "2026-03-05", "10:15", "10:20", db.StatusConfirmed)

	grid, err := svc.DailyGrid(1, mustDate(t, "2026-03-05"), DefaultOpen, DefaultClose, 0)
	require.NoError(t, err)

	for _, slot := range grid.Slots {
		if slot.Start == "10:00" {
			assert.Equal(t, "confirmed", slot.Status)
		} else {
			assert.Equal(t, "available", slot.Status)
		}
	}
}

func TestDailyGridInactiveFacility(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	_, err := svc.DailyGrid(3, mustDate(t, "2026-03-05"), DefaultOpen, DefaultClose, 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.DailyGrid(99, mustDate(t, "2026-03-05"), DefaultOpen, DefaultClose, 0)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestWeeklyGrid(t *testing.T) {
	svc, store := newAvailabilityService(t)
	seedBooking(t, store, 1, owner.ID, "2026-03-02", "10:00", "12:00", db.StatusConfirmed)
	seedBooking(t, store, 1, other.ID, "2026-03-04", "09:00", "09:30", db.StatusPending)

	grid, err := svc.WeeklyGrid(1, mustDate(t, "2026-03-02"))
	require.NoError(t, err)

	require.Len(t, grid.Days, 7)
	assert.Equal(t, "2026-03-02", grid.StartDate)
	assert.Equal(t, "2026-03-02", grid.Days[0].Date)
	assert.Equal(t, "Monday", grid.Days[0].DayOfWeek)
	assert.Equal(t, "2026-03-08", grid.Days[6].Date)

	assert.Equal(t, 28, grid.Days[0].Total)
	assert.Equal(t, 4, grid.Days[0].Booked)
	assert.Equal(t, 24, grid.Days[0].Available)

	assert.Equal(t, 1, grid.Days[2].Booked)

	for _, day := range grid.Days {
		assert.Equal(t, day.Total, day.Available+day.Booked)
	}
}

func TestWeeklyGridInactiveFacility(t *testing.T) {
	svc, _ := newAvailabilityService(t)

	_, err := svc.WeeklyGrid(3, mustDate(t, "2026-03-02"))
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
