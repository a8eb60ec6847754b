package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusbooking/internal/db"
)

func TestSendUpcomingReminders(t *testing.T) {
	store := newFakeBookingStore()
	notifier := &fakeNotifier{}
	job := NewJobService(store, notifier)
	job.Today = func() time.Time { return testToday }

	tomorrow := seedBooking(t, store, 1, owner.ID, "2026-03-02", "09:00", "11:00", db.StatusConfirmed)
	seedBooking(t, store, 1, other.ID, "2026-03-02", "12:00", "13:00", db.StatusPending)
	seedBooking(t, store, 1, other.ID, "2026-03-03", "09:00", "11:00", db.StatusConfirmed)
	seedBooking(t, store, 1, owner.ID, "2026-03-01", "09:00", "11:00", db.StatusConfirmed)

	require.NoError(t, job.SendUpcomingReminders())

	// Only tomorrow's confirmed booking gets a reminder.
	require.Len(t, notifier.reminded, 1)
	assert.Equal(t, tomorrow.ID, notifier.reminded[0])
}

func TestSendUpcomingRemindersNothingDue(t *testing.T) {
	store := newFakeBookingStore()
	notifier := &fakeNotifier{}
	job := NewJobService(store, notifier)
	job.Today = func() time.Time { return testToday }

	require.NoError(t, job.SendUpcomingReminders())
	assert.Empty(t, notifier.reminded)
}
