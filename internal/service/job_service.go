package service

import (
	"fmt"
	"log"
	"time"

	"campusbooking/internal/timeutil"
)

// JobService runs scheduled maintenance for the booking system.
type JobService struct {
	Bookings BookingStore
	Notifier Notifier

	Today func() time.Time
}

func NewJobService(bookings BookingStore, notifier Notifier) *JobService {
	return &JobService{Bookings: bookings, Notifier: notifier, Today: timeutil.Today}
}

// SendUpcomingReminders emails the owners of every confirmed booking
// scheduled for tomorrow. Intended to run once a day from cron.
func (s *JobService) SendUpcomingReminders() error {
	tomorrow := s.Today().AddDate(0, 0, 1)

	bookings, err := s.Bookings.FindConfirmedOnDate(tomorrow)
	if err != nil {
		return fmt.Errorf("reminder job: failed to load confirmed bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil
	}

	log.Printf("Reminder job: sending %d reminders for %s", len(bookings), timeutil.FormatDate(tomorrow))
	for i := range bookings {
		s.Notifier.NotifyReminder(&bookings[i])
	}
	return nil
}
