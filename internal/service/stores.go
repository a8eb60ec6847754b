package service

import (
	"time"

	"campusbooking/internal/db"
	"campusbooking/internal/entities"
	"campusbooking/internal/timeutil"
)

// BookingStore is the persistence contract the booking engine consumes.
// Create and interval-changing updates must be atomic with the conflict
// check they imply.
type BookingStore interface {
	CreateBooking(b *db.Booking) error
	UpdateBooking(b *db.Booking, recheckConflict bool) error
	FindByID(id int64) (*db.Booking, error)
	FindConflicts(facilityID int64, date time.Time, iv timeutil.Interval, excludeID *int64) ([]db.Booking, error)
	FindBookedOnDate(facilityID int64, date time.Time) ([]db.Booking, error)
	FindByUser(userID int64) ([]db.Booking, error)
	FindAll() ([]db.Booking, error)
	FindConfirmedOnDate(date time.Time) ([]db.Booking, error)
	AggregateStats(userID *int64, today time.Time) (entities.Stats, error)
}

type FacilityStore interface {
	GetActive(id int64) (*db.Facility, error)
	ListActive(filter entities.FacilityFilter) ([]db.Facility, error)
	Create(f *db.Facility) error
	Update(f *db.Facility) error
	Deactivate(id int64) error
}

type UserStore interface {
	GetActiveByEmail(email string) (*db.User, error)
	GetActiveByID(id int64) (*db.User, error)
	ExistsByEmail(email string) (bool, error)
	Create(u *db.User, password string) error
}

// Notifier delivers booking notifications. All methods are fire-and-forget:
// delivery failures are logged by the implementation, never returned.
type Notifier interface {
	NotifyCreated(b *db.Booking)
	NotifyStatusChanged(b *db.Booking)
	NotifyCancelled(b *db.Booking)
	NotifyReminder(b *db.Booking)
}
