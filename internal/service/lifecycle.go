package service

import (
	"campusbooking/internal/apperr"
	"campusbooking/internal/db"
)

// transitions is the booking state machine. CANCELLED and REJECTED are
// terminal: no outgoing edges.
var transitions = map[db.BookingStatus]map[db.BookingStatus]bool{
	db.StatusPending: {
		db.StatusConfirmed: true,
		db.StatusRejected:  true,
		db.StatusCancelled: true,
	},
	db.StatusConfirmed: {
		db.StatusPending:   true,
		db.StatusCancelled: true,
	},
	db.StatusCancelled: {},
	db.StatusRejected:  {},
}

// CanTransition reports whether the state machine allows moving from one
// status to the other.
func CanTransition(from, to db.BookingStatus) bool {
	return transitions[from][to]
}

// InitialStatus derives a new booking's status from facility policy.
func InitialStatus(f *db.Facility) db.BookingStatus {
	if f.RequiresApproval {
		return db.StatusPending
	}
	return db.StatusConfirmed
}

// ApplyStatus moves a booking to an arbitrary target status. Only admins may
// do this, and only along a legal edge of the state machine; setting the
// current status again is a no-op. Returns whether the status changed.
func ApplyStatus(b *db.Booking, target db.BookingStatus, actor *db.User) (bool, error) {
	if !actor.IsAdmin() {
		return false, apperr.Forbidden("only administrators may change booking status")
	}
	if target == b.Status {
		return false, nil
	}
	if !CanTransition(b.Status, target) {
		return false, apperr.Validation("invalid transition from %s to %s", b.Status, target)
	}
	b.Status = target
	return true, nil
}

// EnsureOwnerOrAdmin gates mutating operations on a booking.
func EnsureOwnerOrAdmin(b *db.Booking, actor *db.User) error {
	if !actor.IsAdmin() && b.UserID != actor.ID {
		return apperr.Forbidden("access denied")
	}
	return nil
}

// EnsureEditable enforces the edit lock: a non-admin may only modify their
// own bookings, and only while the booking is still pending.
func EnsureEditable(b *db.Booking, actor *db.User) error {
	if actor.IsAdmin() {
		return nil
	}
	if b.UserID != actor.ID {
		return apperr.Forbidden("access denied")
	}
	if b.Status != db.StatusPending {
		return apperr.Forbidden("only pending bookings can be modified")
	}
	return nil
}
