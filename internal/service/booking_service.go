package service

import (
	"time"

	"campusbooking/internal/apperr"
	"campusbooking/internal/db"
	"campusbooking/internal/entities"
	"campusbooking/internal/timeutil"
)

// MaxDurationMinutes caps a single booking at 8 hours.
const MaxDurationMinutes = 8 * 60

type BookingService struct {
	Bookings   BookingStore
	Facilities FacilityStore
	Notifier   Notifier

	// Today supplies the current calendar day; overridable in tests.
	Today func() time.Time
}

func NewBookingService(bookings BookingStore, facilities FacilityStore, notifier Notifier) *BookingService {
	return &BookingService{
		Bookings:   bookings,
		Facilities: facilities,
		Notifier:   notifier,
		Today:      timeutil.Today,
	}
}

// HasConflict reports whether an active booking overlaps the interval on the
// given facility and date. excludeID omits one booking from consideration.
func (s *BookingService) HasConflict(facilityID int64, date time.Time, iv timeutil.Interval, excludeID *int64) (bool, error) {
	conflicts, err := s.Bookings.FindConflicts(facilityID, date, iv, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) > 0, nil
}

// FindConflicts exposes the full set of conflicting bookings for diagnostics.
func (s *BookingService) FindConflicts(facilityID int64, date time.Time, iv timeutil.Interval, excludeID *int64) ([]db.Booking, error) {
	return s.Bookings.FindConflicts(facilityID, date, iv, excludeID)
}

// Create validates a booking intent and persists it. The final conflict
// check runs atomically with the insert inside the store; the initial status
// follows the facility's approval policy.
func (s *BookingService) Create(req entities.BookingRequest, actor *db.User) (*entities.BookingResponse, error) {
	facility, err := s.Facilities.GetActive(req.FacilityID)
	if err != nil {
		return nil, err
	}

	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}
	start, err := timeutil.ParseClock(req.StartTime)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}
	end, err := timeutil.ParseClock(req.EndTime)
	if err != nil {
		return nil, apperr.Validation("%v", err)
	}

	iv, err := timeutil.NewInterval(start, end)
	if err != nil {
		return nil, apperr.Validation("end time must be after start time")
	}
	if iv.Minutes() > MaxDurationMinutes {
		return nil, apperr.Validation("booking duration cannot exceed 8 hours")
	}
	if date.Before(s.Today()) {
		return nil, apperr.Validation("booking date cannot be in the past")
	}
	if req.Attendees != nil {
		if *req.Attendees <= 0 {
			return nil, apperr.Validation("attendees must be a positive number")
		}
		if *req.Attendees > facility.Capacity {
			return nil, apperr.Validation("attendees (%d) exceed facility capacity (%d)", *req.Attendees, facility.Capacity)
		}
	}

	taken, err := s.HasConflict(facility.ID, date, iv, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("facility is already booked during the requested time")
	}

	booking := &db.Booking{
		UserID:     actor.ID,
		FacilityID: facility.ID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Status:     InitialStatus(facility),
		Purpose:    req.Purpose,
		Attendees:  req.Attendees,

		UserName:     actor.Name,
		UserEmail:    actor.Email,
		UserPhone:    actor.Phone,
		FacilityName: facility.Name,
	}
	if err := s.Bookings.CreateBooking(booking); err != nil {
		return nil, err
	}

	s.Notifier.NotifyCreated(booking)

	resp := entities.BookingResponseFrom(booking)
	return &resp, nil
}

// Update applies a partial update. Absent fields are left untouched. The
// edit lock applies before any change; interval or date changes re-run the
// conflict check excluding the booking itself.
func (s *BookingService) Update(id int64, req entities.UpdateBookingRequest, actor *db.User) (*entities.BookingResponse, error) {
	booking, err := s.Bookings.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := EnsureEditable(booking, actor); err != nil {
		return nil, err
	}

	newDate := booking.Date
	if req.Date != nil {
		if newDate, err = timeutil.ParseDate(*req.Date); err != nil {
			return nil, apperr.Validation("%v", err)
		}
	}
	newStart := booking.StartTime
	if req.StartTime != nil {
		if newStart, err = timeutil.ParseClock(*req.StartTime); err != nil {
			return nil, apperr.Validation("%v", err)
		}
	}
	newEnd := booking.EndTime
	if req.EndTime != nil {
		if newEnd, err = timeutil.ParseClock(*req.EndTime); err != nil {
			return nil, apperr.Validation("%v", err)
		}
	}

	slotChanged := !newDate.Equal(booking.Date) || newStart != booking.StartTime || newEnd != booking.EndTime
	if slotChanged {
		iv, err := timeutil.NewInterval(newStart, newEnd)
		if err != nil {
			return nil, apperr.Validation("end time must be after start time")
		}
		if iv.Minutes() > MaxDurationMinutes {
			return nil, apperr.Validation("booking duration cannot exceed 8 hours")
		}
		taken, err := s.HasConflict(booking.FacilityID, newDate, iv, &booking.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("facility is already booked during the requested time")
		}
		booking.Date = newDate
		booking.StartTime = newStart
		booking.EndTime = newEnd
	}

	if req.Purpose != nil {
		if len(*req.Purpose) > 500 {
			return nil, apperr.Validation("purpose must be at most 500 characters")
		}
		booking.Purpose = *req.Purpose
	}
	if req.Attendees != nil {
		if *req.Attendees <= 0 {
			return nil, apperr.Validation("attendees must be a positive number")
		}
		facility, err := s.Facilities.GetActive(booking.FacilityID)
		if err != nil {
			return nil, err
		}
		if *req.Attendees > facility.Capacity {
			return nil, apperr.Validation("attendees (%d) exceed facility capacity (%d)", *req.Attendees, facility.Capacity)
		}
		booking.Attendees = req.Attendees
	}

	statusChanged := false
	if req.AdminNotes != nil {
		if !actor.IsAdmin() {
			return nil, apperr.Forbidden("only administrators may set admin notes")
		}
		booking.AdminNotes = *req.AdminNotes
	}
	if req.Status != nil {
		target, ok := db.ParseBookingStatus(*req.Status)
		if !ok {
			return nil, apperr.Validation("invalid status: %s", *req.Status)
		}
		if statusChanged, err = ApplyStatus(booking, target, actor); err != nil {
			return nil, err
		}
	}

	if err := s.Bookings.UpdateBooking(booking, slotChanged); err != nil {
		return nil, err
	}

	if statusChanged {
		s.Notifier.NotifyStatusChanged(booking)
	}

	resp := entities.BookingResponseFrom(booking)
	return &resp, nil
}

// Cancel transitions a booking to CANCELLED unconditionally for its owner or
// an admin. Cancelling an already-cancelled booking is idempotent; a
// rejected booking is also accepted as cancelled (coarse cancel semantics).
func (s *BookingService) Cancel(id int64, actor *db.User) error {
	booking, err := s.Bookings.FindByID(id)
	if err != nil {
		return err
	}
	if err := EnsureOwnerOrAdmin(booking, actor); err != nil {
		return err
	}

	booking.Status = db.StatusCancelled
	if err := s.Bookings.UpdateBooking(booking, false); err != nil {
		return err
	}

	s.Notifier.NotifyCancelled(booking)
	return nil
}

func (s *BookingService) Get(id int64, actor *db.User) (*entities.BookingResponse, error) {
	booking, err := s.Bookings.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := EnsureOwnerOrAdmin(booking, actor); err != nil {
		return nil, err
	}
	resp := entities.BookingResponseFrom(booking)
	return &resp, nil
}

// ListWithStats returns the caller's bookings with their stats block. Admins
// see every booking and the global stats.
func (s *BookingService) ListWithStats(actor *db.User) (*entities.BookingsList, error) {
	var (
		bookings []db.Booking
		scope    *int64
		err      error
	)
	if actor.IsAdmin() {
		bookings, err = s.Bookings.FindAll()
	} else {
		scope = &actor.ID
		bookings, err = s.Bookings.FindByUser(actor.ID)
	}
	if err != nil {
		return nil, err
	}

	stats, err := s.Bookings.AggregateStats(scope, s.Today())
	if err != nil {
		return nil, err
	}

	list := make([]entities.BookingResponse, 0, len(bookings))
	for i := range bookings {
		list = append(list, entities.BookingResponseFrom(&bookings[i]))
	}
	return &entities.BookingsList{Data: list, Stats: stats}, nil
}
