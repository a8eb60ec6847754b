package service

import (
	"sync"
	"time"

	"campusbooking/internal/apperr"
	"campusbooking/internal/db"
	"campusbooking/internal/entities"
	"campusbooking/internal/timeutil"
)

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[int64]*db.Booking
	nextID   int64
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[int64]*db.Booking), nextID: 1}
}

func (f *fakeBookingStore) add(b db.Booking) *db.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == 0 {
		b.ID = f.nextID
		f.nextID++
	} else if b.ID >= f.nextID {
		f.nextID = b.ID + 1
	}
	stored := b
	f.bookings[stored.ID] = &stored
	return &stored
}

func (f *fakeBookingStore) conflicts(facilityID int64, date time.Time, iv timeutil.Interval, excludeID *int64) []db.Booking {
	var out []db.Booking
	for _, b := range f.bookings {
		if b.FacilityID != facilityID || !timeutil.SameDay(b.Date, date) {
			continue
		}
		if b.Status != db.StatusConfirmed && b.Status != db.StatusPending {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Interval().Overlaps(iv) {
			out = append(out, *b)
		}
	}
	return out
}

func (f *fakeBookingStore) CreateBooking(b *db.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.bookings {
		if existing.FacilityID == b.FacilityID && timeutil.SameDay(existing.Date, b.Date) &&
			(existing.Status == db.StatusConfirmed || existing.Status == db.StatusPending) &&
			existing.Interval().Overlaps(b.Interval()) {
			return apperr.Conflict("facility is already booked during the requested time")
		}
	}
	b.ID = f.nextID
	f.nextID++
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingStore) UpdateBooking(b *db.Booking, recheckConflict bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[b.ID]; !ok {
		return apperr.NotFound("booking %d not found", b.ID)
	}
	if recheckConflict {
		for _, existing := range f.bookings {
			if existing.ID == b.ID {
				continue
			}
			if existing.FacilityID == b.FacilityID && timeutil.SameDay(existing.Date, b.Date) &&
				(existing.Status == db.StatusConfirmed || existing.Status == db.StatusPending) &&
				existing.Interval().Overlaps(b.Interval()) {
				return apperr.Conflict("facility is already booked during the requested time")
			}
		}
	}
	b.UpdatedAt = time.Now().UTC()
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeBookingStore) FindByID(id int64) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperr.NotFound("booking %d not found", id)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) FindConflicts(facilityID int64, date time.Time, iv timeutil.Interval, excludeID *int64) ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conflicts(facilityID, date, iv, excludeID), nil
}

func (f *fakeBookingStore) FindBookedOnDate(facilityID int64, date time.Time) ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Booking
	for _, b := range f.bookings {
		if b.FacilityID == facilityID && timeutil.SameDay(b.Date, date) &&
			(b.Status == db.StatusConfirmed || b.Status == db.StatusPending) {
			out = append(out, *b)
		}
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].StartTime < out[i].StartTime {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeBookingStore) FindByUser(userID int64) ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) FindAll() ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Booking
	for _, b := range f.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingStore) FindConfirmedOnDate(date time.Time) ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Booking
	for _, b := range f.bookings {
		if b.Status == db.StatusConfirmed && timeutil.SameDay(b.Date, date) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) AggregateStats(userID *int64, today time.Time) (entities.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var stats entities.Stats
	for _, b := range f.bookings {
		if userID != nil && b.UserID != *userID {
			continue
		}
		stats.Total++
		switch b.Status {
		case db.StatusConfirmed:
			stats.Confirmed++
			if !b.Date.Before(today) {
				stats.Upcoming++
			}
		case db.StatusPending:
			stats.Pending++
		case db.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

type fakeFacilityStore struct {
	facilities map[int64]*db.Facility
	nextID     int64
}

func newFakeFacilityStore(facilities ...db.Facility) *fakeFacilityStore {
	f := &fakeFacilityStore{facilities: make(map[int64]*db.Facility), nextID: 1}
	for i := range facilities {
		stored := facilities[i]
		f.facilities[stored.ID] = &stored
		if stored.ID >= f.nextID {
			f.nextID = stored.ID + 1
		}
	}
	return f
}

func (f *fakeFacilityStore) GetActive(id int64) (*db.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok || !fac.IsActive {
		return nil, apperr.NotFound("facility %d not found", id)
	}
	copied := *fac
	return &copied, nil
}

func (f *fakeFacilityStore) ListActive(filter entities.FacilityFilter) ([]db.Facility, error) {
	var out []db.Facility
	for _, fac := range f.facilities {
		if fac.IsActive {
			out = append(out, *fac)
		}
	}
	return out, nil
}

func (f *fakeFacilityStore) Create(fac *db.Facility) error {
	fac.ID = f.nextID
	f.nextID++
	fac.IsActive = true
	stored := *fac
	f.facilities[fac.ID] = &stored
	return nil
}

func (f *fakeFacilityStore) Update(fac *db.Facility) error {
	if _, ok := f.facilities[fac.ID]; !ok {
		return apperr.NotFound("facility %d not found", fac.ID)
	}
	stored := *fac
	f.facilities[fac.ID] = &stored
	return nil
}

func (f *fakeFacilityStore) Deactivate(id int64) error {
	fac, ok := f.facilities[id]
	if !ok || !fac.IsActive {
		return apperr.NotFound("facility %d not found", id)
	}
	fac.IsActive = false
	return nil
}

type fakeNotifier struct {
	mu            sync.Mutex
	created       []int64
	statusChanged []int64
	cancelled     []int64
	reminded      []int64
}

func (f *fakeNotifier) NotifyCreated(b *db.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, b.ID)
}

func (f *fakeNotifier) NotifyStatusChanged(b *db.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusChanged = append(f.statusChanged, b.ID)
}

func (f *fakeNotifier) NotifyCancelled(b *db.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, b.ID)
}

func (f *fakeNotifier) NotifyReminder(b *db.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reminded = append(f.reminded, b.ID)
}
