package service

import (
	"time"

	"campusbooking/internal/db"
	"campusbooking/internal/entities"
	"campusbooking/internal/timeutil"
)

const (
	// DefaultOpen and DefaultClose bound the default availability range.
	DefaultOpen  = timeutil.Clock(8 * 60)  // 08:00
	DefaultClose = timeutil.Clock(22 * 60) // 22:00

	// DefaultGranularityMinutes is the default slot width.
	DefaultGranularityMinutes = 30

	slotAvailable = "available"
)

type AvailabilityService struct {
	Bookings   BookingStore
	Facilities FacilityStore
}

func NewAvailabilityService(bookings BookingStore, facilities FacilityStore) *AvailabilityService {
	return &AvailabilityService{Bookings: bookings, Facilities: facilities}
}

// DailyGrid partitions [rangeStart, rangeEnd) into consecutive slots and
// overlays the facility's active bookings. The range is taken as given, so
// an empty range yields an empty grid; a non-positive granularity falls back
// to the default, since a zero step could never terminate. A trailing
// remainder shorter than one granularity unit is dropped, not padded.
func (s *AvailabilityService) DailyGrid(facilityID int64, date time.Time, rangeStart, rangeEnd timeutil.Clock, granularity int) (*entities.DayGrid, error) {
	if _, err := s.Facilities.GetActive(facilityID); err != nil {
		return nil, err
	}
	if granularity <= 0 {
		granularity = DefaultGranularityMinutes
	}

	booked, err := s.Bookings.FindBookedOnDate(facilityID, date)
	if err != nil {
		return nil, err
	}

	slots, summary := buildDay(booked, rangeStart, rangeEnd, granularity)
	return &entities.DayGrid{
		FacilityID: facilityID,
		Date:       timeutil.FormatDate(date),
		Slots:      slots,
		Summary:    summary,
	}, nil
}

// WeeklyGrid runs the daily algorithm, with the default range and
// granularity, for each of the 7 consecutive dates starting at startDate.
func (s *AvailabilityService) WeeklyGrid(facilityID int64, startDate time.Time) (*entities.WeekGrid, error) {
	if _, err := s.Facilities.GetActive(facilityID); err != nil {
		return nil, err
	}

	days := make([]entities.WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := startDate.AddDate(0, 0, i)
		booked, err := s.Bookings.FindBookedOnDate(facilityID, day)
		if err != nil {
			return nil, err
		}
		_, summary := buildDay(booked, DefaultOpen, DefaultClose, DefaultGranularityMinutes)
		days = append(days, entities.WeekDay{
			Date:      timeutil.FormatDate(day),
			DayOfWeek: day.Weekday().String(),
			Total:     summary.Total,
			Available: summary.Available,
			Booked:    summary.Booked,
		})
	}

	return &entities.WeekGrid{
		FacilityID: facilityID,
		StartDate:  timeutil.FormatDate(startDate),
		Days:       days,
	}, nil
}

// buildDay generates the slot grid and overlays bookings in order. A slot
// touched by more than one booking keeps the last status applied; active
// bookings should never overlap, so that is a fallback, not a behavior.
func buildDay(bookings []db.Booking, rangeStart, rangeEnd timeutil.Clock, granularity int) ([]entities.Slot, entities.DaySummary) {
	type cell struct {
		iv        timeutil.Interval
		status    string
		bookingID *int64
	}

	var cells []cell
	for cursor := rangeStart; cursor.Add(granularity) <= rangeEnd; cursor = cursor.Add(granularity) {
		cells = append(cells, cell{
			iv:     timeutil.Interval{Start: cursor, End: cursor.Add(granularity)},
			status: slotAvailable,
		})
	}

	for i := range bookings {
		b := &bookings[i]
		for j := range cells {
			if cells[j].iv.Overlaps(b.Interval()) {
				id := b.ID
				cells[j].status = string(b.Status)
				cells[j].bookingID = &id
			}
		}
	}

	slots := make([]entities.Slot, 0, len(cells))
	available := 0
	for _, c := range cells {
		if c.status == slotAvailable {
			available++
		}
		slots = append(slots, entities.Slot{
			Start:     c.iv.Start.String(),
			End:       c.iv.End.String(),
			Status:    c.status,
			BookingID: c.bookingID,
		})
	}

	summary := entities.DaySummary{
		Total:     len(slots),
		Available: available,
		Booked:    len(slots) - available,
	}
	return slots, summary
}
