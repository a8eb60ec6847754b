package entities

import (
	"time"

	"campusbooking/internal/db"
	"campusbooking/internal/timeutil"
)

// BookingRequest carries a create-booking intent into the service layer.
type BookingRequest struct {
	FacilityID int64  `json:"facility_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	Attendees  *int   `json:"attendees,omitempty"`
	Purpose    string `json:"purpose,omitempty" validate:"max=500"`
}

// UpdateBookingRequest uses pointers throughout so an absent field is
// distinguishable from an explicitly supplied one: nil means "leave as is".
type UpdateBookingRequest struct {
	Date      *string `json:"date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Attendees *int    `json:"attendees,omitempty"`
	Purpose   *string `json:"purpose,omitempty"`

	// Admin-only fields.
	Status     *string `json:"status,omitempty"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

type BookingResponse struct {
	ID           int64     `json:"id"`
	FacilityID   int64     `json:"facility_id"`
	FacilityName string    `json:"facility_name,omitempty"`
	UserID       int64     `json:"user_id"`
	UserName     string    `json:"user_name,omitempty"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Status       string    `json:"status"`
	Purpose      string    `json:"purpose,omitempty"`
	Attendees    *int      `json:"attendees,omitempty"`
	AdminNotes   string    `json:"admin_notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func BookingResponseFrom(b *db.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		FacilityID:   b.FacilityID,
		FacilityName: b.FacilityName,
		UserID:       b.UserID,
		UserName:     b.UserName,
		Date:         timeutil.FormatDate(b.Date),
		StartTime:    b.StartTime.String(),
		EndTime:      b.EndTime.String(),
		Status:       string(b.Status),
		Purpose:      b.Purpose,
		Attendees:    b.Attendees,
		AdminNotes:   b.AdminNotes,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// BookingsList is the list payload: the caller's bookings plus their stats.
type BookingsList struct {
	Data  []BookingResponse `json:"data"`
	Stats Stats             `json:"stats"`
}

// Stats aggregates booking counts for one user, or for everyone when the
// scope is the admin view.
type Stats struct {
	Total     int64 `json:"total"`
	Confirmed int64 `json:"confirmed"`
	Pending   int64 `json:"pending"`
	Cancelled int64 `json:"cancelled"`
	Upcoming  int64 `json:"upcoming"`
}
