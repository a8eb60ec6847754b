package db

import (
	"time"

	"campusbooking/internal/timeutil"
)

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// ParseBookingStatus validates a status literal from the wire.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusConfirmed, StatusPending, StatusCancelled, StatusRejected:
		return BookingStatus(s), true
	}
	return "", false
}

// Terminal reports whether the status has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusRejected
}

type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type Booking struct {
	ID         int64
	UserID     int64
	FacilityID int64
	Date       time.Time
	StartTime  timeutil.Clock
	EndTime    timeutil.Clock
	Status     BookingStatus
	Purpose    string
	Attendees  *int
	AdminNotes string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined-in display fields, populated on reads.
	UserName     string
	UserEmail    string
	UserPhone    string
	FacilityName string
}

// Interval returns the booking's time window as a half-open interval.
func (b *Booking) Interval() timeutil.Interval {
	return timeutil.Interval{Start: b.StartTime, End: b.EndTime}
}

type Facility struct {
	ID               int64
	Name             string
	Location         string
	Capacity         int
	Description      string
	Amenities        []string
	FacilityType     string
	ImageURL         string
	RequiresApproval bool
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	StudentID    string
	Department   string
	Phone        string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin capability. Students and
// faculty are both plain owners as far as booking authorization goes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
