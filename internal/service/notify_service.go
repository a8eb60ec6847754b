package service

import (
	"fmt"
	"log"

	"campusbooking/internal/db"
	"campusbooking/internal/timeutil"
)

// NotifyService sends booking notifications over email and SMS. Every
// delivery is fire-and-forget: failures are logged, never surfaced, so a
// broken mail provider can never fail a booking transition.
type NotifyService struct{}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (n *NotifyService) NotifyCreated(b *db.Booking) {
	var subject, intro string
	if b.Status == db.StatusPending {
		subject = fmt.Sprintf("Booking request received for %s", b.FacilityName)
		intro = "Your booking request was received and is waiting for approval."
	} else {
		subject = fmt.Sprintf("Booking confirmed for %s", b.FacilityName)
		intro = "Your booking is confirmed."
	}
	n.dispatch(b, subject, intro)
}

func (n *NotifyService) NotifyStatusChanged(b *db.Booking) {
	subject := fmt.Sprintf("Booking for %s is now %s", b.FacilityName, b.Status)
	intro := fmt.Sprintf("The status of your booking has changed to %s.", b.Status)
	n.dispatch(b, subject, intro)
}

func (n *NotifyService) NotifyCancelled(b *db.Booking) {
	subject := fmt.Sprintf("Booking cancelled for %s", b.FacilityName)
	n.dispatch(b, subject, "Your booking has been cancelled.")
}

func (n *NotifyService) NotifyReminder(b *db.Booking) {
	subject := fmt.Sprintf("Reminder: %s tomorrow at %s", b.FacilityName, b.StartTime)
	n.dispatch(b, subject, "This is a reminder for your upcoming booking.")
}

func (n *NotifyService) dispatch(b *db.Booking, subject, intro string) {
	body := fmt.Sprintf(
		"Hello %s,\n\n%s\n\n"+
			"Facility: %s\n"+
			"Date: %s\n"+
			"Time: %s - %s\n",
		b.UserName, intro,
		b.FacilityName,
		timeutil.FormatDate(b.Date),
		b.StartTime, b.EndTime,
	)
	if b.Purpose != "" {
		body += fmt.Sprintf("Purpose: %s\n", b.Purpose)
	}
	body += "\nCampus Booking"

	sms := fmt.Sprintf("Campus Booking: %s (%s %s-%s)", subject, timeutil.FormatDate(b.Date), b.StartTime, b.EndTime)

	email, phone := b.UserEmail, b.UserPhone
	userName, bookingID := b.UserName, b.ID
	go func() {
		if err := SendEmailWithSendGrid(email, userName, subject, body, body); err != nil {
			log.Printf("booking %d: email notification failed: %v", bookingID, err)
		}
		if phone == "" {
			return
		}
		if err := SendSMS(phone, sms); err != nil {
			log.Printf("booking %d: SMS notification failed: %v", bookingID, err)
		}
	}()
}
