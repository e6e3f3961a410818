package service

import (
	"fmt"
	"log"
	"os"
	"time"

	"lenslight/internal/db"
	"lenslight/internal/entities"
)

// SenderService composes and dispatches booking notifications. Every send is
// best effort: failures are logged and never surfaced to the booking flow.
type SenderService struct {
	mailer Mailer
	sms    SMSSender
}

func NewSenderService(mailer Mailer, sms SMSSender) *SenderService {
	return &SenderService{mailer: mailer, sms: sms}
}

func (s *SenderService) ownerEmail() string {
	return os.Getenv("OWNER_EMAIL")
}

// SendBookingConfirmation emails the client and alerts the studio owner
// about a new reservation, then fires a confirmation SMS. All asynchronous.
func (s *SenderService) SendBookingConfirmation(res db.Reservation) {
	data := entities.BookingEmailData{
		Name:          res.Name,
		BookingCode:   res.BookingCode,
		SessionType:   res.SessionType,
		DateFormatted: res.SlotDate.Format("02 Jan 2006"),
		Time:          res.SlotTime,
		Location:      res.Location,
		CurrentYear:   time.Now().Year(),
	}

	subject := fmt.Sprintf("Your photography session is booked - %s", data.BookingCode)
	plainText := fmt.Sprintf(
		"Hello %s,\n\nYour %s session is booked.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Location: %s\n\n"+
			"We will contact you within 24 hours to confirm.\n\n"+
			"Lenslight Photography. All rights reserved.",
		data.Name, data.SessionType, data.BookingCode, data.DateFormatted,
		data.Time, data.Location,
	)
	htmlBody := fmt.Sprintf(
		"<div style=\"font-family: sans-serif; max-width: 600px; margin: 0 auto;\">"+
			"<h2>Session Booked</h2>"+
			"<p>Hello %s,</p>"+
			"<p>Your <strong>%s</strong> session is booked.</p>"+
			"<p><strong>Booking Code:</strong> %s<br>"+
			"<strong>Date:</strong> %s<br>"+
			"<strong>Time:</strong> %s<br>"+
			"<strong>Location:</strong> %s</p>"+
			"<p>We will contact you within 24 hours to confirm.</p>"+
			"</div>",
		data.Name, data.SessionType, data.BookingCode, data.DateFormatted,
		data.Time, data.Location,
	)

	go func() {
		if err := s.mailer.Send(res.Email, res.Name, subject, plainText, htmlBody); err != nil {
			log.Printf("ALERT (async): confirmation email for booking %s failed: %v", res.BookingCode, err)
		}
	}()

	if owner := s.ownerEmail(); owner != "" {
		ownerSubject := fmt.Sprintf("New booking %s - %s at %s", data.BookingCode, data.DateFormatted, data.Time)
		ownerBody := fmt.Sprintf(
			"New booking request.\n\n"+
				"Code: %s\nClient: %s\nEmail: %s\nPhone: %s\n"+
				"Session: %s\nDate: %s\nTime: %s\nLocation: %s\nGuests: %s\nDuration: %s\n\nMessage:\n%s",
			data.BookingCode, res.Name, res.Email, res.Phone, res.SessionType,
			data.DateFormatted, res.SlotTime, res.Location, res.Guests, res.Duration, res.Message,
		)
		go func() {
			if err := s.mailer.Send(owner, "", ownerSubject, ownerBody, ""); err != nil {
				log.Printf("ALERT (async): owner alert for booking %s failed: %v", data.BookingCode, err)
			}
		}()
	}

	go func() {
		smsBody := fmt.Sprintf("Lenslight: your %s session %s is booked for %s at %s. Details in your email.",
			res.SessionType, res.BookingCode, data.DateFormatted, res.SlotTime)
		if err := s.sms.Send(res.Phone, smsBody); err != nil {
			log.Printf("Booking %s created, but the confirmation SMS to %s failed: %v",
				res.BookingCode, res.Phone, err)
		}
	}()
}

// SendBookingReminder emails the client the day before their session.
func (s *SenderService) SendBookingReminder(res db.Reservation) error {
	subject := fmt.Sprintf("Reminder: your %s session is tomorrow", res.SessionType)
	plainText := fmt.Sprintf(
		"Hello %s,\n\nA quick reminder: your %s session (%s) is tomorrow, %s at %s.\n\n"+
			"See you then!\n\nLenslight Photography.",
		res.Name, res.SessionType, res.BookingCode,
		res.SlotDate.Format("02 Jan 2006"), res.SlotTime,
	)
	return s.mailer.Send(res.Email, res.Name, subject, plainText, "")
}
