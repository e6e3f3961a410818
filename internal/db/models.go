package db

import "time"

// Reservation mirrors the reservations table. SlotDate and SlotTime carry
// the unique constraint that prevents double-booking.
type Reservation struct {
	ID          int
	BookingCode string
	Name        string
	Email       string
	Phone       string
	SessionType string
	SlotDate    time.Time
	SlotTime    string
	Location    string
	Message     string
	Guests      string
	Duration    string
	RemindedAt  *time.Time
	CreatedAt   time.Time
}
