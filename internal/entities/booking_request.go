package entities

import "time"

// BookingRequest is the raw payload of POST /booking. All fields arrive as
// strings and are only trusted after validation.
type BookingRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	SessionType string `json:"sessionType"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Message     string `json:"message"`
	Guests      string `json:"guests"`
	Duration    string `json:"duration"`
}

// Booking is a validated reservation candidate. Date has been parsed and
// Phone normalized; SlotDate is Date truncated to the calendar day, which
// together with Time forms the conflict-checked slot.
type Booking struct {
	Name        string
	Email       string
	Phone       string
	SessionType string
	Date        time.Time
	SlotDate    time.Time
	Time        string
	Location    string
	Message     string
	Guests      string
	Duration    string
}

type BookingDetails struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	SessionType string `json:"sessionType"`
}

type BookingResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	BookingID string         `json:"bookingId"`
	Details   BookingDetails `json:"details"`
}

type BookedSlotsResponse struct {
	BookedSlots []string `json:"bookedSlots"`
}
