package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"lenslight/internal/db"
	"lenslight/internal/entities"
	apperrors "lenslight/internal/errors"
	"lenslight/internal/repository"
)

const slotTakenMessage = "This time slot is already booked. Please choose another time."

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern     = regexp.MustCompile(`^\+?\d{7,15}$`)
	phoneStripChars  = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "")
	requiredFields   = []string{"name", "email", "phone", "sessionType", "date", "time"}
	dateInputLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

type BookingService struct {
	Repo   repository.ReservationRepository
	Sender *SenderService
}

func NewBookingService(repo repository.ReservationRepository, sender *SenderService) *BookingService {
	return &BookingService{Repo: repo, Sender: sender}
}

// ValidateBookingRequest normalizes a raw request into a reservation
// candidate, or rejects it with a ValidationError naming the reason. Pure
// function of the input and the supplied clock reading.
func ValidateBookingRequest(req entities.BookingRequest, now time.Time) (*entities.Booking, error) {
	fields := map[string]*string{
		"name":        &req.Name,
		"email":       &req.Email,
		"phone":       &req.Phone,
		"sessionType": &req.SessionType,
		"date":        &req.Date,
		"time":        &req.Time,
		"location":    &req.Location,
		"message":     &req.Message,
		"guests":      &req.Guests,
		"duration":    &req.Duration,
	}
	for _, v := range fields {
		*v = strings.TrimSpace(*v)
	}
	for _, name := range requiredFields {
		if *fields[name] == "" {
			return nil, apperrors.NewValidationError("Missing required field: " + name)
		}
	}

	if !emailPattern.MatchString(req.Email) {
		return nil, apperrors.NewValidationError("Invalid email format")
	}

	phone := phoneStripChars.Replace(req.Phone)
	if !phonePattern.MatchString(phone) {
		return nil, apperrors.NewValidationError("Invalid phone number format")
	}

	date, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid date")
	}
	// Strictly greater than now: a date equal to the clock reading is not
	// in the future.
	if !date.After(now) {
		return nil, apperrors.NewValidationError("Booking date must be in the future")
	}

	return &entities.Booking{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       phone,
		SessionType: req.SessionType,
		Date:        date,
		SlotDate:    TruncateToDay(date),
		Time:        req.Time,
		Location:    req.Location,
		Message:     req.Message,
		Guests:      req.Guests,
		Duration:    req.Duration,
	}, nil
}

func parseBookingDate(value string) (time.Time, error) {
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", value)
}

// TruncateToDay drops the time-of-day component, yielding the calendar day
// the conflict check keys on.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CreateBooking validates the request, atomically reserves the slot and
// fires confirmation notifications. Notification failures do not affect the
// booking outcome.
func (s *BookingService) CreateBooking(ctx context.Context, req entities.BookingRequest) (*entities.BookingResponse, error) {
	booking, err := ValidateBookingRequest(req, time.Now())
	if err != nil {
		return nil, err
	}

	reservation := db.Reservation{
		BookingCode: fmt.Sprintf("BK%d", time.Now().UnixMilli()),
		Name:        booking.Name,
		Email:       booking.Email,
		Phone:       booking.Phone,
		SessionType: booking.SessionType,
		SlotDate:    booking.SlotDate,
		SlotTime:    booking.Time,
		Location:    booking.Location,
		Message:     booking.Message,
		Guests:      booking.Guests,
		Duration:    booking.Duration,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Repo.CreateReservation(ctx, &reservation); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, apperrors.NewConflictError(slotTakenMessage)
		}
		return nil, err
	}

	s.Sender.SendBookingConfirmation(reservation)

	return &entities.BookingResponse{
		Success:   true,
		Message:   "Booking request received. We will contact you within 24 hours to confirm.",
		BookingID: reservation.BookingCode,
		Details: entities.BookingDetails{
			Date:        reservation.SlotDate.Format("02 Jan 2006"),
			Time:        reservation.SlotTime,
			SessionType: reservation.SessionType,
		},
	}, nil
}

// BookedSlots returns the time labels already reserved on the given day. It
// shares slot semantics with CreateBooking: both resolve through the same
// (slot_date, slot_time) columns.
func (s *BookingService) BookedSlots(ctx context.Context, date time.Time) ([]string, error) {
	slots, err := s.Repo.BookedSlots(ctx, TruncateToDay(date))
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []string{}
	}
	return slots, nil
}

// ListReservations is the admin view over stored reservations, optionally
// filtered to one calendar day.
func (s *BookingService) ListReservations(ctx context.Context, date *time.Time) ([]db.Reservation, error) {
	var day *time.Time
	if date != nil {
		d := TruncateToDay(*date)
		day = &d
	}
	return s.Repo.ListReservations(ctx, day)
}
