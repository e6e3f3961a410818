package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lenslight/internal/db"
	"lenslight/internal/entities"
	"lenslight/internal/repository"
	"lenslight/internal/service"
)

type stubReservationRepo struct {
	reservations []db.Reservation
	failWith     error
}

func (s *stubReservationRepo) CreateReservation(ctx context.Context, r *db.Reservation) error {
	if s.failWith != nil {
		return s.failWith
	}
	for _, existing := range s.reservations {
		if existing.SlotDate.Equal(r.SlotDate) && existing.SlotTime == r.SlotTime {
			return repository.ErrSlotTaken
		}
	}
	s.reservations = append(s.reservations, *r)
	return nil
}

func (s *stubReservationRepo) BookedSlots(ctx context.Context, day time.Time) ([]string, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var slots []string
	for _, r := range s.reservations {
		if r.SlotDate.Equal(day) {
			slots = append(slots, r.SlotTime)
		}
	}
	return slots, nil
}

func (s *stubReservationRepo) ListReservations(ctx context.Context, day *time.Time) ([]db.Reservation, error) {
	return s.reservations, s.failWith
}

func (s *stubReservationRepo) ReservationsForDay(ctx context.Context, day time.Time, unremindedOnly bool) ([]db.Reservation, error) {
	return nil, nil
}

func (s *stubReservationRepo) MarkReminded(ctx context.Context, ids []int) error { return nil }

type noopMailer struct{}

func (noopMailer) Send(toEmail, toName, subject, plainText, html string) error { return nil }
func (noopMailer) SendWithReplyTo(toEmail, toName, replyTo, subject, plainText, html string) error {
	return nil
}
func (noopMailer) Configured() bool { return true }

type noopSMS struct{}

func (noopSMS) Send(toNumber, body string) error { return nil }

func newBookingHandler(repo repository.ReservationRepository) *BookingHandler {
	sender := service.NewSenderService(noopMailer{}, noopSMS{})
	return NewBookingHandler(service.NewBookingService(repo, sender))
}

func postBooking(t *testing.T, handler *BookingHandler, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/booking", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)
	return rec
}

func bookingPayload() map[string]string {
	return map[string]string{
		"name":        "Ada",
		"email":       "ada@example.com",
		"phone":       "+2348012345678",
		"sessionType": "lifestyle",
		"date":        time.Now().AddDate(0, 0, 1).UTC().Format(time.RFC3339),
		"time":        "10:00 AM",
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		handler := newBookingHandler(&stubReservationRepo{})
		rec := postBooking(t, handler, bookingPayload())
		require.Equal(t, http.StatusOK, rec.Code)

		var resp entities.BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.BookingID)
		assert.Equal(t, "10:00 AM", resp.Details.Time)
	})

	t.Run("invalid email", func(t *testing.T) {
		handler := newBookingHandler(&stubReservationRepo{})
		payload := bookingPayload()
		payload["email"] = "not-an-email"
		rec := postBooking(t, handler, payload)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid email format")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		handler := newBookingHandler(&stubReservationRepo{})
		req := httptest.NewRequest("POST", "/booking", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		handler.CreateBooking(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("double booking", func(t *testing.T) {
		handler := newBookingHandler(&stubReservationRepo{})
		first := postBooking(t, handler, bookingPayload())
		require.Equal(t, http.StatusOK, first.Code)

		second := postBooking(t, handler, bookingPayload())
		require.Equal(t, http.StatusConflict, second.Code)
		assert.Contains(t, second.Body.String(), "This time slot is already booked")
	})

	t.Run("repository failure is a generic 500", func(t *testing.T) {
		var logs bytes.Buffer
		log.SetOutput(&logs)
		defer log.SetOutput(os.Stderr)

		handler := newBookingHandler(&stubReservationRepo{failWith: errors.New("db down")})
		rec := postBooking(t, handler, bookingPayload())
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Internal server error")
		assert.NotContains(t, rec.Body.String(), "db down")
		// Logged once, at the handler.
		assert.Equal(t, 1, strings.Count(logs.String(), "db down"))
	})
}

func TestBookedSlotsEndpoint(t *testing.T) {
	t.Run("returns reserved time labels", func(t *testing.T) {
		handler := newBookingHandler(&stubReservationRepo{})
		payload := bookingPayload()
		require.Equal(t, http.StatusOK, postBooking(t, handler, payload).Code)

		date, _ := time.Parse(time.RFC3339, payload["date"])
		req := httptest.NewRequest("GET", "/booking?date="+date.Format("2006-01-02"), nil)
		rec := httptest.NewRecorder()
		handler.BookedSlots(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp entities.BookedSlotsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"10:00 AM"}, resp.BookedSlots)
	})

	t.Run("missing date is a 400", func(t *testing.T) {
		handler := newBookingHandler(&stubReservationRepo{})
		rec := httptest.NewRecorder()
		handler.BookedSlots(rec, httptest.NewRequest("GET", "/booking", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unparseable date is a 400", func(t *testing.T) {
		handler := newBookingHandler(&stubReservationRepo{})
		rec := httptest.NewRecorder()
		handler.BookedSlots(rec, httptest.NewRequest("GET", "/booking?date=someday", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("repository failure degrades to an empty list", func(t *testing.T) {
		handler := newBookingHandler(&stubReservationRepo{failWith: errors.New("db down")})
		rec := httptest.NewRecorder()
		handler.BookedSlots(rec, httptest.NewRequest("GET", "/booking?date=2026-09-01", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp entities.BookedSlotsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.BookedSlots)
	})
}
