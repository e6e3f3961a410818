package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"lenslight/internal/entities"
	apperrors "lenslight/internal/errors"
	"lenslight/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid request payload"))
		return
	}

	resp, err := h.Service.CreateBooking(r.Context(), req)
	if err != nil {
		if apperrors.StatusOf(err) == http.StatusInternalServerError {
			log.Printf("Booking creation failed: %v", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// BookedSlots handles GET /booking?date=. It is advisory: repository
// failures degrade to an empty slot list rather than an error.
func (h *BookingHandler) BookedSlots(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		writeError(w, apperrors.NewValidationError("Missing date parameter"))
		return
	}
	date, err := parseDateParam(dateParam)
	if err != nil {
		writeError(w, apperrors.NewValidationError("Invalid date parameter"))
		return
	}

	slots, err := h.Service.BookedSlots(r.Context(), date)
	if err != nil {
		log.Printf("Booked slots lookup failed, degrading to empty: %v", err)
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, entities.BookedSlotsResponse{BookedSlots: slots})
}

// ListReservations is the admin listing, optionally filtered by ?date=.
func (h *BookingHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	var day *time.Time
	if dateParam := r.URL.Query().Get("date"); dateParam != "" {
		date, err := parseDateParam(dateParam)
		if err != nil {
			writeError(w, apperrors.NewValidationError("Invalid date parameter"))
			return
		}
		day = &date
	}

	reservations, err := h.Service.ListReservations(r.Context(), day)
	if err != nil {
		log.Printf("Reservation listing failed: %v", err)
		writeError(w, apperrors.ErrInternal)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reservations": reservations})
}

func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
