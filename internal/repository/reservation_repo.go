package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"lenslight/internal/db"
)

// ErrSlotTaken is returned when an insert loses to an existing reservation
// holding the same (slot_date, slot_time) pair.
var ErrSlotTaken = errors.New("slot already reserved")

const uniqueViolation = "23505"

type ReservationRepository interface {
	CreateReservation(ctx context.Context, r *db.Reservation) error
	BookedSlots(ctx context.Context, day time.Time) ([]string, error)
	ListReservations(ctx context.Context, day *time.Time) ([]db.Reservation, error)
	ReservationsForDay(ctx context.Context, day time.Time, unremindedOnly bool) ([]db.Reservation, error)
	MarkReminded(ctx context.Context, ids []int) error
}

type ReservationRepositoryImpl struct {
	DB *sql.DB
}

func NewReservationRepository(database *sql.DB) *ReservationRepositoryImpl {
	return &ReservationRepositoryImpl{DB: database}
}

// CreateReservation appends a reservation. The reservations table carries a
// UNIQUE(slot_date, slot_time) index, so the conflict check and the write
// are a single atomic statement; a concurrent double-book cannot slip
// between a read and a write.
func (r *ReservationRepositoryImpl) CreateReservation(ctx context.Context, res *db.Reservation) error {
	query := `
		INSERT INTO reservations
			(booking_code, name, email, phone, session_type, slot_date, slot_time,
			 location, message, guests, duration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (slot_date, slot_time) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		res.BookingCode, res.Name, res.Email, res.Phone, res.SessionType,
		res.SlotDate, res.SlotTime, res.Location, res.Message, res.Guests,
		res.Duration, res.CreatedAt,
	).Scan(&res.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// ON CONFLICT DO NOTHING returned no row: the slot is held.
			return ErrSlotTaken
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("error inserting reservation: %w", err)
	}
	return nil
}

// BookedSlots returns the time labels already reserved on the given calendar
// day. The read path resolves through the same slot_date/slot_time columns
// the unique index covers, keeping both paths' equality semantics identical.
func (r *ReservationRepositoryImpl) BookedSlots(ctx context.Context, day time.Time) ([]string, error) {
	query := `SELECT slot_time FROM reservations WHERE slot_date = $1 ORDER BY slot_time`
	rows, err := r.DB.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("error querying booked slots: %w", err)
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("error scanning slot: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating slots: %w", err)
	}
	return slots, nil
}

func (r *ReservationRepositoryImpl) ListReservations(ctx context.Context, day *time.Time) ([]db.Reservation, error) {
	query := `
		SELECT id, booking_code, name, email, phone, session_type, slot_date,
		       slot_time, location, message, guests, duration, reminded_at, created_at
		FROM reservations
	`
	args := []interface{}{}
	if day != nil {
		query += ` WHERE slot_date = $1`
		args = append(args, *day)
	}
	query += ` ORDER BY slot_date DESC, slot_time`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ReservationsForDay returns reservations on the given day, optionally only
// those not yet sent a reminder email.
func (r *ReservationRepositoryImpl) ReservationsForDay(ctx context.Context, day time.Time, unremindedOnly bool) ([]db.Reservation, error) {
	query := `
		SELECT id, booking_code, name, email, phone, session_type, slot_date,
		       slot_time, location, message, guests, duration, reminded_at, created_at
		FROM reservations
		WHERE slot_date = $1
	`
	if unremindedOnly {
		query += ` AND reminded_at IS NULL`
	}
	query += ` ORDER BY slot_time`

	rows, err := r.DB.QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("error querying reservations for day: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func (r *ReservationRepositoryImpl) MarkReminded(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE reservations SET reminded_at = NOW() WHERE id = ANY($1)`
	if _, err := r.DB.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("error marking reservations reminded: %w", err)
	}
	return nil
}

func scanReservations(rows *sql.Rows) ([]db.Reservation, error) {
	var reservations []db.Reservation
	for rows.Next() {
		var res db.Reservation
		if err := rows.Scan(
			&res.ID, &res.BookingCode, &res.Name, &res.Email, &res.Phone,
			&res.SessionType, &res.SlotDate, &res.SlotTime, &res.Location,
			&res.Message, &res.Guests, &res.Duration, &res.RemindedAt, &res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating reservations: %w", err)
	}
	return reservations, nil
}
