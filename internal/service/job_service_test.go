package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lenslight/internal/db"
)

func TestSendUpcomingReminders(t *testing.T) {
	tomorrow := TruncateToDay(time.Now().AddDate(0, 0, 1))
	nextWeek := TruncateToDay(time.Now().AddDate(0, 0, 7))

	repo := &fakeReservationRepo{}
	for i, res := range []db.Reservation{
		{BookingCode: "BK1", Name: "Ada", Email: "ada@example.com", SlotDate: tomorrow, SlotTime: "10:00 AM", SessionType: "lifestyle"},
		{BookingCode: "BK2", Name: "Grace", Email: "grace@example.com", SlotDate: tomorrow, SlotTime: "2:00 PM", SessionType: "event"},
		{BookingCode: "BK3", Name: "Lin", Email: "lin@example.com", SlotDate: nextWeek, SlotTime: "10:00 AM", SessionType: "family"},
	} {
		res.ID = i + 1
		repo.reservations = append(repo.reservations, res)
	}

	mailer := &fakeMailer{}
	svc := NewJobService(repo, NewSenderService(mailer, &fakeSMS{}))

	require.NoError(t, svc.SendUpcomingReminders(context.Background()))
	assert.Len(t, mailer.sent, 2)

	// Reminded reservations are stamped, so a rerun sends nothing.
	require.NoError(t, svc.SendUpcomingReminders(context.Background()))
	assert.Len(t, mailer.sent, 2)
}
