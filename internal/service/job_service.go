package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"lenslight/internal/repository"
)

// JobService runs the scheduled maintenance work around reservations.
type JobService struct {
	Repo   repository.ReservationRepository
	Sender *SenderService
}

func NewJobService(repo repository.ReservationRepository, sender *SenderService) *JobService {
	return &JobService{Repo: repo, Sender: sender}
}

// SendUpcomingReminders emails every client with a session tomorrow that has
// not been reminded yet, then stamps the sent ones so a rerun is a no-op.
func (s *JobService) SendUpcomingReminders(ctx context.Context) error {
	log.Println("Cron Job: Checking for reservations needing a reminder...")

	tomorrow := TruncateToDay(time.Now().AddDate(0, 0, 1))
	reservations, err := s.Repo.ReservationsForDay(ctx, tomorrow, true)
	if err != nil {
		return fmt.Errorf("cron job: failed to get reservations for %s: %w",
			tomorrow.Format("2006-01-02"), err)
	}

	if len(reservations) == 0 {
		log.Println("Cron Job: No reservations need a reminder.")
		return nil
	}

	var remindedIDs []int
	for _, res := range reservations {
		if err := s.Sender.SendBookingReminder(res); err != nil {
			log.Printf("Cron Job: reminder for booking %s failed: %v", res.BookingCode, err)
			continue
		}
		remindedIDs = append(remindedIDs, res.ID)
	}

	if err := s.Repo.MarkReminded(ctx, remindedIDs); err != nil {
		return fmt.Errorf("cron job: failed to mark reservations reminded: %w", err)
	}

	log.Printf("Cron Job: Sent %d of %d reminders.", len(remindedIDs), len(reservations))
	return nil
}
