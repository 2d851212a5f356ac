package service

import (
	"fmt"
	"log"
	"time"

	"github.com/anwarbahou/saifautoBeta-sub000/internal/entities"
)

// UpcomingLister feeds the reminder job.
type UpcomingLister interface {
	ListUpcoming(from, to time.Time) ([]entities.BookingResponse, error)
}

// NotificationPurger retires old read notifications.
type NotificationPurger interface {
	Create(kind, message string) error
	DeleteReadOlderThan(before time.Time) (int64, error)
}

// JobService runs the scheduled staff-reminder pass. It only writes
// notification rows; booking statuses are never touched here, completing
// a rental stays a manual staff action.
type JobService struct {
	bookings UpcomingLister
	notifs   NotificationPurger
}

func NewJobService(bookings UpcomingLister, notifs NotificationPurger) *JobService {
	return &JobService{bookings: bookings, notifs: notifs}
}

// CreateUpcomingReminders files one staff notification per booking that
// picks up or returns within the next 24 hours.
func (s *JobService) CreateUpcomingReminders() error {
	log.Println("Cron Job: building staff reminders for the next 24h...")

	now := time.Now().UTC()
	upcoming, err := s.bookings.ListUpcoming(now, now.Add(24*time.Hour))
	if err != nil {
		return fmt.Errorf("cron job: failed to list upcoming bookings: %w", err)
	}
	if len(upcoming) == 0 {
		log.Println("Cron Job: no pickups or returns in the next 24h.")
		return nil
	}

	for _, b := range upcoming {
		var msg string
		if b.StartTime.After(now) && b.StartTime.Before(now.Add(24*time.Hour)) {
			msg = fmt.Sprintf("Pickup tomorrow: %s %s (%s) for %s at %s",
				b.CarMake, b.CarModel, b.LicensePlate, b.ClientName, b.PickupLocation)
		} else {
			msg = fmt.Sprintf("Return due: %s %s (%s) from %s",
				b.CarMake, b.CarModel, b.LicensePlate, b.ClientName)
		}
		if err := s.notifs.Create("reminder", msg); err != nil {
			log.Printf("Cron Job: could not create reminder for booking %d: %v", b.ID, err)
		}
	}
	log.Printf("Cron Job: filed %d reminder(s).", len(upcoming))
	return nil
}

// PurgeOldNotifications deletes read notifications older than 30 days.
func (s *JobService) PurgeOldNotifications() error {
	n, err := s.notifs.DeleteReadOlderThan(time.Now().UTC().Add(-30 * 24 * time.Hour))
	if err != nil {
		return fmt.Errorf("cron job: failed to purge notifications: %w", err)
	}
	if n > 0 {
		log.Printf("Cron Job: purged %d old notification(s).", n)
	}
	return nil
}
