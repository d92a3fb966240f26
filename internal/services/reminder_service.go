package services

import (
	"context"
	"fmt"
	"time"

	"tesBack/internal/logger"
	"tesBack/internal/models"
	"tesBack/internal/repositories"
	"tesBack/internal/timeutil"
)

// ReminderService reminds customers of confirmed viewings scheduled for tomorrow.
type ReminderService struct {
	AppointmentRepo  *repositories.AppointmentRepository
	PropertyRepo     *repositories.PropertyRepository
	NotificationRepo *repositories.NotificationRepository
	Notifier         *NotificationService
	Logger           logger.Logger
}

// SendReminders emits at most one reminder per appointment and returns how
// many were written.
func (s *ReminderService) SendReminders(ctx context.Context, now time.Time) (int, error) {
	tomorrow := timeutil.Date(timeutil.StartOfDay(now).AddDate(0, 0, 1))
	appointments, err := s.AppointmentRepo.GetAppointments(ctx,
		models.AppointmentFilter{Status: models.AppointmentConfirmed}, now)
	if err != nil {
		return 0, err
	}
	properties, err := s.PropertyRepo.GetProperties(ctx, models.PropertyFilter{})
	if err != nil {
		return 0, err
	}
	names := make(map[int]string, len(properties))
	for _, p := range properties {
		names[p.ID] = p.Name
	}

	existing, err := s.NotificationRepo.GetByType(ctx, models.NotifyReminder)
	if err != nil {
		return 0, err
	}
	reminded := make(map[int]bool, len(existing))
	for _, n := range existing {
		reminded[n.Metadata[models.MetaAppointmentID]] = true
	}

	var ns []models.Notification
	for _, a := range appointments {
		if a.Date != tomorrow || reminded[a.ID] {
			continue
		}
		ns = append(ns, newNotification(a.CustomerID, models.NotifyReminder, "Appointment Reminder",
			fmt.Sprintf("Your appointment is tomorrow at %s for %s", a.Time, names[a.PropertyID]),
			map[string]int{models.MetaAppointmentID: a.ID}))
	}

	created, err := s.Notifier.Emit(ctx, ns...)
	if err != nil {
		return 0, err
	}
	if len(created) > 0 && s.Logger != nil {
		s.Logger.Infof("sent %d appointment reminders for %s", len(created), tomorrow)
	}
	return len(created), nil
}
