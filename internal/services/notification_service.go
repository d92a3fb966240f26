package services

import (
	"context"

	"tesBack/internal/logger"
	"tesBack/internal/metrics"
	"tesBack/internal/models"
	"tesBack/internal/notify"
	"tesBack/internal/repositories"
)

type NotificationService struct {
	NotificationRepo *repositories.NotificationRepository
	UserRepo         *repositories.UserRepository
	Pusher           notify.Pusher
	Logger           logger.Logger
	Metrics          *metrics.Metrics
	Now              Clock
}

func newNotification(userID int, typ, title, message string, meta map[string]int) models.Notification {
	if meta == nil {
		meta = map[string]int{}
	}
	return models.Notification{UserID: userID, Type: typ, Title: title, Message: message, Metadata: meta}
}

// Emit stores ns in one save and then pushes them to live channels. Push
// failures are logged and never fail the action.
func (s *NotificationService) Emit(ctx context.Context, ns ...models.Notification) ([]models.Notification, error) {
	if len(ns) == 0 {
		return nil, nil
	}
	now := s.Now.now()
	for i := range ns {
		ns[i].CreatedAt = now
		ns[i].Read = false
	}
	created, err := s.NotificationRepo.CreateNotifications(ctx, ns...)
	if err != nil {
		return nil, err
	}
	for _, n := range created {
		s.Metrics.Notification(n.Type)
		if s.Pusher == nil {
			continue
		}
		if err := s.Pusher.Push(ctx, n); err != nil && s.Logger != nil {
			s.Logger.Errorf("push notification %d to user %d: %v", n.ID, n.UserID, err)
		}
	}
	return created, nil
}

// Notify emits ns for an action whose own write has already been saved. A
// failure is logged and not returned, so the caller still reports success.
func (s *NotificationService) Notify(ctx context.Context, action string, ns ...models.Notification) {
	if _, err := s.Emit(ctx, ns...); err != nil && s.Logger != nil {
		s.Logger.Errorf("%s: store %d notifications: %v", action, len(ns), err)
	}
}

// adminNotifications is ForAdmins for use after a saved write: a lookup
// failure is logged and yields no notifications.
func (s *NotificationService) adminNotifications(ctx context.Context, action, typ, title, message string, meta map[string]int) []models.Notification {
	ns, err := s.ForAdmins(ctx, typ, title, message, meta)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Errorf("%s: list admins: %v", action, err)
		}
		return nil
	}
	return ns
}

// ForAdmins builds one notification per admin account.
func (s *NotificationService) ForAdmins(ctx context.Context, typ, title, message string, meta map[string]int) ([]models.Notification, error) {
	admins, err := s.UserRepo.GetUsersByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	out := make([]models.Notification, 0, len(admins))
	for _, a := range admins {
		m := make(map[string]int, len(meta))
		for k, v := range meta {
			m[k] = v
		}
		out = append(out, newNotification(a.ID, typ, title, message, m))
	}
	return out, nil
}

func (s *NotificationService) ForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	return s.NotificationRepo.GetByUser(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID int) (int, error) {
	ns, err := s.NotificationRepo.GetByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	var count int
	for _, n := range ns {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID int) (models.Notification, error) {
	n, err := s.NotificationRepo.MarkRead(ctx, id, userID)
	return n, finish(s.Logger, s.Metrics, "mark_notification_read", userID, err)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID int) (int, error) {
	return s.NotificationRepo.MarkAllRead(ctx, userID)
}
