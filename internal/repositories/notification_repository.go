package repositories

import (
	"context"
	"sort"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

type NotificationRepository struct {
	c *collection[models.Notification]
}

func NewNotificationRepository(store storage.Store) *NotificationRepository {
	return &NotificationRepository{c: newCollection(store, storage.KeyNotifications, models.ErrNotificationNotFound,
		func(n models.Notification) int { return n.ID },
		func(n *models.Notification, id int) { n.ID = id },
	)}
}

// CreateNotifications writes every notification in one save.
func (r *NotificationRepository) CreateNotifications(ctx context.Context, ns ...models.Notification) ([]models.Notification, error) {
	if len(ns) == 0 {
		return nil, nil
	}
	return r.c.insert(ctx, nil, ns...)
}

// GetByUser returns the notifications of userID, newest first.
func (r *NotificationRepository) GetByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	out, err := r.c.list(ctx, func(n models.Notification) bool { return n.UserID == userID })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// GetByType returns every notification of typ, in insertion order.
func (r *NotificationRepository) GetByType(ctx context.Context, typ string) ([]models.Notification, error) {
	return r.c.list(ctx, func(n models.Notification) bool { return n.Type == typ })
}

// MarkRead flags a notification read. Only its recipient may do so.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int) (models.Notification, error) {
	return r.c.update(ctx, id, func(n *models.Notification) error {
		if n.UserID != userID {
			return models.ErrNotAuthorized
		}
		n.Read = true
		return nil
	})
}

// MarkAllRead returns how many notifications changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID int) (int, error) {
	var count int
	_, err := r.c.mutateAll(ctx, func(ns []models.Notification) ([]models.Notification, bool, error) {
		for i := range ns {
			if ns[i].UserID == userID && !ns[i].Read {
				ns[i].Read = true
				count++
			}
		}
		return ns, count > 0, nil
	})
	return count, err
}
