package repositories

import (
	"context"
	"fmt"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

// SessionRepository keeps one current session per user.
type SessionRepository struct {
	store storage.Store
}

func NewSessionRepository(store storage.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// Get loads the session of userID. A stored session owned by someone else
// counts as absent.
func (r *SessionRepository) Get(ctx context.Context, userID int) (models.Session, bool, error) {
	var s models.Session
	found, err := r.store.Get(ctx, storage.SessionKey(userID), &s)
	if err != nil {
		return models.Session{}, false, fmt.Errorf("load session: %w", err)
	}
	if !found || s.ID != userID {
		return models.Session{}, false, nil
	}
	return s, true, nil
}

func (r *SessionRepository) Set(ctx context.Context, s models.Session) error {
	if err := r.store.Set(ctx, storage.SessionKey(s.ID), s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, userID int) error {
	if err := r.store.Delete(ctx, storage.SessionKey(userID)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
