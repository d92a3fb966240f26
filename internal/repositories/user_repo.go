package repositories

import (
	"context"
	"strings"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

type UserRepository struct {
	c *collection[models.User]
}

func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{c: newCollection(store, storage.KeyUsers, models.ErrUserNotFound,
		func(u models.User) int { return u.ID },
		func(u *models.User, id int) { u.ID = id },
	)}
}

func (r *UserRepository) GetAllUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	return r.c.list(ctx, userPredicates(filter)...)
}

func (r *UserRepository) GetUsersByRole(ctx context.Context, role string) ([]models.User, error) {
	return r.c.list(ctx, func(u models.User) bool { return u.Role == role })
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int) (models.User, error) {
	return r.c.find(ctx, id)
}

// GetUserByEmail matches emails case-insensitively.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	users, err := r.c.list(ctx, func(u models.User) bool { return strings.EqualFold(u.Email, email) })
	if err != nil {
		return models.User{}, err
	}
	if len(users) == 0 {
		return models.User{}, models.ErrUserNotFound
	}
	return users[0], nil
}

// CreateUser rejects a duplicate email under the collection lock.
func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	created, err := r.c.insert(ctx, func(existing []models.User) error {
		for _, u := range existing {
			if strings.EqualFold(u.Email, user.Email) {
				return models.ErrDuplicateEmail
			}
		}
		return nil
	}, user)
	if err != nil {
		return models.User{}, err
	}
	return created[0], nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id int, mutate func(*models.User) error) (models.User, error) {
	return r.c.update(ctx, id, mutate)
}

// UpdateProfile applies the update after checking the new email is free.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, mutate func(*models.User) error) (models.User, error) {
	var out models.User
	_, err := r.c.mutateAll(ctx, func(users []models.User) ([]models.User, bool, error) {
		idx := -1
		for i := range users {
			if users[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return users, false, models.ErrUserNotFound
		}
		if err := mutate(&users[idx]); err != nil {
			return users, false, err
		}
		for i := range users {
			if i != idx && strings.EqualFold(users[i].Email, users[idx].Email) {
				return users, false, models.ErrEmailInUse
			}
		}
		out = users[idx]
		return users, true, nil
	})
	return out, err
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int, check func(models.User) error) (models.User, error) {
	return r.c.remove(ctx, id, check)
}

// SetAgentRating stores the aggregate rating of an agent.
func (r *UserRepository) SetAgentRating(ctx context.Context, agentID int, rating float64) error {
	_, err := r.c.update(ctx, agentID, func(u *models.User) error {
		if u.Agent == nil {
			return models.ErrAgentNotFound
		}
		u.Agent.Rating = rating
		return nil
	})
	return err
}
