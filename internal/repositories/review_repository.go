package repositories

import (
	"context"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

type ReviewRepository struct {
	c *collection[models.Review]
}

func NewReviewRepository(store storage.Store) *ReviewRepository {
	return &ReviewRepository{c: newCollection(store, storage.KeyReviews, models.ErrReviewNotFound,
		func(r models.Review) int { return r.ID },
		func(r *models.Review, id int) { r.ID = id },
	)}
}

func (r *ReviewRepository) GetReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	return r.c.list(ctx, reviewPredicates(filter)...)
}

func (r *ReviewRepository) GetReviewByID(ctx context.Context, id int) (models.Review, error) {
	return r.c.find(ctx, id)
}

func (r *ReviewRepository) GetReviewByAppointment(ctx context.Context, appointmentID int) (models.Review, bool, error) {
	reviews, err := r.c.list(ctx, func(rev models.Review) bool { return rev.AppointmentID == appointmentID })
	if err != nil || len(reviews) == 0 {
		return models.Review{}, false, err
	}
	return reviews[0], true, nil
}

// CreateReview enforces one review per appointment under the collection lock.
func (r *ReviewRepository) CreateReview(ctx context.Context, rev models.Review) (models.Review, error) {
	created, err := r.c.insert(ctx, func(existing []models.Review) error {
		for _, e := range existing {
			if e.AppointmentID == rev.AppointmentID {
				return models.ErrAlreadyReviewed
			}
		}
		return nil
	}, rev)
	if err != nil {
		return models.Review{}, err
	}
	return created[0], nil
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, id int, mutate func(*models.Review) error) (models.Review, error) {
	return r.c.update(ctx, id, mutate)
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id int) (models.Review, error) {
	return r.c.remove(ctx, id, nil)
}
