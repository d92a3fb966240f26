package repositories

import (
	"context"
	"time"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

type FavoriteRepository struct {
	c *collection[models.Favorite]
}

func NewFavoriteRepository(store storage.Store) *FavoriteRepository {
	return &FavoriteRepository{c: newCollection(store, storage.KeyFavorites, models.NewError(models.ErrNotFound, "Favorite not found"),
		func(f models.Favorite) int { return f.ID },
		func(f *models.Favorite, id int) { f.ID = id },
	)}
}

func (r *FavoriteRepository) GetByCustomer(ctx context.Context, customerID int) ([]models.Favorite, error) {
	return r.c.list(ctx, func(f models.Favorite) bool { return f.CustomerID == customerID })
}

// Toggle adds the property to the customer's favorites or removes it when
// already present. It reports whether the property is a favorite afterwards.
func (r *FavoriteRepository) Toggle(ctx context.Context, customerID, propertyID int, now time.Time) (bool, error) {
	var added bool
	_, err := r.c.mutateAll(ctx, func(favs []models.Favorite) ([]models.Favorite, bool, error) {
		for i, f := range favs {
			if f.CustomerID == customerID && f.PropertyID == propertyID {
				return append(favs[:i], favs[i+1:]...), true, nil
			}
		}
		added = true
		return favs, false, nil
	})
	if err != nil || !added {
		return false, err
	}
	_, err = r.c.insert(ctx, nil, models.Favorite{CustomerID: customerID, PropertyID: propertyID, CreatedAt: now})
	return err == nil, err
}

// RemoveProperty drops every favorite pointing at a deleted property.
func (r *FavoriteRepository) RemoveProperty(ctx context.Context, propertyID int) error {
	_, err := r.c.mutateAll(ctx, func(favs []models.Favorite) ([]models.Favorite, bool, error) {
		out := filterItems(favs, func(f models.Favorite) bool { return f.PropertyID != propertyID })
		return out, len(out) != len(favs), nil
	})
	return err
}
