package repositories

import (
	"context"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

type PropertyRepository struct {
	c *collection[models.Property]
}

func NewPropertyRepository(store storage.Store) *PropertyRepository {
	return &PropertyRepository{c: newCollection(store, storage.KeyProperties, models.ErrPropertyNotFound,
		func(p models.Property) int { return p.ID },
		func(p *models.Property, id int) { p.ID = id },
	)}
}

func (r *PropertyRepository) GetProperties(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	return r.c.list(ctx, propertyPredicates(filter)...)
}

func (r *PropertyRepository) GetPropertyByID(ctx context.Context, id int) (models.Property, error) {
	return r.c.find(ctx, id)
}

func (r *PropertyRepository) CreateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	created, err := r.c.insert(ctx, nil, p)
	if err != nil {
		return models.Property{}, err
	}
	return created[0], nil
}

func (r *PropertyRepository) UpdateProperty(ctx context.Context, id int, mutate func(*models.Property) error) (models.Property, error) {
	return r.c.update(ctx, id, mutate)
}

func (r *PropertyRepository) DeleteProperty(ctx context.Context, id int, check func(models.Property) error) (models.Property, error) {
	return r.c.remove(ctx, id, check)
}
