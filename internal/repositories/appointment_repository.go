package repositories

import (
	"context"
	"time"

	"tesBack/internal/models"
	"tesBack/internal/storage"
)

// AppointmentRepository has no delete: appointments only change status.
type AppointmentRepository struct {
	c *collection[models.Appointment]
}

func NewAppointmentRepository(store storage.Store) *AppointmentRepository {
	return &AppointmentRepository{c: newCollection(store, storage.KeyAppointments, models.ErrAppointmentNotFound,
		func(a models.Appointment) int { return a.ID },
		func(a *models.Appointment, id int) { a.ID = id },
	)}
}

// GetAppointments applies filter; day filters are evaluated against now.
func (r *AppointmentRepository) GetAppointments(ctx context.Context, filter models.AppointmentFilter, now time.Time) ([]models.Appointment, error) {
	return r.c.list(ctx, appointmentPredicates(filter, now)...)
}

func (r *AppointmentRepository) GetAppointmentByID(ctx context.Context, id int) (models.Appointment, error) {
	return r.c.find(ctx, id)
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, a models.Appointment) (models.Appointment, error) {
	created, err := r.c.insert(ctx, nil, a)
	if err != nil {
		return models.Appointment{}, err
	}
	return created[0], nil
}

func (r *AppointmentRepository) UpdateAppointment(ctx context.Context, id int, mutate func(*models.Appointment) error) (models.Appointment, error) {
	return r.c.update(ctx, id, mutate)
}
