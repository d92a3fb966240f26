package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tesBack/internal/fsm"
	"tesBack/internal/logger"
	"tesBack/internal/metrics"
	"tesBack/internal/models"
	"tesBack/internal/repositories"
	"tesBack/internal/timeutil"
)

const defaultTopProperties = 5

var (
	ErrAgentNotApproved     = models.NewError(models.ErrUnauthorized, "Your agent account is pending approval")
	ErrCannotConfirm        = models.NewError(models.ErrInvalidState, "Only pending appointments can be confirmed")
	ErrCannotComplete       = models.NewError(models.ErrInvalidState, "Only confirmed appointments can be completed")
	ErrPropertyNameRequired = models.NewError(models.ErrValidation, "Property name, type and location are required")
	ErrInvalidPrice         = models.NewError(models.ErrValidation, "Price must be positive")
)

var weekdayLabels = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type AgentService struct {
	UserRepo        *repositories.UserRepository
	PropertyRepo    *repositories.PropertyRepository
	AppointmentRepo *repositories.AppointmentRepository
	ReviewRepo      *repositories.ReviewRepository
	FavoriteRepo    *repositories.FavoriteRepository
	Notifier        *NotificationService
	Logger          logger.Logger
	Metrics         *metrics.Metrics
	Now             Clock
}

func (s *AgentService) Appointments(ctx context.Context, agentID int, status string) ([]models.Appointment, error) {
	return s.AppointmentRepo.GetAppointments(ctx, models.AppointmentFilter{AgentID: agentID, Status: status}, s.Now.now())
}

func (s *AgentService) Properties(ctx context.Context, agentID int, status string) ([]models.Property, error) {
	return s.PropertyRepo.GetProperties(ctx, models.PropertyFilter{AgentID: agentID, Status: status})
}

func validateProperty(p models.Property) error {
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Type) == "" || strings.TrimSpace(p.Location) == "" {
		return ErrPropertyNameRequired
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// AddProperty lists a new property for admin approval.
func (s *AgentService) AddProperty(ctx context.Context, agentID int, in models.PropertyInput) (models.Property, error) {
	p, err := s.addProperty(ctx, agentID, in)
	return p, finish(s.Logger, s.Metrics, "add_property", agentID, err)
}

func (s *AgentService) addProperty(ctx context.Context, agentID int, in models.PropertyInput) (models.Property, error) {
	agent, err := s.UserRepo.GetUserByID(ctx, agentID)
	if err != nil || !agent.IsAgent() {
		return models.Property{}, models.ErrAgentNotFound
	}
	if !agent.IsApprovedAgent() {
		return models.Property{}, ErrAgentNotApproved
	}

	p := models.Property{AgentID: agentID, Status: models.PropertyPending, Images: []string{}, CreatedAt: s.Now.now()}
	in.Apply(&p)
	if err := validateProperty(p); err != nil {
		return models.Property{}, err
	}
	p, err = s.PropertyRepo.CreateProperty(ctx, p)
	if err != nil {
		return models.Property{}, err
	}
	s.notifyAdmins(ctx, "add_property", models.NotifyPropertyPending, "Property Pending Approval",
		fmt.Sprintf("%s is waiting for approval", p.Name), p.ID)
	return p, nil
}

func (s *AgentService) notifyAdmins(ctx context.Context, action, typ, title, message string, propertyID int) {
	s.Notifier.Notify(ctx, action,
		s.Notifier.adminNotifications(ctx, action, typ, title, message, map[string]int{models.MetaPropertyID: propertyID})...)
}

// UpdateProperty edits an owned property. Any edit sends it back to pending.
func (s *AgentService) UpdateProperty(ctx context.Context, propertyID, agentID int, in models.PropertyInput) (models.Property, error) {
	p, err := s.updateProperty(ctx, propertyID, agentID, in)
	return p, finish(s.Logger, s.Metrics, "update_property", agentID, err)
}

func (s *AgentService) updateProperty(ctx context.Context, propertyID, agentID int, in models.PropertyInput) (models.Property, error) {
	p, err := s.PropertyRepo.UpdateProperty(ctx, propertyID, func(p *models.Property) error {
		if p.AgentID != agentID {
			return models.ErrNotAuthorized
		}
		in.Apply(p)
		if err := validateProperty(*p); err != nil {
			return err
		}
		return transition(fsm.Property, &p.Status, models.PropertyPending,
			models.NewError(models.ErrInvalidState, "Property cannot be edited"))
	})
	if err != nil {
		return models.Property{}, err
	}
	s.notifyAdmins(ctx, "update_property", models.NotifyPropertyUpdated, "Property Updated",
		fmt.Sprintf("%s has been updated and needs re-approval", p.Name), p.ID)
	return p, nil
}

func (s *AgentService) DeleteProperty(ctx context.Context, propertyID, agentID int) error {
	_, err := s.PropertyRepo.DeleteProperty(ctx, propertyID, func(p models.Property) error {
		if p.AgentID != agentID {
			return models.ErrNotAuthorized
		}
		return nil
	})
	if err == nil && s.FavoriteRepo != nil {
		err = s.FavoriteRepo.RemoveProperty(ctx, propertyID)
	}
	return finish(s.Logger, s.Metrics, "delete_property", agentID, err)
}

func (s *AgentService) ConfirmAppointment(ctx context.Context, appointmentID, agentID int) (models.Appointment, error) {
	a, err := s.moveAppointment(ctx, appointmentID, agentID, models.AppointmentConfirmed, ErrCannotConfirm)
	if err == nil {
		s.Notifier.Notify(ctx, "confirm_appointment", newNotification(a.CustomerID, models.NotifyBookingConfirmed, "Booking Confirmed",
			fmt.Sprintf("Your appointment has been confirmed for %s", formatDate(a.Date)),
			map[string]int{models.MetaAppointmentID: a.ID}))
	}
	return a, finish(s.Logger, s.Metrics, "confirm_appointment", agentID, err)
}

func (s *AgentService) CompleteAppointment(ctx context.Context, appointmentID, agentID int) (models.Appointment, error) {
	a, err := s.moveAppointment(ctx, appointmentID, agentID, models.AppointmentCompleted, ErrCannotComplete)
	if err == nil {
		s.Notifier.Notify(ctx, "complete_appointment", newNotification(a.CustomerID, models.NotifyAppointmentCompleted, "Appointment Completed",
			"Your viewing is complete. Share your experience by leaving a review.",
			map[string]int{models.MetaAppointmentID: a.ID}))
	}
	return a, finish(s.Logger, s.Metrics, "complete_appointment", agentID, err)
}

func (s *AgentService) moveAppointment(ctx context.Context, appointmentID, agentID int, next string, denied *models.ActionError) (models.Appointment, error) {
	return s.AppointmentRepo.UpdateAppointment(ctx, appointmentID, func(a *models.Appointment) error {
		if a.AgentID != agentID {
			return models.ErrNotAuthorized
		}
		return transition(fsm.Appointment, &a.Status, next, denied)
	})
}

func (s *AgentService) Stats(ctx context.Context, agentID int) (models.AgentStats, error) {
	var st models.AgentStats
	appointments, err := s.Appointments(ctx, agentID, "")
	if err != nil {
		return st, err
	}
	properties, err := s.Properties(ctx, agentID, "")
	if err != nil {
		return st, err
	}

	today := timeutil.Date(s.Now.now())
	st.TotalAppointments = len(appointments)
	for _, a := range appointments {
		if a.Date == today {
			st.TodayAppointments++
		}
		switch a.Status {
		case models.AppointmentConfirmed:
			st.ConfirmedAppointments++
		case models.AppointmentCompleted:
			st.CompletedAppointments++
		}
	}
	st.TotalProperties = len(properties)
	for _, p := range properties {
		switch p.Status {
		case models.PropertyActive:
			st.ActiveProperties++
		case models.PropertyPending:
			st.PendingProperties++
		}
	}
	return st, nil
}

// Performance counts appointments per day over the last seven days, oldest first.
func (s *AgentService) Performance(ctx context.Context, agentID int) ([]models.DataPoint, error) {
	appointments, err := s.Appointments(ctx, agentID, "")
	if err != nil {
		return nil, err
	}
	perDay := make(map[string]int, len(appointments))
	for _, a := range appointments {
		perDay[a.Date]++
	}

	today := timeutil.StartOfDay(s.Now.now())
	out := make([]models.DataPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		out = append(out, models.DataPoint{
			Label: weekdayLabels[day.Weekday()],
			Value: perDay[day.Format(models.DateLayout)],
		})
	}
	return out, nil
}

// TopProperties ranks the agent's properties by appointment count.
func (s *AgentService) TopProperties(ctx context.Context, agentID, limit int) ([]models.RankedProperty, error) {
	if limit <= 0 {
		limit = defaultTopProperties
	}
	properties, err := s.Properties(ctx, agentID, "")
	if err != nil {
		return nil, err
	}
	appointments, err := s.Appointments(ctx, agentID, "")
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int)
	for _, a := range appointments {
		counts[a.PropertyID]++
	}
	out := make([]models.RankedProperty, 0, len(properties))
	for _, p := range properties {
		out = append(out, models.RankedProperty{Property: p, AppointmentCount: counts[p.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].AppointmentCount > out[j].AppointmentCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Reviews returns the agent's published reviews.
func (s *AgentService) Reviews(ctx context.Context, agentID int) ([]models.Review, error) {
	return s.ReviewRepo.GetReviews(ctx, models.ReviewFilter{AgentID: agentID, Status: models.ReviewPublished})
}

func (s *AgentService) Rating(ctx context.Context, agentID int) (float64, error) {
	reviews, err := s.Reviews(ctx, agentID)
	if err != nil {
		return 0, err
	}
	return repositories.AverageAgentRating(reviews, agentID), nil
}
