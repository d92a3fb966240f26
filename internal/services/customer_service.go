package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"tesBack/internal/fsm"
	"tesBack/internal/logger"
	"tesBack/internal/metrics"
	"tesBack/internal/models"
	"tesBack/internal/repositories"
	"tesBack/internal/timeutil"
)

var (
	ErrCannotCancel        = models.NewError(models.ErrInvalidState, "Cannot cancel this appointment")
	ErrCannotReschedule    = models.NewError(models.ErrInvalidState, "Cannot reschedule this appointment")
	ErrCannotReview        = models.NewError(models.ErrInvalidState, "Only completed appointments can be reviewed")
	ErrPropertyUnavailable = models.NewError(models.ErrInvalidState, "Property is not available for booking")
	ErrAgentMismatch       = models.NewError(models.ErrValidation, "Agent does not manage this property")
	ErrInvalidDate         = models.NewError(models.ErrValidation, "Invalid appointment date")
	ErrPastDate            = models.NewError(models.ErrValidation, "Appointment date cannot be in the past")
	ErrTimeRequired        = models.NewError(models.ErrValidation, "Appointment time is required")
	ErrInvalidRating       = models.NewError(models.ErrValidation, "Ratings must be between 1 and 5")
)

type CustomerService struct {
	UserRepo        *repositories.UserRepository
	PropertyRepo    *repositories.PropertyRepository
	AppointmentRepo *repositories.AppointmentRepository
	ReviewRepo      *repositories.ReviewRepository
	FavoriteRepo    *repositories.FavoriteRepository
	Notifier        *NotificationService
	Logger          logger.Logger
	Metrics         *metrics.Metrics
	Now             Clock
	BookingIDs      *BookingIDs
}

// BookingIDs issues TES-YYYY-MM-NNN booking ids with a random three digit
// suffix. Safe for concurrent use.
type BookingIDs struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBookingIDs(seed uint64) *BookingIDs {
	return &BookingIDs{rnd: rand.New(rand.NewSource(seed))}
}

func (g *BookingIDs) Next(now time.Time) string {
	g.mu.Lock()
	n := g.rnd.Intn(1000)
	g.mu.Unlock()
	return fmt.Sprintf("TES-%04d-%02d-%03d", now.Year(), int(now.Month()), n)
}

func (s *CustomerService) bookingIDs() *BookingIDs {
	if s.BookingIDs == nil {
		return NewBookingIDs(uint64(time.Now().UnixNano()))
	}
	return s.BookingIDs
}

func (s *CustomerService) Bookings(ctx context.Context, customerID int, status string) ([]models.Appointment, error) {
	return s.AppointmentRepo.GetAppointments(ctx, models.AppointmentFilter{CustomerID: customerID, Status: status}, s.Now.now())
}

func (s *CustomerService) Reviews(ctx context.Context, customerID int) ([]models.Review, error) {
	return s.ReviewRepo.GetReviews(ctx, models.ReviewFilter{CustomerID: customerID})
}

// validateSlot checks date is a calendar date not before today.
func (s *CustomerService) validateSlot(date, slot string) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	if date < timeutil.Date(s.Now.now()) {
		return ErrPastDate
	}
	if strings.TrimSpace(slot) == "" {
		return ErrTimeRequired
	}
	return nil
}

// BookAppointment requests a viewing of an active property. The agent is the
// property's owner.
func (s *CustomerService) BookAppointment(ctx context.Context, req models.BookingRequest) (models.Appointment, error) {
	a, err := s.bookAppointment(ctx, req)
	return a, finish(s.Logger, s.Metrics, "book_appointment", req.CustomerID, err)
}

func (s *CustomerService) bookAppointment(ctx context.Context, req models.BookingRequest) (models.Appointment, error) {
	customer, err := s.UserRepo.GetUserByID(ctx, req.CustomerID)
	if err != nil || customer.Role != models.RoleCustomer {
		return models.Appointment{}, models.ErrCustomerNotFound
	}
	property, err := s.PropertyRepo.GetPropertyByID(ctx, req.PropertyID)
	if err != nil {
		return models.Appointment{}, err
	}
	if property.Status != models.PropertyActive {
		return models.Appointment{}, ErrPropertyUnavailable
	}
	if req.AgentID != 0 && req.AgentID != property.AgentID {
		return models.Appointment{}, ErrAgentMismatch
	}
	if err := s.validateSlot(req.Date, req.Time); err != nil {
		return models.Appointment{}, err
	}

	now := s.Now.now()
	a, err := s.AppointmentRepo.CreateAppointment(ctx, models.Appointment{
		CustomerID: customer.ID,
		AgentID:    property.AgentID,
		PropertyID: property.ID,
		Date:       req.Date,
		Time:       req.Time,
		Status:     models.AppointmentPending,
		BookingID:  s.bookingIDs().Next(now),
		Notes:      req.Notes,
		CreatedAt:  now,
	})
	if err != nil {
		return models.Appointment{}, err
	}

	s.Notifier.Notify(ctx, "book_appointment",
		newNotification(a.AgentID, models.NotifyAppointmentRequest, "New Appointment Request",
			fmt.Sprintf("%s requested an appointment for %s", customer.Name, property.Name),
			map[string]int{models.MetaAppointmentID: a.ID}),
		newNotification(a.CustomerID, models.NotifyBookingConfirmed, "Booking Received",
			"Your appointment request has been submitted and is pending confirmation",
			map[string]int{models.MetaAppointmentID: a.ID}),
	)
	return a, nil
}

func (s *CustomerService) CancelAppointment(ctx context.Context, appointmentID, customerID int) (models.Appointment, error) {
	a, err := s.AppointmentRepo.UpdateAppointment(ctx, appointmentID, func(a *models.Appointment) error {
		if a.CustomerID != customerID {
			return models.ErrNotAuthorized
		}
		return transition(fsm.Appointment, &a.Status, models.AppointmentCancelled, ErrCannotCancel)
	})
	if err == nil {
		s.Notifier.Notify(ctx, "cancel_appointment", newNotification(a.AgentID, models.NotifyAppointmentCancelled, "Appointment Cancelled",
			"An appointment has been cancelled", map[string]int{models.MetaAppointmentID: a.ID}))
	}
	return a, finish(s.Logger, s.Metrics, "cancel_appointment", customerID, err)
}

// RescheduleAppointment moves the slot and sends the appointment back to
// pending for the agent to confirm again.
func (s *CustomerService) RescheduleAppointment(ctx context.Context, appointmentID, customerID int, req models.RescheduleRequest) (models.Appointment, error) {
	a, err := s.AppointmentRepo.UpdateAppointment(ctx, appointmentID, func(a *models.Appointment) error {
		if a.CustomerID != customerID {
			return models.ErrNotAuthorized
		}
		if fsm.IsTerminal(fsm.Appointment, a.Status) {
			return ErrCannotReschedule
		}
		if err := s.validateSlot(req.Date, req.Time); err != nil {
			return err
		}
		if err := transition(fsm.Appointment, &a.Status, models.AppointmentPending, ErrCannotReschedule); err != nil {
			return err
		}
		a.Date = req.Date
		a.Time = req.Time
		return nil
	})
	if err == nil {
		s.Notifier.Notify(ctx, "reschedule_appointment", newNotification(a.AgentID, models.NotifyAppointmentRescheduled, "Appointment Rescheduled",
			fmt.Sprintf("An appointment has been rescheduled to %s at %s", formatDate(a.Date), a.Time),
			map[string]int{models.MetaAppointmentID: a.ID}))
	}
	return a, finish(s.Logger, s.Metrics, "reschedule_appointment", customerID, err)
}

func validRating(v int) bool {
	return v >= 1 && v <= 5
}

// SubmitReview records a pending review of a completed appointment. Agent and
// property come from the appointment.
func (s *CustomerService) SubmitReview(ctx context.Context, req models.ReviewRequest) (models.Review, error) {
	r, err := s.submitReview(ctx, req)
	return r, finish(s.Logger, s.Metrics, "submit_review", req.CustomerID, err)
}

func (s *CustomerService) submitReview(ctx context.Context, req models.ReviewRequest) (models.Review, error) {
	a, err := s.AppointmentRepo.GetAppointmentByID(ctx, req.AppointmentID)
	if err != nil {
		return models.Review{}, err
	}
	if a.CustomerID != req.CustomerID {
		return models.Review{}, models.ErrNotAuthorized
	}
	if a.Status != models.AppointmentCompleted {
		return models.Review{}, ErrCannotReview
	}
	if !validRating(req.Rating) || !validRating(req.PropertyRating) || !validRating(req.AgentRating) {
		return models.Review{}, ErrInvalidRating
	}
	images := req.Images
	if images == nil {
		images = []string{}
	}

	review, err := s.ReviewRepo.CreateReview(ctx, models.Review{
		CustomerID:     a.CustomerID,
		PropertyID:     a.PropertyID,
		AppointmentID:  a.ID,
		AgentID:        a.AgentID,
		Rating:         req.Rating,
		PropertyRating: req.PropertyRating,
		AgentRating:    req.AgentRating,
		Comment:        strings.TrimSpace(req.Comment),
		Images:         images,
		Status:         models.ReviewPending,
		CreatedAt:      s.Now.now(),
	})
	if err != nil {
		return models.Review{}, err
	}

	admins := s.Notifier.adminNotifications(ctx, "submit_review", models.NotifyReviewPending, "Review Pending Approval",
		"A new review is waiting for moderation", map[string]int{models.MetaReviewID: review.ID})
	ns := append([]models.Notification{
		newNotification(review.AgentID, models.NotifyReviewReceived, "New Review Received",
			fmt.Sprintf("You received a %d-star review", review.Rating), map[string]int{models.MetaReviewID: review.ID}),
	}, admins...)
	s.Notifier.Notify(ctx, "submit_review", ns...)
	return review, nil
}

// CanReviewAppointment reports whether customerID may review the appointment now.
func (s *CustomerService) CanReviewAppointment(ctx context.Context, appointmentID, customerID int) (bool, error) {
	a, err := s.AppointmentRepo.GetAppointmentByID(ctx, appointmentID)
	if errors.Is(err, models.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if a.Status != models.AppointmentCompleted || a.CustomerID != customerID {
		return false, nil
	}
	_, reviewed, err := s.ReviewRepo.GetReviewByAppointment(ctx, appointmentID)
	return !reviewed, err
}

// AvailableProperties lists active properties only.
func (s *CustomerService) AvailableProperties(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	filter.Status = models.PropertyActive
	filter.AgentID = 0
	return s.PropertyRepo.GetProperties(ctx, filter)
}

func (s *CustomerService) PropertyDetails(ctx context.Context, propertyID int) (models.PropertyDetails, error) {
	p, err := s.PropertyRepo.GetPropertyByID(ctx, propertyID)
	if err != nil {
		return models.PropertyDetails{}, err
	}
	details := models.PropertyDetails{Property: p}
	if agent, err := s.UserRepo.GetUserByID(ctx, p.AgentID); err == nil {
		summary := agent.Summary()
		details.Agent = &summary
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.PropertyDetails{}, err
	}
	return details, nil
}

func (s *CustomerService) AppointmentDetails(ctx context.Context, appointmentID int) (models.AppointmentDetails, error) {
	a, err := s.AppointmentRepo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return models.AppointmentDetails{}, err
	}
	details := models.AppointmentDetails{Appointment: a}

	if p, err := s.PropertyRepo.GetPropertyByID(ctx, a.PropertyID); err == nil {
		details.Property = &models.AppointmentProperty{
			ID: p.ID, Name: p.Name, Type: p.Type, Price: p.Price, Location: p.Location, Images: p.Images,
		}
	} else if !errors.Is(err, models.ErrNotFound) {
		return models.AppointmentDetails{}, err
	}

	users, err := s.UserRepo.GetAllUsers(ctx, models.UserFilter{})
	if err != nil {
		return models.AppointmentDetails{}, err
	}
	for _, u := range users {
		summary := u.Summary()
		switch u.ID {
		case a.AgentID:
			summary.License, summary.Agency = "", ""
			details.Agent = &summary
		case a.CustomerID:
			details.Customer = &summary
		}
	}
	return details, nil
}

func (s *CustomerService) Stats(ctx context.Context, customerID int) (models.CustomerStats, error) {
	var st models.CustomerStats
	appointments, err := s.Bookings(ctx, customerID, "")
	if err != nil {
		return st, err
	}
	reviews, err := s.Reviews(ctx, customerID)
	if err != nil {
		return st, err
	}

	today := timeutil.Date(s.Now.now())
	st.TotalBookings = len(appointments)
	for _, a := range appointments {
		switch {
		case a.Status == models.AppointmentConfirmed && a.Date >= today:
			st.UpcomingBookings++
		case a.Status == models.AppointmentCompleted:
			st.CompletedBookings++
		}
	}
	st.TotalReviews = len(reviews)
	for _, r := range reviews {
		if r.Status == models.ReviewPublished {
			st.PublishedReviews++
		}
	}
	return st, nil
}

// ToggleFavorite reports whether the property is a favorite afterwards.
func (s *CustomerService) ToggleFavorite(ctx context.Context, customerID, propertyID int) (bool, error) {
	if _, err := s.PropertyRepo.GetPropertyByID(ctx, propertyID); err != nil {
		return false, err
	}
	return s.FavoriteRepo.Toggle(ctx, customerID, propertyID, s.Now.now())
}

// Favorites returns the favorited properties that still exist.
func (s *CustomerService) Favorites(ctx context.Context, customerID int) ([]models.Property, error) {
	favs, err := s.FavoriteRepo.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	properties, err := s.PropertyRepo.GetProperties(ctx, models.PropertyFilter{})
	if err != nil {
		return nil, err
	}
	byID := make(map[int]models.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}
	out := make([]models.Property, 0, len(favs))
	for _, f := range favs {
		if p, ok := byID[f.PropertyID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
