package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tesBack/internal/fsm"
	"tesBack/internal/logger"
	"tesBack/internal/metrics"
	"tesBack/internal/models"
	"tesBack/internal/repositories"
)

const (
	recentAppointments = 5
	recentReviews      = 3
	defaultActivity    = 10
)

var (
	ErrAgentNotPending    = models.NewError(models.ErrInvalidState, "Agent application already reviewed")
	ErrPropertyNotPending = models.NewError(models.ErrInvalidState, "Property is not pending approval")
	ErrReviewNotPending   = models.NewError(models.ErrInvalidState, "Review already published")
)

type AdminService struct {
	UserRepo        *repositories.UserRepository
	PropertyRepo    *repositories.PropertyRepository
	AppointmentRepo *repositories.AppointmentRepository
	ReviewRepo      *repositories.ReviewRepository
	Notifier        *NotificationService
	Logger          logger.Logger
	Metrics         *metrics.Metrics
	Now             Clock
}

// audit records an admin decision on targetID together with the acting admin.
func (s *AdminService) audit(action string, targetID, adminID int, err error) error {
	err = finish(s.Logger, s.Metrics, action, adminID, err)
	if err == nil && s.Logger != nil {
		s.Logger.Infof("%s %d by admin %d", action, targetID, adminID)
	}
	return err
}

func publicUsers(users []models.User) []models.User {
	for i := range users {
		users[i] = users[i].Public()
	}
	return users
}

func (s *AdminService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users, err := s.UserRepo.GetAllUsers(ctx, filter)
	if err != nil {
		return nil, err
	}
	return publicUsers(users), nil
}

func (s *AdminService) ListProperties(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	return s.PropertyRepo.GetProperties(ctx, filter)
}

func (s *AdminService) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return s.AppointmentRepo.GetAppointments(ctx, filter, s.Now.now())
}

func (s *AdminService) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	return s.ReviewRepo.GetReviews(ctx, filter)
}

func (s *AdminService) PendingAgents(ctx context.Context) ([]models.User, error) {
	agents, err := s.UserRepo.GetUsersByRole(ctx, models.RoleAgent)
	if err != nil {
		return nil, err
	}
	pending := agents[:0]
	for _, a := range agents {
		if a.Agent != nil && a.Agent.Status == models.AgentPending {
			pending = append(pending, a.Public())
		}
	}
	return pending, nil
}

func (s *AdminService) ApproveAgent(ctx context.Context, agentID, adminID int) (models.User, error) {
	u, err := s.reviewAgent(ctx, agentID, models.AgentApproved, models.NotifyAgentApproved,
		"Account Approved", "Your agent account has been approved! You can now add properties.")
	return u, s.audit("approve_agent", agentID, adminID, err)
}

func (s *AdminService) RejectAgent(ctx context.Context, agentID, adminID int) (models.User, error) {
	u, err := s.reviewAgent(ctx, agentID, models.AgentRejected, models.NotifyAgentRejected,
		"Application Update", "Your agent application has been reviewed. Please contact support for more information.")
	return u, s.audit("reject_agent", agentID, adminID, err)
}

func (s *AdminService) reviewAgent(ctx context.Context, agentID int, status, typ, title, message string) (models.User, error) {
	user, err := s.UserRepo.UpdateUser(ctx, agentID, func(u *models.User) error {
		if !u.IsAgent() {
			return models.ErrAgentNotFound
		}
		return transition(fsm.Agent, &u.Agent.Status, status, ErrAgentNotPending)
	})
	if errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, models.ErrAgentNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	s.Notifier.Notify(ctx, "review_agent", newNotification(agentID, typ, title, message, nil))
	return user.Public(), nil
}

func (s *AdminService) ApproveProperty(ctx context.Context, propertyID, adminID int) (models.Property, error) {
	p, err := s.reviewProperty(ctx, propertyID, models.PropertyActive, models.NotifyPropertyApproved,
		"Property Approved", "%s has been approved and is now visible to customers")
	return p, s.audit("approve_property", propertyID, adminID, err)
}

func (s *AdminService) RejectProperty(ctx context.Context, propertyID, adminID int) (models.Property, error) {
	p, err := s.reviewProperty(ctx, propertyID, models.PropertyRejected, models.NotifyPropertyRejected,
		"Property Review", "%s needs revision. Please contact support for details.")
	return p, s.audit("reject_property", propertyID, adminID, err)
}

func (s *AdminService) reviewProperty(ctx context.Context, propertyID int, status, typ, title, format string) (models.Property, error) {
	p, err := s.PropertyRepo.UpdateProperty(ctx, propertyID, func(p *models.Property) error {
		return transition(fsm.Property, &p.Status, status, ErrPropertyNotPending)
	})
	if err != nil {
		return models.Property{}, err
	}
	s.Notifier.Notify(ctx, "review_property", newNotification(p.AgentID, typ, title, fmt.Sprintf(format, p.Name),
		map[string]int{models.MetaPropertyID: p.ID}))
	return p, nil
}

// ApproveReview publishes a review and refreshes the agent's rating.
func (s *AdminService) ApproveReview(ctx context.Context, reviewID, adminID int) (models.Review, error) {
	r, err := s.approveReview(ctx, reviewID)
	return r, s.audit("approve_review", reviewID, adminID, err)
}

func (s *AdminService) approveReview(ctx context.Context, reviewID int) (models.Review, error) {
	review, err := s.ReviewRepo.UpdateReview(ctx, reviewID, func(r *models.Review) error {
		return transition(fsm.Review, &r.Status, models.ReviewPublished, ErrReviewNotPending)
	})
	if err != nil {
		return models.Review{}, err
	}
	if err := s.refreshAgentRating(ctx, review.AgentID); err != nil {
		return models.Review{}, err
	}
	s.Notifier.Notify(ctx, "approve_review", newNotification(review.AgentID, models.NotifyReviewPublished, "Review Published",
		fmt.Sprintf("A %d-star review is now visible on your profile", review.Rating),
		map[string]int{models.MetaReviewID: review.ID}))
	return review, nil
}

// refreshAgentRating recomputes the mean agentRating over published reviews.
// A deleted agent is skipped.
func (s *AdminService) refreshAgentRating(ctx context.Context, agentID int) error {
	reviews, err := s.ReviewRepo.GetReviews(ctx, models.ReviewFilter{AgentID: agentID, Status: models.ReviewPublished})
	if err != nil {
		return err
	}
	err = s.UserRepo.SetAgentRating(ctx, agentID, repositories.AverageAgentRating(reviews, agentID))
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return err
}

func (s *AdminService) DeleteReview(ctx context.Context, reviewID, adminID int) error {
	review, err := s.ReviewRepo.DeleteReview(ctx, reviewID)
	if err == nil && review.Status == models.ReviewPublished {
		err = s.refreshAgentRating(ctx, review.AgentID)
	}
	return s.audit("delete_review", reviewID, adminID, err)
}

// DeleteUser removes any non-admin account.
func (s *AdminService) DeleteUser(ctx context.Context, userID, adminID int) error {
	_, err := s.UserRepo.DeleteUser(ctx, userID, func(u models.User) error {
		if u.Role == models.RoleAdmin {
			return models.ErrCannotDeleteAdmin
		}
		return nil
	})
	return s.audit("delete_user", userID, adminID, err)
}

func (s *AdminService) Stats(ctx context.Context) (models.AdminStats, error) {
	var st models.AdminStats
	users, err := s.UserRepo.GetAllUsers(ctx, models.UserFilter{})
	if err != nil {
		return st, err
	}
	properties, err := s.PropertyRepo.GetProperties(ctx, models.PropertyFilter{})
	if err != nil {
		return st, err
	}
	appointments, err := s.AppointmentRepo.GetAppointments(ctx, models.AppointmentFilter{}, s.Now.now())
	if err != nil {
		return st, err
	}
	reviews, err := s.ReviewRepo.GetReviews(ctx, models.ReviewFilter{})
	if err != nil {
		return st, err
	}

	st.TotalUsers = len(users)
	for _, u := range users {
		switch {
		case u.Role == models.RoleCustomer:
			st.TotalCustomers++
		case u.IsApprovedAgent():
			st.TotalAgents++
		case u.IsAgent() && u.Agent.Status == models.AgentPending:
			st.PendingAgents++
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

	st.TotalAppointments = len(appointments)
	for _, a := range appointments {
		switch a.Status {
		case models.AppointmentPending:
			st.PendingAppointments++
		case models.AppointmentConfirmed:
			st.ConfirmedAppointments++
		case models.AppointmentCompleted:
			st.CompletedAppointments++
		}
	}

	st.TotalReviews = len(reviews)
	for _, r := range reviews {
		switch r.Status {
		case models.ReviewPublished:
			st.PublishedReviews++
		case models.ReviewPending:
			st.PendingReviews++
		}
	}
	st.AverageRating = repositories.AverageRating(reviews)
	return st, nil
}

// RecentActivity merges the latest appointments and reviews, newest first.
func (s *AdminService) RecentActivity(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = defaultActivity
	}
	users, err := s.UserRepo.GetAllUsers(ctx, models.UserFilter{})
	if err != nil {
		return nil, err
	}
	properties, err := s.PropertyRepo.GetProperties(ctx, models.PropertyFilter{})
	if err != nil {
		return nil, err
	}
	appointments, err := s.AppointmentRepo.GetAppointments(ctx, models.AppointmentFilter{}, s.Now.now())
	if err != nil {
		return nil, err
	}
	reviews, err := s.ReviewRepo.GetReviews(ctx, models.ReviewFilter{})
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	titles := make(map[int]string, len(properties))
	for _, p := range properties {
		titles[p.ID] = p.Name
	}

	var out []models.Activity
	for _, a := range tail(appointments, recentAppointments) {
		out = append(out, models.Activity{
			Type:        "appointment",
			Title:       "New Appointment",
			Description: fmt.Sprintf("%s booked %s", names[a.CustomerID], titles[a.PropertyID]),
			Timestamp:   a.CreatedAt,
		})
	}
	for _, r := range tail(reviews, recentReviews) {
		out = append(out, models.Activity{
			Type:        "review",
			Title:       "New Review",
			Description: fmt.Sprintf("%s reviewed %s", names[r.CustomerID], titles[r.PropertyID]),
			Timestamp:   r.CreatedAt,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func tail[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
