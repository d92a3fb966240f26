package services

import (
	"time"

	"tesBack/internal/logger"
	"tesBack/internal/metrics"
	"tesBack/internal/notify"
	"tesBack/internal/repositories"
	"tesBack/internal/storage"
	"tesBack/utils"
)

// Services groups every workflow over one store.
type Services struct {
	Auth          *AuthService
	Admin         *AdminService
	Agent         *AgentService
	Customer      *CustomerService
	Notifications *NotificationService
	Reminders     *ReminderService
}

type Deps struct {
	Store      storage.Store
	Tokens     *utils.Manager
	Pusher     notify.Pusher
	BcryptCost int
	Logger     logger.Logger
	Metrics    *metrics.Metrics
	Now        Clock
}

func New(d Deps) *Services {
	var (
		userRepo         = repositories.NewUserRepository(d.Store)
		propertyRepo     = repositories.NewPropertyRepository(d.Store)
		appointmentRepo  = repositories.NewAppointmentRepository(d.Store)
		reviewRepo       = repositories.NewReviewRepository(d.Store)
		notificationRepo = repositories.NewNotificationRepository(d.Store)
		favoriteRepo     = repositories.NewFavoriteRepository(d.Store)
		sessionRepo      = repositories.NewSessionRepository(d.Store)
	)

	notifier := &NotificationService{
		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
		Pusher:           d.Pusher,
		Logger:           d.Logger,
		Metrics:          d.Metrics,
		Now:              d.Now,
	}
	return &Services{
		Auth: &AuthService{
			UserRepo:     userRepo,
			SessionRepo:  sessionRepo,
			Notifier:     notifier,
			TokenManager: d.Tokens,
			BcryptCost:   d.BcryptCost,
			Logger:       d.Logger,
			Metrics:      d.Metrics,
			Now:          d.Now,
		},
		Admin: &AdminService{
			UserRepo:        userRepo,
			PropertyRepo:    propertyRepo,
			AppointmentRepo: appointmentRepo,
			ReviewRepo:      reviewRepo,
			Notifier:        notifier,
			Logger:          d.Logger,
			Metrics:         d.Metrics,
			Now:             d.Now,
		},
		Agent: &AgentService{
			UserRepo:        userRepo,
			PropertyRepo:    propertyRepo,
			AppointmentRepo: appointmentRepo,
			ReviewRepo:      reviewRepo,
			FavoriteRepo:    favoriteRepo,
			Notifier:        notifier,
			Logger:          d.Logger,
			Metrics:         d.Metrics,
			Now:             d.Now,
		},
		Customer: &CustomerService{
			UserRepo:        userRepo,
			PropertyRepo:    propertyRepo,
			AppointmentRepo: appointmentRepo,
			ReviewRepo:      reviewRepo,
			FavoriteRepo:    favoriteRepo,
			Notifier:        notifier,
			Logger:          d.Logger,
			Metrics:         d.Metrics,
			Now:             d.Now,
			BookingIDs:      NewBookingIDs(uint64(time.Now().UnixNano())),
		},
		Notifications: notifier,
		Reminders: &ReminderService{
			AppointmentRepo:  appointmentRepo,
			PropertyRepo:     propertyRepo,
			NotificationRepo: notificationRepo,
			Notifier:         notifier,
			Logger:           d.Logger,
		},
	}
}
