package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"tesBack/internal/models"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.requestID, app.logRequest, app.metrics.Middleware, secureHeaders)
	public := alice.New()
	authMiddleware := alice.New(app.JWTMiddlewareWithRole())
	adminMiddleware := alice.New(app.JWTMiddlewareWithRole(models.RoleAdmin))
	agentMiddleware := alice.New(app.JWTMiddlewareWithRole(models.RoleAgent))
	customerMiddleware := alice.New(app.JWTMiddlewareWithRole(models.RoleCustomer))
	uploaderMiddleware := alice.New(app.JWTMiddlewareWithRole(models.RoleAgent, models.RoleCustomer))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_up", public.ThenFunc(app.authHandler.SignUp))
	mux.Post("/auth/sign_in", public.ThenFunc(app.authHandler.SignIn))
	mux.Post("/auth/sign_out", authMiddleware.ThenFunc(app.authHandler.SignOut))
	mux.Get("/auth/me", authMiddleware.ThenFunc(app.authHandler.Me))
	mux.Post("/auth/forgot_password", public.ThenFunc(app.authHandler.ForgotPassword))
	mux.Post("/auth/reset_password", public.ThenFunc(app.authHandler.ResetPassword))
	mux.Put("/auth/profile", authMiddleware.ThenFunc(app.authHandler.UpdateProfile))
	mux.Put("/auth/password", authMiddleware.ThenFunc(app.authHandler.ChangePassword))

	// Admin
	mux.Get("/admin/users", adminMiddleware.ThenFunc(app.adminHandler.Users))
	mux.Del("/admin/users/:id", adminMiddleware.ThenFunc(app.adminHandler.DeleteUser))
	mux.Get("/admin/agents/pending", adminMiddleware.ThenFunc(app.adminHandler.PendingAgents))
	mux.Put("/admin/agents/:id/approve", adminMiddleware.ThenFunc(app.adminHandler.ApproveAgent))
	mux.Put("/admin/agents/:id/reject", adminMiddleware.ThenFunc(app.adminHandler.RejectAgent))
	mux.Get("/admin/properties", adminMiddleware.ThenFunc(app.adminHandler.Properties))
	mux.Put("/admin/properties/:id/approve", adminMiddleware.ThenFunc(app.adminHandler.ApproveProperty))
	mux.Put("/admin/properties/:id/reject", adminMiddleware.ThenFunc(app.adminHandler.RejectProperty))
	mux.Get("/admin/appointments", adminMiddleware.ThenFunc(app.adminHandler.Appointments))
	mux.Get("/admin/reviews", adminMiddleware.ThenFunc(app.adminHandler.Reviews))
	mux.Put("/admin/reviews/:id/approve", adminMiddleware.ThenFunc(app.adminHandler.ApproveReview))
	mux.Del("/admin/reviews/:id", adminMiddleware.ThenFunc(app.adminHandler.DeleteReview))
	mux.Get("/admin/stats", adminMiddleware.ThenFunc(app.adminHandler.Stats))
	mux.Get("/admin/activity", adminMiddleware.ThenFunc(app.adminHandler.Activity))

	// Agent
	mux.Get("/agent/appointments", agentMiddleware.ThenFunc(app.agentHandler.Appointments))
	mux.Put("/agent/appointments/:id/confirm", agentMiddleware.ThenFunc(app.agentHandler.ConfirmAppointment))
	mux.Put("/agent/appointments/:id/complete", agentMiddleware.ThenFunc(app.agentHandler.CompleteAppointment))
	mux.Get("/agent/properties", agentMiddleware.ThenFunc(app.agentHandler.Properties))
	mux.Post("/agent/properties", agentMiddleware.ThenFunc(app.agentHandler.AddProperty))
	mux.Put("/agent/properties/:id", agentMiddleware.ThenFunc(app.agentHandler.UpdateProperty))
	mux.Del("/agent/properties/:id", agentMiddleware.ThenFunc(app.agentHandler.DeleteProperty))
	mux.Get("/agent/stats", agentMiddleware.ThenFunc(app.agentHandler.Stats))
	mux.Get("/agent/performance", agentMiddleware.ThenFunc(app.agentHandler.Performance))
	mux.Get("/agent/top_properties", agentMiddleware.ThenFunc(app.agentHandler.TopProperties))
	mux.Get("/agent/reviews", agentMiddleware.ThenFunc(app.agentHandler.Reviews))

	// Customer
	mux.Get("/properties", public.ThenFunc(app.customerHandler.Properties))
	mux.Get("/properties/:id", public.ThenFunc(app.customerHandler.Property))
	mux.Get("/appointments/:id", authMiddleware.ThenFunc(app.customerHandler.Appointment))
	mux.Post("/customer/appointments", customerMiddleware.ThenFunc(app.customerHandler.Book))
	mux.Get("/customer/appointments", customerMiddleware.ThenFunc(app.customerHandler.Bookings))
	mux.Put("/customer/appointments/:id/cancel", customerMiddleware.ThenFunc(app.customerHandler.Cancel))
	mux.Put("/customer/appointments/:id/reschedule", customerMiddleware.ThenFunc(app.customerHandler.Reschedule))
	mux.Get("/customer/appointments/:id/can_review", customerMiddleware.ThenFunc(app.customerHandler.CanReview))
	mux.Post("/customer/reviews", customerMiddleware.ThenFunc(app.customerHandler.SubmitReview))
	mux.Get("/customer/reviews", customerMiddleware.ThenFunc(app.customerHandler.Reviews))
	mux.Get("/customer/stats", customerMiddleware.ThenFunc(app.customerHandler.Stats))
	mux.Get("/customer/favorites", customerMiddleware.ThenFunc(app.customerHandler.Favorites))
	mux.Post("/customer/favorites/:id", customerMiddleware.ThenFunc(app.customerHandler.ToggleFavorite))

	// Notifications
	mux.Get("/notifications", authMiddleware.ThenFunc(app.notificationHandler.List))
	mux.Get("/notifications/unread", authMiddleware.ThenFunc(app.notificationHandler.UnreadCount))
	mux.Put("/notifications/read_all", authMiddleware.ThenFunc(app.notificationHandler.MarkAllRead))
	mux.Put("/notifications/:id/read", authMiddleware.ThenFunc(app.notificationHandler.MarkRead))
	mux.Get("/ws/notifications", authMiddleware.ThenFunc(app.notificationHandler.Live))

	// Images
	mux.Post("/uploads/images", uploaderMiddleware.ThenFunc(app.uploadHandler.UploadImage))

	mux.Get("/metrics", app.metrics.Handler())

	return standardMiddleware.Then(mux)
}
