package models

import "time"

type AdminStats struct {
	TotalUsers     int `json:"total_users"`
	TotalCustomers int `json:"total_customers"`
	TotalAgents    int `json:"total_agents"`
	PendingAgents  int `json:"pending_agents"`

	TotalProperties   int `json:"total_properties"`
	ActiveProperties  int `json:"active_properties"`
	PendingProperties int `json:"pending_properties"`

	TotalAppointments     int `json:"total_appointments"`
	PendingAppointments   int `json:"pending_appointments"`
	ConfirmedAppointments int `json:"confirmed_appointments"`
	CompletedAppointments int `json:"completed_appointments"`

	TotalReviews     int     `json:"total_reviews"`
	PublishedReviews int     `json:"published_reviews"`
	PendingReviews   int     `json:"pending_reviews"`
	AverageRating    float64 `json:"average_rating"`
}

type AgentStats struct {
	TotalAppointments     int `json:"total_appointments"`
	TodayAppointments     int `json:"today_appointments"`
	ConfirmedAppointments int `json:"confirmed_appointments"`
	CompletedAppointments int `json:"completed_appointments"`
	TotalProperties       int `json:"total_properties"`
	ActiveProperties      int `json:"active_properties"`
	PendingProperties     int `json:"pending_properties"`
}

type CustomerStats struct {
	TotalBookings     int `json:"total_bookings"`
	UpcomingBookings  int `json:"upcoming_bookings"`
	CompletedBookings int `json:"completed_bookings"`
	TotalReviews      int `json:"total_reviews"`
	PublishedReviews  int `json:"published_reviews"`
}

// DataPoint is one bar of the agent performance chart.
type DataPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Activity struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}
