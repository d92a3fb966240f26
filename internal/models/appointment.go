package models

import "time"

const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// DateLayout is the layout of Appointment.Date.
const DateLayout = "2006-01-02"

type Appointment struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	AgentID    int       `json:"agent_id"`
	PropertyID int       `json:"property_id"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Status     string    `json:"status"`
	BookingID  string    `json:"booking_id"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingRequest struct {
	CustomerID int    `json:"customer_id"`
	AgentID    int    `json:"agent_id,omitempty"`
	PropertyID int    `json:"property_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Notes      string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Day filters understood by AppointmentFilter.Status next to plain statuses.
const (
	DayToday    = "today"
	DayUpcoming = "upcoming"
	DayPast     = "past"
)

type AppointmentFilter struct {
	Status     string
	AgentID    int
	CustomerID int
}

type AppointmentProperty struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Price    int64    `json:"price"`
	Location string   `json:"location"`
	Images   []string `json:"images"`
}

// AppointmentDetails is an appointment joined with its property, agent and customer.
type AppointmentDetails struct {
	Appointment
	Property *AppointmentProperty `json:"property"`
	Agent    *UserSummary         `json:"agent"`
	Customer *UserSummary         `json:"customer"`
}
