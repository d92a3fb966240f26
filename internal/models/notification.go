package models

import "time"

const (
	NotifyAgentPending           = "agent_pending"
	NotifyAgentApproved          = "agent_approved"
	NotifyAgentRejected          = "agent_rejected"
	NotifyPropertyPending        = "property_pending"
	NotifyPropertyUpdated        = "property_updated"
	NotifyPropertyApproved       = "property_approved"
	NotifyPropertyRejected       = "property_rejected"
	NotifyAppointmentRequest     = "appointment_request"
	NotifyBookingConfirmed       = "booking_confirmed"
	NotifyAppointmentCancelled   = "appointment_cancelled"
	NotifyAppointmentRescheduled = "appointment_rescheduled"
	NotifyAppointmentCompleted   = "appointment_completed"
	NotifyReviewReceived         = "review_received"
	NotifyReviewPending          = "review_pending"
	NotifyReviewPublished        = "review_published"
	NotifyReminder               = "reminder"
	NotifyNewProperty            = "new_property"
)

// Metadata keys referencing the record a notification is about.
const (
	MetaAppointmentID = "appointment_id"
	MetaPropertyID    = "property_id"
	MetaReviewID      = "review_id"
	MetaUserID        = "user_id"
)

type Notification struct {
	ID        int            `json:"id"`
	UserID    int            `json:"user_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Metadata  map[string]int `json:"metadata"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"created_at"`
}

type Favorite struct {
	ID         int       `json:"id"`
	CustomerID int       `json:"customer_id"`
	PropertyID int       `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}
