package models

import "time"

const (
	ReviewPending   = "pending"
	ReviewPublished = "published"
)

type Review struct {
	ID             int       `json:"id"`
	CustomerID     int       `json:"customer_id"`
	PropertyID     int       `json:"property_id"`
	AppointmentID  int       `json:"appointment_id"`
	AgentID        int       `json:"agent_id"`
	Rating         int       `json:"rating"`
	PropertyRating int       `json:"property_rating"`
	AgentRating    int       `json:"agent_rating"`
	Comment        string    `json:"comment"`
	Images         []string  `json:"images"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type ReviewRequest struct {
	CustomerID     int      `json:"customer_id"`
	AppointmentID  int      `json:"appointment_id"`
	Rating         int      `json:"rating"`
	PropertyRating int      `json:"property_rating"`
	AgentRating    int      `json:"agent_rating"`
	Comment        string   `json:"comment"`
	Images         []string `json:"images"`
}

type ReviewFilter struct {
	Status     string
	AgentID    int
	CustomerID int
	PropertyID int
}
