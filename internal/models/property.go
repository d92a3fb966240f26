package models

import "time"

const (
	PropertyPending  = "pending"
	PropertyActive   = "active"
	PropertyRejected = "rejected"
)

type Property struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Price       int64     `json:"price"`
	Location    string    `json:"location"`
	Bedrooms    *int      `json:"bedrooms,omitempty"`
	Bathrooms   *int      `json:"bathrooms,omitempty"`
	FloorArea   *int      `json:"floor_area,omitempty"`
	LotArea     *int      `json:"lot_area,omitempty"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	AgentID     int       `json:"agent_id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// PropertyInput carries the agent-editable fields. Nil pointers are left
// untouched on update.
type PropertyInput struct {
	Name        *string  `json:"name,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Price       *int64   `json:"price,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Bedrooms    *int     `json:"bedrooms,omitempty"`
	Bathrooms   *int     `json:"bathrooms,omitempty"`
	FloorArea   *int     `json:"floor_area,omitempty"`
	LotArea     *int     `json:"lot_area,omitempty"`
	Description *string  `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Apply copies the non-nil fields onto p.
func (in PropertyInput) Apply(p *Property) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Location != nil {
		p.Location = *in.Location
	}
	if in.Bedrooms != nil {
		p.Bedrooms = in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = in.Bathrooms
	}
	if in.FloorArea != nil {
		p.FloorArea = in.FloorArea
	}
	if in.LotArea != nil {
		p.LotArea = in.LotArea
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Images != nil {
		p.Images = in.Images
	}
}

type PropertyFilter struct {
	Status   string
	Type     string
	MinPrice int64
	MaxPrice int64
	Location string
	Bedrooms int
	Search   string
	AgentID  int
}

// PropertyDetails is a property joined with its agent's contact card.
type PropertyDetails struct {
	Property
	Agent *UserSummary `json:"agent"`
}

// RankedProperty is a property with the number of appointments booked for it.
type RankedProperty struct {
	Property
	AppointmentCount int `json:"appointment_count"`
}
