package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	RoleAdmin    = "admin"
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

const (
	AgentPending  = "pending"
	AgentApproved = "approved"
	AgentRejected = "rejected"
)

// User is a marketplace account. Exactly one of Agent/Customer is set for
// agents and customers; admins carry neither.
type User struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Password  string           `json:"password,omitempty"`
	Phone     string           `json:"phone,omitempty"`
	Role      string           `json:"role"`
	Agent     *AgentProfile    `json:"agent,omitempty"`
	Customer  *CustomerProfile `json:"customer,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

type AgentProfile struct {
	License string  `json:"license"`
	Agency  string  `json:"agency"`
	Status  string  `json:"status"`
	Rating  float64 `json:"rating"`
}

type CustomerProfile struct {
	Address string `json:"address"`
}

func (u User) IsAgent() bool {
	return u.Role == RoleAgent && u.Agent != nil
}

func (u User) IsApprovedAgent() bool {
	return u.IsAgent() && u.Agent.Status == AgentApproved
}

// Public returns a copy without the password hash.
func (u User) Public() User {
	u.Password = ""
	return u
}

// UserSummary is the contact card embedded in detail views.
type UserSummary struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Phone   string  `json:"phone,omitempty"`
	Email   string  `json:"email"`
	Rating  float64 `json:"rating,omitempty"`
	License string  `json:"license,omitempty"`
	Agency  string  `json:"agency,omitempty"`
}

func (u User) Summary() UserSummary {
	s := UserSummary{ID: u.ID, Name: u.Name, Phone: u.Phone, Email: u.Email}
	if u.Agent != nil {
		s.Rating = u.Agent.Rating
		s.License = u.Agent.License
		s.Agency = u.Agent.Agency
	}
	return s
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	License  string `json:"license"`
	Agency   string `json:"agency"`
	Address  string `json:"address"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ProfileUpdate struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Agency  *string `json:"agency,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type Claims struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type UserFilter struct {
	Role   string
	Search string
}
