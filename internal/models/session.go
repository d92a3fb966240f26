package models

import "time"

// Session is the logged-in subset of a User. It never holds the password.
type Session struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	License   string    `json:"license,omitempty"`
	Agency    string    `json:"agency,omitempty"`
	Rating    float64   `json:"rating,omitempty"`
	SessionID string    `json:"session_id"`
	LoginTime time.Time `json:"login_time"`
}

func NewSession(u User, sessionID string, now time.Time) Session {
	s := Session{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Phone:     u.Phone,
		SessionID: sessionID,
		LoginTime: now,
	}
	if u.Agent != nil {
		s.License = u.Agent.License
		s.Agency = u.Agent.Agency
		s.Rating = u.Agent.Rating
	}
	return s
}

type Tokens struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type LoginResponse struct {
	Session Session `json:"user"`
	Tokens  Tokens  `json:"tokens"`
}
