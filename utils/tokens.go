package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"tesBack/internal/models"
)

type Manager struct {
	signingKey string
	ttl        time.Duration
}

func NewManager(signingKey string, ttl time.Duration) (*Manager, error) {
	if signingKey == "" {
		return nil, errors.New("empty signing key")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	return &Manager{signingKey: signingKey, ttl: ttl}, nil
}

// NewJWT signs an access token carrying the user id and role.
func (m *Manager) NewJWT(userID int, role string, now time.Time) (models.Tokens, error) {
	expiresAt := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expiresAt.Unix(),
			IssuedAt:  now.Unix(),
			Subject:   fmt.Sprint(userID),
		},
	})

	signed, err := token.SignedString([]byte(m.signingKey))
	if err != nil {
		return models.Tokens{}, err
	}
	return models.Tokens{AccessToken: signed, ExpiresAt: expiresAt}, nil
}

func (m *Manager) Parse(accessToken string) (*models.Claims, error) {
	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (i interface{}, err error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.signingKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims.UserID == 0 || claims.Role == "" {
		return nil, errors.New("token is missing user claims")
	}
	return claims, nil
}
