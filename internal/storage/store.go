// Package storage holds the key-value boundary every repository goes through.
// Values are whole JSON documents addressed by a key.
package storage

import (
	"context"
	"errors"
	"strconv"
)

// Collection and flag keys.
const (
	KeyUsers         = "users"
	KeyProperties    = "properties"
	KeyAppointments  = "appointments"
	KeyReviews       = "reviews"
	KeyNotifications = "notifications"
	KeyFavorites     = "favorites"
	KeyCurrentUser   = "currentUser"
	KeyInitialized   = "dataInitialized"
)

// SeqKey is the key of the id counter of a collection.
func SeqKey(collection string) string {
	return "seq:" + collection
}

// SessionKey is the key of a user's current session.
func SessionKey(userID int) string {
	return KeyCurrentUser + ":" + strconv.Itoa(userID)
}

// Store gets and sets JSON values by key.
type Store interface {
	// Get decodes the value at key into dest. found is false when the key is absent.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var ErrUnknownBackend = errors.New("storage: unknown backend")
