package models

import (
	"errors"
)

// Error kinds. Every expected failure of a workflow action wraps one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation error")
)

// ActionError is an expected, user-facing failure of a workflow action.
type ActionError struct {
	Kind    error
	Message string
}

func (e *ActionError) Error() string {
	return e.Message
}

func (e *ActionError) Unwrap() error {
	return e.Kind
}

func NewError(kind error, message string) *ActionError {
	return &ActionError{Kind: kind, Message: message}
}

var (
	ErrInvalidCredentials = NewError(ErrUnauthorized, "Invalid credentials or role")
	ErrPendingApproval    = NewError(ErrUnauthorized, "Your agent account is pending approval")
	ErrDuplicateEmail     = NewError(ErrValidation, "Email already registered")
	ErrEmailInUse         = NewError(ErrValidation, "Email already in use")
	ErrInvalidEmail       = NewError(ErrValidation, "Invalid email format")
	ErrInvalidPassword    = NewError(ErrValidation, "Password must be at least 8 characters with 1 uppercase and 1 number")
	ErrInvalidPhone       = NewError(ErrValidation, "Invalid phone number")
	ErrInvalidRole        = NewError(ErrValidation, "Invalid role")
	ErrWrongPassword      = NewError(ErrValidation, "Current password is incorrect")
	ErrCannotDeleteAdmin  = NewError(ErrValidation, "Cannot delete admin user")
	ErrAlreadyReviewed    = NewError(ErrInvalidState, "Appointment already reviewed")
	ErrNotAuthorized      = NewError(ErrUnauthorized, "Unauthorized")

	ErrUserNotFound         = NewError(ErrNotFound, "User not found")
	ErrAgentNotFound        = NewError(ErrNotFound, "Agent not found")
	ErrCustomerNotFound     = NewError(ErrNotFound, "Customer not found")
	ErrPropertyNotFound     = NewError(ErrNotFound, "Property not found")
	ErrAppointmentNotFound  = NewError(ErrNotFound, "Appointment not found")
	ErrReviewNotFound       = NewError(ErrNotFound, "Review not found")
	ErrNotificationNotFound = NewError(ErrNotFound, "Notification not found")
	ErrEmailNotFound        = NewError(ErrNotFound, "Email not found")
)

// Result is the caller-facing shape of every action outcome.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(data interface{}) Result {
	return Result{Success: true, Data: data}
}

// Fail converts err into a failed Result. Errors that are not ActionErrors
// are reported with a generic message.
func Fail(err error) Result {
	var ae *ActionError
	if errors.As(err, &ae) {
		return Result{Message: ae.Message}
	}
	return Result{Message: "Internal server error"}
}
