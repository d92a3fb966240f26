package services

import (
	"errors"
	"time"

	"tesBack/internal/fsm"
	"tesBack/internal/logger"
	"tesBack/internal/metrics"
	"tesBack/internal/models"
	"tesBack/internal/timeutil"
)

// Clock returns the current time. Services fall back to Asia/Manila wall time.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return timeutil.Now()
	}
	return c()
}

// finish records the outcome of an action and audit-logs denied attempts.
func finish(l logger.Logger, m *metrics.Metrics, action string, actorID int, err error) error {
	m.Action(action, err)
	if err != nil && errors.Is(err, models.ErrUnauthorized) && l != nil {
		l.Warnf("denied %s by user %d: %v", action, actorID, err)
	}
	return err
}

// transition sets *status to next when m allows it.
func transition(m fsm.Machine, status *string, next string, denied *models.ActionError) error {
	if !fsm.CanTransition(m, *status, next) {
		return denied
	}
	*status = next
	return nil
}

func formatDate(date string) string {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}
