package main

import (
	"context"
	"time"

	"tesBack/internal/logger"
	"tesBack/internal/services"
	"tesBack/internal/timeutil"
)

const reminderRunTimeout = 1 * time.Minute

// startReminderWorker sends appointment reminders once at startup and then
// on every tick until ctx is done.
func startReminderWorker(ctx context.Context, svc *services.ReminderService, interval time.Duration, l logger.Logger) {
	if svc == nil {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		runOnce := func() {
			runCtx, cancel := context.WithTimeout(ctx, reminderRunTimeout)
			defer cancel()
			if _, err := svc.SendReminders(runCtx, timeutil.Now()); err != nil {
				l.Errorf("reminder worker: failed to send reminders: %v", err)
			}
		}

		runOnce()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runOnce()
			}
		}
	}()
}
