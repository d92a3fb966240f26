package notify

import (
	"context"
	"errors"

	"tesBack/internal/models"
)

// Pusher delivers a stored notification to a live channel.
type Pusher interface {
	Push(ctx context.Context, n models.Notification) error
}

// Fanout pushes to every configured channel and joins their errors.
type Fanout []Pusher

func (f Fanout) Push(ctx context.Context, n models.Notification) error {
	var errs []error
	for _, p := range f {
		if err := p.Push(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
