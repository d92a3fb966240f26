package notify

import (
	"context"
	"fmt"
	"strconv"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"

	"tesBack/internal/models"
)

// TopicFor is the FCM topic a user's devices subscribe to.
func TopicFor(userID int) string {
	return "user-" + strconv.Itoa(userID)
}

type messageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCMPusher delivers notifications as push messages to the recipient's topic.
type FCMPusher struct {
	client messageSender
}

func NewFCMPusher(ctx context.Context, credentialsFile string) (*FCMPusher, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}
	return &FCMPusher{client: client}, nil
}

func buildMessage(n models.Notification) *messaging.Message {
	data := map[string]string{
		"type":            n.Type,
		"notification_id": strconv.Itoa(n.ID),
	}
	for k, v := range n.Metadata {
		data[k] = strconv.Itoa(v)
	}
	return &messaging.Message{
		Topic: TopicFor(n.UserID),
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Message,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: n.Title,
						Body:  n.Message,
					},
					Sound: "default",
				},
			},
		},
	}
}

func (p *FCMPusher) Push(ctx context.Context, n models.Notification) error {
	if _, err := p.client.Send(ctx, buildMessage(n)); err != nil {
		return fmt.Errorf("fcm send to user %d: %w", n.UserID, err)
	}
	return nil
}
