// Package notification delivers push messages to users' devices.
package notification

import (
	"context"
	"fmt"

	"lexaid/models"
	"lexaid/services/user"
	"lexaid/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender delivers one push message.
type Sender interface {
	Send(ctx context.Context, msg models.PushNotification) error
}

// NotificationService pushes messages to a user.
type NotificationService interface {
	// SendUserPushNotification reports whether a message was sent. Users
	// without a device token or with in-app notifications off are skipped.
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) (bool, error)
}

// FCMSender sends through Firebase Cloud Messaging.
type FCMSender struct {
	Client *messaging.Client
}

func (s *FCMSender) Send(ctx context.Context, msg models.PushNotification) error {
	if s == nil || s.Client == nil {
		return fmt.Errorf("fcm: %w", utils.ErrServiceUnavailable)
	}
	_, err := s.Client.Send(ctx, &messaging.Message{
		Token: msg.Token,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	})
	if err != nil {
		return &utils.RemoteError{Service: "fcm", Err: err}
	}
	return nil
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Profiles user.ProfileService
	Sender   Sender
}

func NewDefaultNotificationService(profiles user.ProfileService, sender Sender) (*DefaultNotificationService, error) {
	if profiles == nil || sender == nil {
		return nil, fmt.Errorf("notification service initialization error: profile service or sender is nil")
	}
	return &DefaultNotificationService{Profiles: profiles, Sender: sender}, nil
}

func (s *DefaultNotificationService) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) (bool, error) {
	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("SendUserPushNotification: could not load profile %s: %w", userID, err)
	}
	if !p.WantsInAppNotifications() || p.FCMToken == "" {
		utils.GetLogger().Debug("Push skipped", zap.String("uid", userID),
			zap.Bool("inApp", p.WantsInAppNotifications()), zap.Bool("hasToken", p.FCMToken != ""))
		return false, nil
	}

	if err := s.Sender.Send(ctx, models.PushNotification{Token: p.FCMToken, Title: title, Body: body, Data: data}); err != nil {
		return false, fmt.Errorf("SendUserPushNotification: %w", err)
	}
	return true, nil
}
