package usecase

import (
	"context"

	"github.com/condor-apps/notifications-service/model"
)

// SendNotificationRequest contains the inputs for SendNotification.
// NotificationID is optional: the event ingestion path supplies a
// deterministic identifier so that redelivered events collapse onto one
// stored notification, while API callers leave it empty and get a fresh
// one.
type SendNotificationRequest struct {
	RecipientID    string
	Content        string
	Category       string
	NotificationID string
}

// SendNotificationResponse contains the notification that was created.
type SendNotificationResponse struct {
	Notification *model.Notification
}

// SendNotification creates a notification for a recipient.
type SendNotification struct {
	notifications NotificationsRepository
}

// NewSendNotification returns a new SendNotification use case.
func NewSendNotification(notifications NotificationsRepository) *SendNotification {
	return &SendNotification{notifications: notifications}
}

// Execute validates the content, constructs the notification, and stores
// it. A ValidationError is returned for out-of-range content and storage
// failures are propagated as-is.
func (uc *SendNotification) Execute(
	ctx context.Context,
	request SendNotificationRequest,
) (*SendNotificationResponse, error) {
	content, err := model.NewContent(request.Content)
	if err != nil {
		return nil, err
	}

	notification := model.NewNotification(model.NotificationProps{
		ID:          request.NotificationID,
		RecipientID: request.RecipientID,
		Category:    request.Category,
		Content:     content,
	})

	err = uc.notifications.Create(ctx, notification)
	if err != nil {
		return nil, err
	}

	return &SendNotificationResponse{Notification: notification}, nil
}
