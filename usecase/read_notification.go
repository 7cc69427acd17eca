package usecase

import (
	"context"

	"github.com/condor-apps/notifications-service/model"
)

// ReadNotificationRequest identifies the notification to mark as read.
type ReadNotificationRequest struct {
	NotificationID string
}

// ReadNotification marks a notification as read.
type ReadNotification struct {
	notifications NotificationsRepository
}

// NewReadNotification returns a new ReadNotification use case.
func NewReadNotification(notifications NotificationsRepository) *ReadNotification {
	return &ReadNotification{notifications: notifications}
}

// Execute marks the notification as read, returning a NotFoundError if no
// notification with the given ID exists.
func (uc *ReadNotification) Execute(ctx context.Context, request ReadNotificationRequest) error {
	notification, err := uc.notifications.FindByID(ctx, request.NotificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return model.NotFoundError{ID: request.NotificationID}
	}

	notification.Read()

	return uc.notifications.Save(ctx, notification)
}
