package usecase

import (
	"context"

	"github.com/condor-apps/notifications-service/model"
)

// CancelNotificationRequest identifies the notification to cancel.
type CancelNotificationRequest struct {
	NotificationID string
}

// CancelNotification marks a notification as canceled.
type CancelNotification struct {
	notifications NotificationsRepository
}

// NewCancelNotification returns a new CancelNotification use case.
func NewCancelNotification(notifications NotificationsRepository) *CancelNotification {
	return &CancelNotification{notifications: notifications}
}

// Execute cancels the notification, returning a NotFoundError if no
// notification with the given ID exists.
func (uc *CancelNotification) Execute(ctx context.Context, request CancelNotificationRequest) error {
	notification, err := uc.notifications.FindByID(ctx, request.NotificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return model.NotFoundError{ID: request.NotificationID}
	}

	notification.Cancel()

	return uc.notifications.Save(ctx, notification)
}
