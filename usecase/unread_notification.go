package usecase

import (
	"context"

	"github.com/condor-apps/notifications-service/model"
)

// UnreadNotificationRequest identifies the notification to mark as unread.
type UnreadNotificationRequest struct {
	NotificationID string
}

// UnreadNotification clears the read marker of a notification.
type UnreadNotification struct {
	notifications NotificationsRepository
}

// NewUnreadNotification returns a new UnreadNotification use case.
func NewUnreadNotification(notifications NotificationsRepository) *UnreadNotification {
	return &UnreadNotification{notifications: notifications}
}

// Execute marks the notification as unread, returning a NotFoundError if
// no notification with the given ID exists.
func (uc *UnreadNotification) Execute(ctx context.Context, request UnreadNotificationRequest) error {
	notification, err := uc.notifications.FindByID(ctx, request.NotificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return model.NotFoundError{ID: request.NotificationID}
	}

	notification.Unread()

	return uc.notifications.Save(ctx, notification)
}
