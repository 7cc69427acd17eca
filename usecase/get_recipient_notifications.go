package usecase

import (
	"context"

	"github.com/condor-apps/notifications-service/model"
)

// GetRecipientNotificationsRequest identifies the recipient whose
// notifications should be listed.
type GetRecipientNotificationsRequest struct {
	RecipientID string
}

// GetRecipientNotificationsResponse contains the recipient's
// notifications.
type GetRecipientNotificationsResponse struct {
	Notifications []*model.Notification
}

// GetRecipientNotifications lists the notifications addressed to a
// recipient.
type GetRecipientNotifications struct {
	notifications NotificationsRepository
}

// NewGetRecipientNotifications returns a new GetRecipientNotifications use
// case.
func NewGetRecipientNotifications(notifications NotificationsRepository) *GetRecipientNotifications {
	return &GetRecipientNotifications{notifications: notifications}
}

// Execute returns the notifications addressed to the recipient. An empty
// result is valid.
func (uc *GetRecipientNotifications) Execute(
	ctx context.Context,
	request GetRecipientNotificationsRequest,
) (*GetRecipientNotificationsResponse, error) {
	notifications, err := uc.notifications.FindByRecipientID(ctx, request.RecipientID)
	if err != nil {
		return nil, err
	}

	return &GetRecipientNotificationsResponse{Notifications: notifications}, nil
}
