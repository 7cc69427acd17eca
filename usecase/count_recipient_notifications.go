package usecase

import "context"

// CountRecipientNotificationsRequest identifies the recipient whose
// notifications should be counted.
type CountRecipientNotificationsRequest struct {
	RecipientID string
}

// CountRecipientNotificationsResponse contains the notification count.
type CountRecipientNotificationsResponse struct {
	Count int64
}

// CountRecipientNotifications counts the notifications addressed to a
// recipient.
type CountRecipientNotifications struct {
	notifications NotificationsRepository
}

// NewCountRecipientNotifications returns a new CountRecipientNotifications
// use case.
func NewCountRecipientNotifications(notifications NotificationsRepository) *CountRecipientNotifications {
	return &CountRecipientNotifications{notifications: notifications}
}

// Execute returns the number of notifications addressed to the recipient.
// Zero is a valid result.
func (uc *CountRecipientNotifications) Execute(
	ctx context.Context,
	request CountRecipientNotificationsRequest,
) (*CountRecipientNotificationsResponse, error) {
	count, err := uc.notifications.CountByRecipientID(ctx, request.RecipientID)
	if err != nil {
		return nil, err
	}

	return &CountRecipientNotificationsResponse{Count: count}, nil
}
