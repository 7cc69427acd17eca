package api

import (
	"time"

	"github.com/condor-apps/notifications-service/model"
)

// NotificationView is the wire representation of a notification. Unset
// read and canceled markers serialize as null.
type NotificationView struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	RecipientID string     `json:"recipientId"`
	ReadAt      *time.Time `json:"readAt"`
	CanceledAt  *time.Time `json:"canceledAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func toNotificationView(notification *model.Notification) NotificationView {
	return NotificationView{
		ID:          notification.ID(),
		Content:     notification.Content().Text(),
		Category:    notification.Category(),
		RecipientID: notification.RecipientID(),
		ReadAt:      notification.ReadAt(),
		CanceledAt:  notification.CanceledAt(),
		CreatedAt:   notification.CreatedAt(),
	}
}
