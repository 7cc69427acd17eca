// Package handlers contains the AMQP message handlers for the service.
package handlers

import (
	"context"

	"github.com/streadway/amqp"

	"github.com/condor-apps/notifications-service/usecase"
)

// SendNotificationKey is the routing key for notification creation events.
const SendNotificationKey = "notifications.send-notification"

// MessageHandler describes the interface used to handle AMQP messages.
type MessageHandler interface {
	HandleMessage(ctx context.Context, delivery amqp.Delivery) error
}

// InitMessageHandlers returns a map from routing key to message handler.
func InitMessageHandlers(sendNotification *usecase.SendNotification) map[string]MessageHandler {
	return map[string]MessageHandler{
		SendNotificationKey: NewSendNotification(sendNotification),
	}
}
