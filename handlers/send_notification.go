package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/condor-apps/notifications-service/model"
	"github.com/condor-apps/notifications-service/usecase"
)

// SendNotificationRequest represents a deserialized notification creation
// event.
type SendNotificationRequest struct {
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
	Category    string `json:"category"`
}

// notificationIDNamespace is the UUID namespace for identifiers derived
// from event deliveries.
var notificationIDNamespace = uuid.MustParse("0f0de35e-ade2-4d9d-9a11-41cdca8a5f55")

// SendNotification is a message handler for notification creation events.
type SendNotification struct {
	sendNotification *usecase.SendNotification
}

// NewSendNotification returns a new send notification event handler.
func NewSendNotification(sendNotification *usecase.SendNotification) *SendNotification {
	return &SendNotification{sendNotification: sendNotification}
}

// notificationID derives a deterministic identifier for a delivery so
// that redelivery of the same logical event maps onto the same stored
// notification. The producer's message ID wins when one was set;
// otherwise the identifier is derived from the payload itself.
func notificationID(delivery amqp.Delivery, request *SendNotificationRequest) string {
	if delivery.MessageId != "" {
		return uuid.NewSHA1(notificationIDNamespace, []byte(delivery.MessageId)).String()
	}
	dedupKey := request.RecipientID + "\x00" + request.Category + "\x00" + request.Content
	return uuid.NewSHA1(notificationIDNamespace, []byte(dedupKey)).String()
}

// HandleMessage handles a single AMQP delivery.
func (h *SendNotification) HandleMessage(ctx context.Context, delivery amqp.Delivery) error {

	// Parse the message body. The event shape is fixed, so an unknown
	// field means the producer and consumer disagree about the contract
	// and retrying can't fix that.
	var request SendNotificationRequest
	decoder := json.NewDecoder(bytes.NewReader(delivery.Body))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		return NewUnrecoverableError("unable to parse message body: %s", err.Error())
	}
	if request.RecipientID == "" || request.Content == "" || request.Category == "" {
		return NewUnrecoverableError("message body is missing one or more of recipientId, content, and category")
	}

	// Create the notification.
	_, err := h.sendNotification.Execute(ctx, usecase.SendNotificationRequest{
		RecipientID:    request.RecipientID,
		Content:        request.Content,
		Category:       request.Category,
		NotificationID: notificationID(delivery, &request),
	})

	// Invalid content will never become valid on retry; anything else is
	// worth another attempt.
	var validationErr model.ValidationError
	if errors.As(err, &validationErr) {
		return NewUnrecoverableError(validationErr.Error())
	}
	if err != nil {
		return NewRecoverableError(err.Error())
	}

	return nil
}
