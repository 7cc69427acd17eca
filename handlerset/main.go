// Package handlerset connects the AMQP message handlers to the bus and
// applies the delivery acknowledgement policy.
package handlerset

import (
	"context"

	"github.com/cyverse-de/messaging/v9"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/condor-apps/notifications-service/handlers"
)

// DeadLetterKey is the routing key that failed deliveries are forwarded
// to. The queue bound to it is an operational concern.
const DeadLetterKey = "notifications.dead-letter"

var log = logrus.WithFields(logrus.Fields{"package": "handlerset"})

// AMQPSettings represents the settings that we require in order to connect
// to the AMQP exchange.
type AMQPSettings struct {
	URI          string
	ExchangeName string
	ExchangeType string
}

// publisher describes the part of the messaging client used to forward
// failed deliveries.
type publisher interface {
	Publish(key string, body []byte) error
}

// HandlerSet represents a set of AMQP message handlers.
type HandlerSet struct {
	amqpSettings *AMQPSettings
	amqpClient   *messaging.Client
	publisher    publisher
	handlerFor   map[string]handlers.MessageHandler
}

// New creates a new handler set.
func New(amqpSettings *AMQPSettings, handlerFor map[string]handlers.MessageHandler) (*HandlerSet, error) {
	wrapMsg := "unable to create the message handler set"

	// Create the AMQP client.
	amqpClient, err := messaging.NewClient(amqpSettings.URI, true)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Publishing is only used for the dead letter path.
	err = amqpClient.SetupPublishing(amqpSettings.ExchangeName)
	if err != nil {
		amqpClient.Close()
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Build and return the handler set.
	handlerSet := HandlerSet{
		amqpSettings: amqpSettings,
		amqpClient:   amqpClient,
		publisher:    amqpClient,
		handlerFor:   handlerFor,
	}
	return &handlerSet, nil
}

// Listen registers a consumer for every routing key with a handler and
// starts processing deliveries in the background.
func (hs *HandlerSet) Listen(queueName string, prefetchCount int) {
	keys := make([]string, 0, len(hs.handlerFor))
	for key := range hs.handlerFor {
		keys = append(keys, key)
	}
	hs.amqpClient.AddConsumerMulti(
		hs.amqpSettings.ExchangeName,
		hs.amqpSettings.ExchangeType,
		queueName,
		keys,
		hs.handleDelivery,
		prefetchCount)
	go hs.amqpClient.Listen()
}

// Close closes a message handler set.
func (hs *HandlerSet) Close() {
	hs.amqpClient.Close()
}

// handleDelivery routes one delivery to its handler and converts the
// result into an acknowledgement decision. The offset only advances after
// the handler succeeds or the delivery has been parked on the dead letter
// path; a recoverable failure is requeued exactly once before being
// parked, so a persistent failure can't wedge the queue.
func (hs *HandlerSet) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	deliveryLog := log.WithFields(logrus.Fields{"routing-key": delivery.RoutingKey})

	// Look up the handler. A delivery that nothing is registered for can
	// never be processed, so it goes straight to the dead letter path.
	handler, ok := hs.handlerFor[delivery.RoutingKey]
	if !ok {
		deliveryLog.Error("no handler registered for routing key")
		hs.deadLetter(deliveryLog, delivery)
		return
	}

	// Process the message.
	err := handler.HandleMessage(ctx, delivery)

	switch err.(type) {
	case nil:
		if ackErr := delivery.Ack(false); ackErr != nil {
			deliveryLog.Errorf("unable to acknowledge the delivery: %s", ackErr.Error())
		}
	case handlers.UnrecoverableError:
		deliveryLog.Errorf("unable to process the delivery: %s", err.Error())
		hs.deadLetter(deliveryLog, delivery)
	default:
		deliveryLog.Errorf("temporarily unable to process the delivery: %s", err.Error())
		if delivery.Redelivered {
			hs.deadLetter(deliveryLog, delivery)
		} else if rejectErr := delivery.Reject(true); rejectErr != nil {
			deliveryLog.Errorf("unable to requeue the delivery: %s", rejectErr.Error())
		}
	}
}

// deadLetter forwards a delivery to the dead letter routing key and
// acknowledges it. If the forward fails, the delivery is requeued instead
// so that it is never dropped.
func (hs *HandlerSet) deadLetter(deliveryLog *logrus.Entry, delivery amqp.Delivery) {
	err := hs.publisher.Publish(DeadLetterKey, delivery.Body)
	if err != nil {
		deliveryLog.Errorf("unable to forward the delivery to the dead letter path: %s", err.Error())
		if rejectErr := delivery.Reject(true); rejectErr != nil {
			deliveryLog.Errorf("unable to requeue the delivery: %s", rejectErr.Error())
		}
		return
	}
	if ackErr := delivery.Ack(false); ackErr != nil {
		deliveryLog.Errorf("unable to acknowledge the delivery: %s", ackErr.Error())
	}
}
