package handlers

import (
	"context"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condor-apps/notifications-service/inmemory"
	"github.com/condor-apps/notifications-service/model"
	"github.com/condor-apps/notifications-service/usecase"
)

// brokenRepository simulates a backing store that is down.
type brokenRepository struct{}

func (brokenRepository) Create(context.Context, *model.Notification) error {
	return model.NewStorageError(nil, "the database is down")
}

func (brokenRepository) FindByID(context.Context, string) (*model.Notification, error) {
	return nil, model.NewStorageError(nil, "the database is down")
}

func (brokenRepository) Save(context.Context, *model.Notification) error {
	return model.NewStorageError(nil, "the database is down")
}

func (brokenRepository) CountByRecipientID(context.Context, string) (int64, error) {
	return 0, model.NewStorageError(nil, "the database is down")
}

func (brokenRepository) FindByRecipientID(context.Context, string) ([]*model.Notification, error) {
	return nil, model.NewStorageError(nil, "the database is down")
}

func handlerFor(repository usecase.NotificationsRepository) *SendNotification {
	return NewSendNotification(usecase.NewSendNotification(repository))
}

func TestHandleMessage(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	notifications := inmemory.NewNotificationsRepository()
	handler := handlerFor(notifications)

	delivery := amqp.Delivery{
		Body: []byte(`{"recipientId": "r1", "content": "You have a new friend request!", "category": "social"}`),
	}
	assert.NoError(handler.HandleMessage(ctx, delivery))

	// Verify that the notification was created.
	stored, err := notifications.FindByRecipientID(ctx, "r1")
	assert.NoError(err)
	require.Len(t, stored, 1)
	assert.Equal("You have a new friend request!", stored[0].Content().Text())
	assert.Equal("social", stored[0].Category())
}

func TestHandleMessageMalformedBody(t *testing.T) {
	assert := assert.New(t)
	handler := handlerFor(inmemory.NewNotificationsRepository())

	delivery := amqp.Delivery{Body: []byte(`{"recipientId": "r1",`)}
	err := handler.HandleMessage(context.Background(), delivery)
	assert.Error(err)
	_, ok := err.(UnrecoverableError)
	assert.True(ok, "the error doesn't appear to be an UnrecoverableError")
}

func TestHandleMessageUnknownField(t *testing.T) {
	assert := assert.New(t)
	handler := handlerFor(inmemory.NewNotificationsRepository())

	delivery := amqp.Delivery{
		Body: []byte(`{"recipientId": "r1", "content": "You have a new friend request!", "category": "social", "priority": 9}`),
	}
	err := handler.HandleMessage(context.Background(), delivery)
	assert.Error(err)
	_, ok := err.(UnrecoverableError)
	assert.True(ok, "the error doesn't appear to be an UnrecoverableError")
}

func TestHandleMessageMissingField(t *testing.T) {
	assert := assert.New(t)
	handler := handlerFor(inmemory.NewNotificationsRepository())

	for name, body := range map[string]string{
		"recipientId": `{"content": "You have a new friend request!", "category": "social"}`,
		"content":     `{"recipientId": "r1", "category": "social"}`,
		"category":    `{"recipientId": "r1", "content": "You have a new friend request!"}`,
	} {
		err := handler.HandleMessage(context.Background(), amqp.Delivery{Body: []byte(body)})
		assert.Errorf(err, "a body without %s was accepted", name)
		_, ok := err.(UnrecoverableError)
		assert.Truef(ok, "the error for a body without %s doesn't appear to be an UnrecoverableError", name)
	}
}

func TestHandleMessageInvalidContent(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	notifications := inmemory.NewNotificationsRepository()
	handler := handlerFor(notifications)

	// The content is too short, which no number of retries can fix.
	delivery := amqp.Delivery{
		Body: []byte(`{"recipientId": "r1", "content": "Hi", "category": "social"}`),
	}
	err := handler.HandleMessage(ctx, delivery)
	assert.Error(err)
	_, ok := err.(UnrecoverableError)
	assert.True(ok, "the error doesn't appear to be an UnrecoverableError")

	// Verify that nothing was stored.
	count, err := notifications.CountByRecipientID(ctx, "r1")
	assert.NoError(err)
	assert.Equal(int64(0), count)
}

func TestHandleMessageStorageFailure(t *testing.T) {
	assert := assert.New(t)
	handler := handlerFor(brokenRepository{})

	delivery := amqp.Delivery{
		Body: []byte(`{"recipientId": "r1", "content": "You have a new friend request!", "category": "social"}`),
	}
	err := handler.HandleMessage(context.Background(), delivery)
	assert.Error(err)
	_, ok := err.(RecoverableError)
	assert.True(ok, "the error doesn't appear to be a RecoverableError")
}

func TestHandleMessageRedelivery(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	notifications := inmemory.NewNotificationsRepository()
	handler := handlerFor(notifications)

	// Handling the same delivery twice must not create two notifications.
	delivery := amqp.Delivery{
		Body: []byte(`{"recipientId": "r1", "content": "You have a new friend request!", "category": "social"}`),
	}
	assert.NoError(handler.HandleMessage(ctx, delivery))
	assert.NoError(handler.HandleMessage(ctx, delivery))

	count, err := notifications.CountByRecipientID(ctx, "r1")
	assert.NoError(err)
	assert.Equal(int64(1), count)
}

func TestHandleMessageProducerMessageID(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	notifications := inmemory.NewNotificationsRepository()
	handler := handlerFor(notifications)

	// Two deliveries with the same message ID are the same logical event
	// even when the producer republished them.
	first := amqp.Delivery{
		MessageId: "event-42",
		Body:      []byte(`{"recipientId": "r1", "content": "You have a new friend request!", "category": "social"}`),
	}
	second := amqp.Delivery{
		MessageId: "event-42",
		Body:      []byte(`{"recipientId": "r1", "content": "You have a new friend request!", "category": "social"}`),
	}
	assert.NoError(handler.HandleMessage(ctx, first))
	assert.NoError(handler.HandleMessage(ctx, second))

	count, err := notifications.CountByRecipientID(ctx, "r1")
	assert.NoError(err)
	assert.Equal(int64(1), count)

	// A distinct message ID is a distinct event, even with an identical
	// payload.
	third := amqp.Delivery{
		MessageId: "event-43",
		Body:      []byte(`{"recipientId": "r1", "content": "You have a new friend request!", "category": "social"}`),
	}
	assert.NoError(handler.HandleMessage(ctx, third))

	count, err = notifications.CountByRecipientID(ctx, "r1")
	assert.NoError(err)
	assert.Equal(int64(2), count)
}
