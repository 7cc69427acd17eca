package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/condor-apps/notifications-service/inmemory"
	"github.com/condor-apps/notifications-service/model"
)

func TestUnreadNotification(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	notifications := inmemory.NewNotificationsRepository()
	readNotification := NewReadNotification(notifications)
	unreadNotification := NewUnreadNotification(notifications)

	notification := makeNotification(t, "recipient-id")
	require.NoError(t, notifications.Create(ctx, notification))

	// Read the notification, then change our mind.
	require.NoError(t, readNotification.Execute(ctx, ReadNotificationRequest{NotificationID: notification.ID()}))
	err := unreadNotification.Execute(ctx, UnreadNotificationRequest{NotificationID: notification.ID()})
	assert.NoError(err)

	stored, err := notifications.FindByID(ctx, notification.ID())
	assert.NoError(err)
	require.NotNil(t, stored)
	assert.Nil(stored.ReadAt())
}

func TestUnreadNotificationNotFound(t *testing.T) {
	assert := assert.New(t)
	notifications := inmemory.NewNotificationsRepository()
	unreadNotification := NewUnreadNotification(notifications)

	err := unreadNotification.Execute(context.Background(), UnreadNotificationRequest{
		NotificationID: "missing-id",
	})
	assert.Error(err)
	_, ok := err.(model.NotFoundError)
	assert.True(ok, "the error doesn't appear to be a NotFoundError")
}
