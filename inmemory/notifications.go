// Package inmemory provides a notifications repository backed by a
// process-local map. It backs the test suites and is handy for running
// the service without a database.
package inmemory

import (
	"context"
	"sync"

	"github.com/condor-apps/notifications-service/model"
)

// NotificationsRepository stores notifications in memory. A single mutex
// guards the map, so concurrent saves against the same ID serialize and
// no caller ever observes a half-written notification. Notifications are
// copied on the way in and out: the repository owns the durable copy and
// callers only ever hold transient snapshots.
type NotificationsRepository struct {
	mutex         sync.RWMutex
	notifications map[string]*model.Notification
}

// NewNotificationsRepository creates a new in-memory notifications
// repository.
func NewNotificationsRepository() *NotificationsRepository {
	return &NotificationsRepository{
		notifications: make(map[string]*model.Notification),
	}
}

// Create stores a new notification. Creating a notification whose ID is
// already stored is a no-op.
func (r *NotificationsRepository) Create(_ context.Context, notification *model.Notification) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.notifications[notification.ID()]; ok {
		return nil
	}

	stored := *notification
	r.notifications[notification.ID()] = &stored
	return nil
}

// FindByID returns the notification with the given ID, or nil if no such
// notification exists.
func (r *NotificationsRepository) FindByID(_ context.Context, id string) (*model.Notification, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	notification, ok := r.notifications[id]
	if !ok {
		return nil, nil
	}

	found := *notification
	return &found, nil
}

// Save replaces the stored state of an existing notification, returning a
// NotFoundError when the ID isn't stored.
func (r *NotificationsRepository) Save(_ context.Context, notification *model.Notification) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.notifications[notification.ID()]; !ok {
		return model.NotFoundError{ID: notification.ID()}
	}

	stored := *notification
	r.notifications[notification.ID()] = &stored
	return nil
}

// CountByRecipientID returns the number of notifications addressed to the
// recipient.
func (r *NotificationsRepository) CountByRecipientID(_ context.Context, recipientID string) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var total int64
	for _, notification := range r.notifications {
		if notification.RecipientID() == recipientID {
			total++
		}
	}
	return total, nil
}

// FindByRecipientID returns the notifications addressed to the recipient,
// in no particular order.
func (r *NotificationsRepository) FindByRecipientID(
	_ context.Context,
	recipientID string,
) ([]*model.Notification, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	notifications := []*model.Notification{}
	for _, notification := range r.notifications {
		if notification.RecipientID() == recipientID {
			found := *notification
			notifications = append(notifications, &found)
		}
	}
	return notifications, nil
}
