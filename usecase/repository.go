// Package usecase contains the operations that read and mutate the
// notification aggregate. Each use case holds only a repository reference
// and is safe for concurrent use.
package usecase

import (
	"context"

	"github.com/condor-apps/notifications-service/model"
)

// NotificationsRepository is the persistence contract for notifications.
// Implementations own the durable copy of every notification and are
// responsible for serializing concurrent Save calls against the same ID;
// operations on different IDs are independent.
type NotificationsRepository interface {
	// Create persists a new notification. Creating a notification whose
	// ID is already stored is a no-op, which makes redelivered bus events
	// safe to replay.
	Create(ctx context.Context, notification *model.Notification) error

	// FindByID returns the stored notification, or nil when no
	// notification with the given ID exists. Absence is not an error.
	FindByID(ctx context.Context, id string) (*model.Notification, error)

	// Save replaces the stored state of an existing notification,
	// returning a NotFoundError when the ID isn't stored.
	Save(ctx context.Context, notification *model.Notification) error

	// CountByRecipientID returns the number of notifications addressed to
	// the recipient.
	CountByRecipientID(ctx context.Context, recipientID string) (int64, error)

	// FindByRecipientID returns the notifications addressed to the
	// recipient. The contract leaves the ordering unspecified; callers
	// that care should check what the implementation documents.
	FindByRecipientID(ctx context.Context, recipientID string) ([]*model.Notification, error)
}
