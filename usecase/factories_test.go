package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/condor-apps/notifications-service/model"
)

// makeNotification builds a valid notification for a recipient.
func makeNotification(t *testing.T, recipientID string) *model.Notification {
	t.Helper()
	content, err := model.NewContent("You have a new friend request!")
	if err != nil {
		t.Fatalf("unable to create the test content: %s", err.Error())
	}
	return model.NewNotification(model.NotificationProps{
		RecipientID: recipientID,
		Category:    "social",
		Content:     content,
	})
}

// failingRepository fails every operation with a StorageError, simulating
// a backend outage.
type failingRepository struct{}

func (r *failingRepository) storageError() error {
	return model.NewStorageError(errors.New("connection refused"), "unable to reach the database")
}

func (r *failingRepository) Create(context.Context, *model.Notification) error {
	return r.storageError()
}

func (r *failingRepository) FindByID(context.Context, string) (*model.Notification, error) {
	return nil, r.storageError()
}

func (r *failingRepository) Save(context.Context, *model.Notification) error {
	return r.storageError()
}

func (r *failingRepository) CountByRecipientID(context.Context, string) (int64, error) {
	return 0, r.storageError()
}

func (r *failingRepository) FindByRecipientID(context.Context, string) ([]*model.Notification, error) {
	return nil, r.storageError()
}
