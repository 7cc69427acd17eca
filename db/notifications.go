// Package db provides the Postgres implementation of the notifications
// repository. The table layout lives in schema.sql.
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/cyverse-de/dbutil"
	"github.com/pkg/errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/condor-apps/notifications-service/model"
)

// InitDatabase establishes a database connection and verifies that the
// database can be reached.
func InitDatabase(driverName, databaseURI string) (*sql.DB, error) {
	wrapMsg := "unable to initialize the database"

	// Create a database connector to establish the connection.
	connector, err := dbutil.NewDefaultConnector("1m")
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Establish the database connection.
	db, err := connector.Connect(driverName, databaseURI)
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	return db, nil
}

// notificationColumns is the column ordering shared by the statement
// builders and the row scanner below.
var notificationColumns = []string{
	"id",
	"recipient_id",
	"category",
	"content",
	"read_at",
	"canceled_at",
	"created_at",
}

// NotificationsRepository stores notifications in the notifications
// table. Row-level locking in Postgres serializes concurrent saves
// against the same ID. FindByRecipientID returns notifications in
// descending created_at order.
type NotificationsRepository struct {
	db *sql.DB
}

// NewNotificationsRepository creates a new Postgres-backed notifications
// repository.
func NewNotificationsRepository(db *sql.DB) *NotificationsRepository {
	return &NotificationsRepository{db: db}
}

// scanNotification converts one row into a notification.
func scanNotification(row sq.RowScanner) (*model.Notification, error) {
	var (
		id          string
		recipientID string
		category    string
		text        string
		readAt      sql.NullTime
		canceledAt  sql.NullTime
		createdAt   time.Time
	)

	err := row.Scan(&id, &recipientID, &category, &text, &readAt, &canceledAt, &createdAt)
	if err != nil {
		return nil, err
	}

	// Stored content already passed validation when the notification was
	// created, so a failure here means the row was tampered with.
	content, err := model.NewContent(text)
	if err != nil {
		return nil, err
	}

	props := model.NotificationProps{
		ID:          id,
		RecipientID: recipientID,
		Category:    category,
		Content:     content,
		CreatedAt:   createdAt,
	}
	if readAt.Valid {
		props.ReadAt = &readAt.Time
	}
	if canceledAt.Valid {
		props.CanceledAt = &canceledAt.Time
	}

	return model.NewNotification(props), nil
}

func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Create stores a new notification. Conflicting IDs are ignored so that a
// redelivered bus event can't multiply notifications.
func (r *NotificationsRepository) Create(ctx context.Context, notification *model.Notification) error {
	wrapMsg := "unable to store the notification"

	// Build the insert statement.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Insert("notifications").
		Columns(notificationColumns...).
		Values(
			notification.ID(),
			notification.RecipientID(),
			notification.Category(),
			notification.Content().Text(),
			nullableTime(notification.ReadAt()),
			nullableTime(notification.CanceledAt()),
			notification.CreatedAt(),
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Execute the statement.
	_, err = r.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return model.NewStorageError(err, wrapMsg)
	}

	return nil
}

// FindByID returns the notification with the given ID, or nil if no such
// notification exists.
func (r *NotificationsRepository) FindByID(ctx context.Context, id string) (*model.Notification, error) {
	wrapMsg := "unable to look up the notification"

	// Build the query.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	notification, err := scanNotification(r.db.QueryRowContext(ctx, statement, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, model.NewStorageError(err, wrapMsg)
	}

	return notification, nil
}

// Save replaces the stored state of an existing notification, returning a
// NotFoundError when the ID isn't stored. The creation time is immutable
// and deliberately left out of the update.
func (r *NotificationsRepository) Save(ctx context.Context, notification *model.Notification) error {
	wrapMsg := "unable to save the notification"

	// Build the update statement.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Update("notifications").
		Set("recipient_id", notification.RecipientID()).
		Set("category", notification.Category()).
		Set("content", notification.Content().Text()).
		Set("read_at", nullableTime(notification.ReadAt())).
		Set("canceled_at", nullableTime(notification.CanceledAt())).
		Where(sq.Eq{"id": notification.ID()}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, wrapMsg)
	}

	// Execute the update statement and verify that a row was replaced.
	result, err := r.db.ExecContext(ctx, statement, args...)
	if err != nil {
		return model.NewStorageError(err, wrapMsg)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.NewStorageError(err, wrapMsg)
	}
	if rowsAffected == 0 {
		return model.NotFoundError{ID: notification.ID()}
	}

	return nil
}

// CountByRecipientID returns the number of notifications addressed to the
// recipient.
func (r *NotificationsRepository) CountByRecipientID(ctx context.Context, recipientID string) (int64, error) {
	wrapMsg := "unable to count notifications"
	var total int64

	// Build the query.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select("count(*)").
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	err = r.db.QueryRowContext(ctx, statement, args...).Scan(&total)
	if err != nil {
		return 0, model.NewStorageError(err, wrapMsg)
	}

	return total, nil
}

// FindByRecipientID returns the notifications addressed to the recipient,
// newest first.
func (r *NotificationsRepository) FindByRecipientID(
	ctx context.Context,
	recipientID string,
) ([]*model.Notification, error) {
	wrapMsg := "unable to list notifications"

	// Build the query.
	statement, args, err := sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select(notificationColumns...).
		From("notifications").
		Where(sq.Eq{"recipient_id": recipientID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, wrapMsg)
	}

	// Query the database.
	rows, err := r.db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, model.NewStorageError(err, wrapMsg)
	}
	defer rows.Close()

	notifications := []*model.Notification{}
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, model.NewStorageError(err, wrapMsg)
		}
		notifications = append(notifications, notification)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewStorageError(err, wrapMsg)
	}

	return notifications, nil
}
