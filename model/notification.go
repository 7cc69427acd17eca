// Package model contains the notification aggregate and the invariants
// that govern its valid states.
package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationProps contains the attributes used to construct a
// Notification. ID and CreatedAt may be left at their zero values, in
// which case a fresh UUID and the current time are assigned. Supplying
// them explicitly supports deterministic construction in tests and
// rehydration of stored notifications.
type NotificationProps struct {
	ID          string
	RecipientID string
	Category    string
	Content     Content
	ReadAt      *time.Time
	CanceledAt  *time.Time
	CreatedAt   time.Time
}

// Notification represents a single notification addressed to a recipient.
// The identifier, recipient, category, content, and creation time never
// change after construction; only the read and canceled markers do.
type Notification struct {
	id          string
	recipientID string
	category    string
	content     Content
	readAt      *time.Time
	canceledAt  *time.Time
	createdAt   time.Time
}

// NewNotification constructs a notification from its properties.
func NewNotification(props NotificationProps) *Notification {
	if props.ID == "" {
		props.ID = uuid.New().String()
	}
	if props.CreatedAt.IsZero() {
		props.CreatedAt = time.Now()
	}
	return &Notification{
		id:          props.ID,
		recipientID: props.RecipientID,
		category:    props.Category,
		content:     props.Content,
		readAt:      copyTime(props.ReadAt),
		canceledAt:  copyTime(props.CanceledAt),
		createdAt:   props.CreatedAt,
	}
}

// ID returns the unique identifier of the notification.
func (n *Notification) ID() string {
	return n.id
}

// RecipientID returns the opaque identifier of the addressee.
func (n *Notification) RecipientID() string {
	return n.recipientID
}

// Category returns the free-form classification of the notification.
func (n *Notification) Category() string {
	return n.category
}

// Content returns the notification content.
func (n *Notification) Content() Content {
	return n.content
}

// ReadAt returns the time the notification was marked as read, or nil if
// it hasn't been.
func (n *Notification) ReadAt() *time.Time {
	return copyTime(n.readAt)
}

// CanceledAt returns the time the notification was canceled, or nil if it
// hasn't been.
func (n *Notification) CanceledAt() *time.Time {
	return copyTime(n.canceledAt)
}

// CreatedAt returns the time the notification was created.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// Read marks the notification as read. Reading an already-read
// notification simply moves the read time forward; no business meaning
// attaches to the exact instant.
func (n *Notification) Read() {
	now := time.Now()
	n.readAt = &now
}

// Unread clears the read marker.
func (n *Notification) Unread() {
	n.readAt = nil
}

// Cancel marks the notification as canceled. The read marker is left
// alone: a notification may be both read and canceled.
func (n *Notification) Cancel() {
	now := time.Now()
	n.canceledAt = &now
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
