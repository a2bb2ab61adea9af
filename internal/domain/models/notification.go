// internal/domain/models/notification.go
package models

import "time"

// Notification types surfaced to the front end.
const (
	NotifyImportant = "Important"
	NotifyReminder  = "Reminder"
	NotifyAccepted  = "Accepted"
	NotifyRejected  = "Rejected"
)

// Notification is an in-app message embedded on Student and Supervisor
// records. Each notification carries a stable UUID so clients address it
// by id rather than by array position; two browser tabs removing
// notifications concurrently can no longer target the wrong entry.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	Type      string    `bson:"type" json:"type"`
	Message   string    `bson:"message" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NotificationBox holds the two ordered lists of a user's notifications.
// Ordering within each list is insertion order. Marking a notification
// seen is a destructive move: it is spliced out of Unseen and appended
// to the end of Seen.
type NotificationBox struct {
	Unseen []Notification `bson:"unseen" json:"unseen"`
	Seen   []Notification `bson:"seen" json:"seen"`
}
