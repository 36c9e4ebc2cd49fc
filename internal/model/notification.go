package model

import "time"

// AdminTarget is the sentinel notification target meaning "every admin
// session", not a real member id.
const AdminTarget = "ADMIN"

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyInfo    NotificationType = "info"
	NotifyTask    NotificationType = "task"
)

// Notification is ephemeral: it lives only in the running process and is
// never persisted.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	Timestamp time.Time        `json:"timestamp"`
}
