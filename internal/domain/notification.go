package domain

import "time"

// Notification levels.
const (
	NotificationLevelInfo    = "INFO"
	NotificationLevelWarning = "WARNING"
)

// Notification is a record of something that happened to an owner's
// portfolio (trade added, updated, deleted). The service only records
// notifications; delivering them is someone else's job.
type Notification struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
