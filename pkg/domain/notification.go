package domain

// Notification is a single message shown in the notification feed.
// Once marked read it disappears from the visible set; the client never
// redisplays read notifications.
type Notification struct {
	ID      string `json:"_id"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
}
